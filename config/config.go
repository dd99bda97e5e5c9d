package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oarkflow/xid"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// DefaultPath is the config file read when none is given
const DefaultPath = "config.ini"

// Config represents config info
var Config ConfList

// ConfList has contents of config.ini
type ConfList struct {
	UserAgent     string
	Host          string
	StockURL      string
	MutualFundURL string

	OutputDir string
	Gzip      bool
	SQLite    string

	IP   string
	Port int

	LogLevel string

	Repo   string
	Branch string
}

// Addr is the listen address of the web server
func (c ConfList) Addr() string {
	return fmt.Sprintf("%s:%d", c.IP, c.Port)
}

// HostFor returns the Host header to send with a request for rawURL.
// It is the configured Host only when rawURL points at that host.
func (c ConfList) HostFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || c.Host == "" {
		return ""
	}
	if strings.EqualFold(u.Host, c.Host) || strings.EqualFold(u.Hostname(), c.Host) {
		return c.Host
	}
	return ""
}

// Load reads the ini file at path. A missing or unreadable file is not fatal:
// it is logged and every key falls back to its default.
func Load(path string) ConfList {
	conf, err := ini.Load(path)
	if err != nil {
		logrus.Warnf("init file open error: %v", err)
		conf = ini.Empty()
	}

	c := ConfList{
		UserAgent:     conf.Section("sec").Key("user_agent").String(),
		Host:          conf.Section("sec").Key("host").MustString("www.sec.gov"),
		StockURL:      conf.Section("sec").Key("stock_url").String(),
		MutualFundURL: conf.Section("sec").Key("mutual_fund_url").String(),
		OutputDir:     conf.Section("output").Key("dir").MustString("mappings"),
		Gzip:          conf.Section("output").Key("gzip").MustBool(false),
		SQLite:        conf.Section("output").Key("sqlite").String(),
		IP:            conf.Section("web").Key("ip").String(),
		Port:          conf.Section("web").Key("port").MustInt(8080),
		LogLevel:      conf.Section("log").Key("level").MustString("info"),
		Repo:          conf.Section("publish").Key("repo").MustString("oarkflow/cikmapper"),
		Branch:        conf.Section("publish").Key("branch").MustString("main"),
	}
	if c.UserAgent == "" {
		c.UserAgent = PseudoUserAgent()
	}
	return c
}

// InitConfig initializes config settings
func InitConfig(path string) {
	Config = Load(path)
}

// PseudoUserAgent builds a descriptive user agent that differs on every call.
// SEC rejects requests that carry a default client user agent.
func PseudoUserAgent() string {
	return fmt.Sprintf("CIKMapper %s@cikmapper.org", xid.New().String())
}

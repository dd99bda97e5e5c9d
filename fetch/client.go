// Package fetch performs the single HTTP GET each mapper needs and decodes the
// {"fields": [...], "data": [[...], ...]} payload SEC publishes.
package fetch

import (
	"fmt"
	"net/http"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client fetches SEC files. SEC rejects requests without a descriptive User-Agent.
type Client struct {
	UserAgent string
	// Host is sent as the Host header. Empty leaves the URL host.
	Host string
}

// NewClient is constructor of Client
func NewClient(userAgent, host string) *Client {
	return &Client{UserAgent: userAgent, Host: host}
}

func (c *Client) headers() http.Header {
	hdr := http.Header{}
	hdr.Set("User-Agent", c.UserAgent)
	hdr.Set("Accept-Encoding", "gzip, deflate")
	if c.Host != "" {
		hdr.Set("Host", c.Host)
	}
	return hdr
}

// Fetch issues one GET for url and returns the decoded body. There is no retry.
func (c *Client) Fetch(url string) ([]byte, error) {
	collector := colly.NewCollector(
		colly.UserAgent(c.UserAgent),
		colly.MaxBodySize(0),
		colly.AllowURLRevisit(),
	)
	collector.ParseHTTPErrorResponse = true

	var (
		body   []byte
		status int
	)
	collector.OnRequest(func(r *colly.Request) {
		logrus.Infof("fetching %s", r.URL)
	})
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := collector.Request(http.MethodGet, url, nil, nil, c.headers()); err != nil {
		if status != 0 && (status < 200 || status > 299) {
			return nil, &StatusError{URL: url, StatusCode: status}
		}
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{URL: url, StatusCode: status}
	}
	logrus.Infof("fetched %s (%d bytes)", url, len(body))
	return body, nil
}

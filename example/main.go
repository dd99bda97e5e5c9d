package main

import (
	"fmt"
	"sort"

	"github.com/oarkflow/cikmapper/config"
	"github.com/oarkflow/cikmapper/fetch"
	"github.com/oarkflow/cikmapper/log"
	"github.com/oarkflow/cikmapper/mapper"
	"github.com/oarkflow/cikmapper/mapping"
)

const n = 3

func main() {
	config.InitConfig(config.DefaultPath)
	log.SetLogging(config.Config.LogLevel)
	client := fetch.NewClient(config.Config.UserAgent, config.Config.Host)

	StockExample(client)
	MutualFundExample(client)
}

// StockExample saves the stock table and prints a few entries of every mapping.
func StockExample(client *fetch.Client) {
	m, err := mapper.NewStockMapper(client, nil)
	if err != nil {
		panic(err)
	}
	if err := m.SaveCSV("example_mappings.csv"); err != nil {
		panic(err)
	}
	printMappings(m)

	fmt.Println("AAPL ->", m.TickerToCIK()["AAPL"], m.TickerToCompanyName()["AAPL"], m.TickerToExchange()["AAPL"])
	fmt.Println(m.Table().Len(), "rows")
}

// MutualFundExample prints a few entries of every mutual fund mapping.
func MutualFundExample(client *fetch.Client) {
	m, err := mapper.NewMutualFundMapper(client, nil)
	if err != nil {
		panic(err)
	}
	printMappings(m)

	fmt.Println("VTSAX ->", m.TickerToCIK()["VTSAX"], m.TickerToSeriesID()["VTSAX"], m.TickerToClassID()["VTSAX"])
	fmt.Println(m.Table().Len(), "rows")
}

func printMappings(m mapper.Mapper) {
	for _, d := range m.Definitions() {
		v, err := m.Mapping(d.Name)
		if err != nil {
			panic(err)
		}
		fmt.Println(d.Name)
		printN(v)
		fmt.Println("====================")
	}
}

func printN(v any) {
	switch v := v.(type) {
	case map[string]string:
		for _, k := range firstKeys(v) {
			fmt.Printf("  %s: %s\n", k, v[k])
		}
	case map[string]mapping.Set:
		for _, k := range firstKeys(v) {
			values := v[k].Sorted()
			if len(values) > n {
				values = values[:n]
			}
			fmt.Printf("  %s: %v\n", k, values)
		}
	}
}

func firstKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

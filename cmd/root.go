// Package cmd is the cikmapper command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oarkflow/cikmapper/config"
	"github.com/oarkflow/cikmapper/fetch"
	"github.com/oarkflow/cikmapper/log"
	"github.com/oarkflow/cikmapper/mapper"
	"github.com/oarkflow/cikmapper/retriever"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "cikmapper",
		Short: "Map SEC CIKs to tickers, company names, exchanges and fund identifiers",
		Long: `cikmapper downloads the SEC company and mutual fund ticker files and
derives lookup tables between CIK, ticker, name, exchange, series ID and class ID.

Available subcommands:
  generate - write the tables and every mapping to the output directory
  serve    - serve the mappings over HTTP
  urls     - print download commands for the published files`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitConfig(cfgFile)
			log.SetLogging(config.Config.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "path to the ini config file")
	root.AddCommand(newGenerateCmd(), newServeCmd(), newURLsCmd())
	return root
}

// Execute runs the command line with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

// buildMappers constructs the stock and the mutual fund mapper one after the other.
func buildMappers(conf config.ConfList) ([]mapper.Mapper, error) {
	urls := map[retriever.Variant]string{
		retriever.Stocks:      conf.StockURL,
		retriever.MutualFunds: conf.MutualFundURL,
	}
	mappers := make([]mapper.Mapper, 0, len(retriever.Variants))
	for _, v := range retriever.Variants {
		r, err := retriever.ForVariant(v, urls[v])
		if err != nil {
			return nil, err
		}
		client := fetch.NewClient(conf.UserAgent, conf.HostFor(r.SourceURL()))
		m, err := mapper.New(v, client, r.SourceURL())
		if err != nil {
			return nil, err
		}
		mappers = append(mappers, m)
	}
	return mappers, nil
}

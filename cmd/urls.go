package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oarkflow/cikmapper/config"
	"github.com/oarkflow/cikmapper/fetch"
	"github.com/oarkflow/cikmapper/publish"
)

func newURLsCmd() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "urls",
		Short: "Print curl commands for every generated file on GitHub and jsDelivr",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.Config
			urls, err := publish.Collect(conf.OutputDir, publish.Target{
				Repo:   conf.Repo,
				Branch: conf.Branch,
				Dir:    filepath.ToSlash(filepath.Clean(conf.OutputDir)),
			})
			if err != nil {
				return err
			}
			if validate {
				// the SEC Host header must not be sent to the CDNs
				client := fetch.NewClient(conf.UserAgent, "")
				if err := publish.Validate(client, urls.All()); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), urls.RST())
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "GET every URL and check that it parses")
	return cmd
}

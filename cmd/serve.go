package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oarkflow/cikmapper/app/server"
	"github.com/oarkflow/cikmapper/config"
)

func newServeCmd() *cobra.Command {
	var files bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Fetch both datasets and serve their mappings over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.Config
			mappers, err := buildMappers(conf)
			if err != nil {
				return err
			}
			dir := ""
			if files {
				dir = conf.OutputDir
			}
			srv := server.New(dir, mappers...)
			if err := srv.Index(); err != nil {
				return err
			}
			return srv.Run(conf.Addr())
		},
	}
	cmd.Flags().BoolVar(&files, "files", false, "also serve the output directory under /files/")
	return cmd
}

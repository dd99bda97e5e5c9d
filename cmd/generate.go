package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oarkflow/cikmapper/config"
	"github.com/oarkflow/cikmapper/export"
	"github.com/oarkflow/cikmapper/store"
)

func newGenerateCmd() *cobra.Command {
	var (
		output string
		gzip   bool
		sqlite string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write mappings.csv and one JSON file per mapping for every dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.Config
			if cmd.Flags().Changed("output") {
				conf.OutputDir = output
			}
			if cmd.Flags().Changed("gzip") {
				conf.Gzip = gzip
			}
			if cmd.Flags().Changed("sqlite") {
				conf.SQLite = sqlite
			}
			return runGenerate(conf)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (overrides [output] dir)")
	cmd.Flags().BoolVar(&gzip, "gzip", false, "also write .gz sidecars")
	cmd.Flags().StringVar(&sqlite, "sqlite", "", "SQLite snapshot file")
	return cmd
}

func runGenerate(conf config.ConfList) error {
	mappers, err := buildMappers(conf)
	if err != nil {
		return err
	}
	opts := export.Options{Dir: conf.OutputDir, Gzip: conf.Gzip}
	if conf.SQLite != "" {
		db, err := store.Open(conf.SQLite)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.Store = db
	}
	files, err := export.All(opts, mappers...)
	if err != nil {
		return err
	}
	logrus.Infof("wrote %d files to %s", len(files), conf.OutputDir)
	return nil
}

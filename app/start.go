package app

import (
	"github.com/spf13/cobra"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the vidyodaya web service",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfig(configPath())
			if err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "Print the configuration as JSON")

	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration read from main.toml with the
VIDYODAYA_CONFIG_JSON override applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfig(configPath())
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)

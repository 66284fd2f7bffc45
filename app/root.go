// Package app implements the main application commands.
package app

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// envPrefix prefixes the environment variables bound to flags.
	envPrefix = "VIDYODAYA"

	// configPathKey is the viper key of the configuration directory.
	configPathKey = "config_path"
)

func init() { //nolint: gochecknoinits
	cobra.OnInitialize(loadEnv)

	rootCmd.PersistentFlags().String("config", "", "Directory holding main.toml (env VIDYODAYA_CONFIG_PATH, default ./etc/)")

	_ = viper.BindPFlag(configPathKey, rootCmd.PersistentFlags().Lookup("config"))

	viper.SetEnvPrefix(envPrefix)
	_ = viper.BindEnv(configPathKey)
}

var rootCmd = &cobra.Command{
	Use:   "vidyodaya",
	Short: "vidyodaya serves the roles, users and articles REST API",
	Long: `vidyodaya is the backend of the Vidyodaya website. It serves a
REST API for roles, users and articles backed by MySQL, PostgreSQL or SQLite.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// loadEnv loads a .env file from the working directory when present.
func loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
}

// configPath returns the configuration directory from the flag or the environment.
func configPath() string {
	return viper.GetString(configPathKey)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

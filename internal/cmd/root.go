// Package cmd wires the watcher into a command-line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gradeflow/jobwatch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "jobwatch",
	Short: "Background job-completion watcher for grading dashboards",
	Long: `Jobwatch polls a grading backend for a batch of outstanding jobs and
notifies the user exactly once per completed job, even across restarts
within the same session. Completions are reported to the embedding
application through a one-shot rerun signal.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/jobwatch/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "backend base URL (overrides backend.url)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/jobwatch")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("JOBWATCH")
	// Replace dots with underscores for nested keys in env vars
	// e.g., JOBWATCH_BACKEND_URL for backend.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Package cmd implements the CLI commands for wialon-registration.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "wialon-registration",
	Short: "Validate and register assets against Wialon",
	Long: "An API-first service that validates asset registration forms, checks\n" +
		"tracking device IMEIs against a Wialon hosting account, and records\n" +
		"each submission.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&output, "output", "table", "output format (table, json)")

	rootCmd.AddCommand(
		serveCommand(),
		validateCommand(),
		lookupCommand(),
		availableCommand(),
		tokensCommand(),
		migrateCommand(),
		versionCommand(),
	)
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

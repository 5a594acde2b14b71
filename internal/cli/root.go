// Package cli implements the filmoteca command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "filmoteca",
	Short:        "Personal movie collection manager",
	Long:         "Filmoteca serves a JSON API and a web UI for managing a personal movie collection.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

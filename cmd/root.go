package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storybot",
	Short: "Pivotal Tracker story relay for team chat",
	Long:  "Storybot watches team chat for Pivotal Tracker story links and posts a compact summary of each referenced story back into the conversation.",
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

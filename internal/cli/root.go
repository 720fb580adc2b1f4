package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tend",
	Short: "A local-first relationship garden",
	Long:  "Tend tracks the people you care about, scores how fresh each relationship is, and nudges you before they wilt. Single Go binary, local SQLite, no accounts.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(unlogCmd)
	rootCmd.AddCommand(nudgesCmd)
	rootCmd.AddCommand(gardenCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportICSCmd)
}

// Package cli wires the zeke commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zeke",
	Short: "Knowledge graph retrieval for a personal assistant",
	Long:  "Zeke links people, places, topics, organizations, and events across assistant domains, and answers queries by traversing the graph. Single Go binary, local SQLite.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bridgesCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(seedCmd)
}

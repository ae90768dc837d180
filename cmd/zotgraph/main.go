// Package main provides the zotgraph CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zotgraph/pkg/logger"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zotgraph",
	Short: "Project Zotero CSV exports into a Neo4j property graph",
	Long: `zotgraph ingests bibliographic records from a Zotero CSV export and
materializes them as a property graph: Paper nodes connected to Authors,
Keywords, Publishers, Journals and Subject classifications.

Connection settings come from the environment (NEO4J_URI, NEO4J_USER,
NEO4J_PASSWORD), with an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(os.Getenv("ENV")); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.Version = Version
}

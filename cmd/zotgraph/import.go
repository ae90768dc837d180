package main

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zotgraph/internal/graph"
	"zotgraph/internal/importer"
	"zotgraph/internal/record"
	"zotgraph/internal/source"
	"zotgraph/pkg/config"
	"zotgraph/pkg/errors"
	"zotgraph/pkg/logger"
)

var (
	importEncoding string
	importClear    bool
)

func init() {
	importCmd.Flags().StringVar(&importEncoding, "encoding", "", "Input file encoding (default UTF-8, BOM stripped)")
	importCmd.Flags().BoolVar(&importClear, "clear", false, "Delete all existing nodes and relationships before importing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a Zotero CSV export into the graph",
	Long: `Import a Zotero CSV export into the graph.

Every record is upserted: re-importing the same file updates nodes in
place instead of creating duplicates. A record that fails to import is
logged and skipped; the batch continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return err
	}

	// Read and decode the whole input before touching the store, so an
	// unreadable file aborts with nothing imported.
	rows, columns, err := source.NewReader().ReadFile(args[0], importEncoding)
	if err != nil {
		log.Error("Failed to read input file", zap.Error(err))
		return err
	}

	log.Info("Data preview",
		zap.Strings("columns", columns),
		zap.Strings("first_titles", previewTitles(rows, 3)))

	ctx := context.Background()

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Error("Failed to create Neo4j driver", zap.Error(err))
		return errors.NewGraphConnectionFailed(cfg.Neo4jURI, err)
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Error("Failed to verify Neo4j connectivity", zap.Error(err))
		return errors.NewGraphConnectionFailed(cfg.Neo4jURI, err)
	}
	log.Info("Connected to Neo4j", zap.String("uri", cfg.Neo4jURI))

	repo := graph.NewRepository(driver)
	batch := repo.NewBatch(ctx)
	defer batch.Close(ctx)

	summary, err := importer.New(batch).Run(ctx, rows, importClear)
	if err != nil {
		log.Error("Import failed", zap.Error(err))
		return err
	}

	log.Info("Import finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))
	return nil
}

func previewTitles(rows []record.Row, n int) []string {
	titles := []string{}
	for _, row := range rows {
		if len(titles) == n {
			break
		}
		titles = append(titles, row["Title"])
	}
	return titles
}

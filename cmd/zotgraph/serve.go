package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zotgraph/internal/graph"
	"zotgraph/internal/server"
	"zotgraph/pkg/config"
	"zotgraph/pkg/errors"
	"zotgraph/pkg/logger"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only query API over the imported graph",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return err
	}

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

	repo := graph.NewRepository(driver)
	router := server.NewRouter(repo, cfg.IsProduction())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

// Package server exposes a read-only query API over the imported
// bibliographic graph.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zotgraph/internal/graph"
	"zotgraph/pkg/logger"
)

// Querier is the graph read surface the API serves. It is satisfied by
// *graph.Repository.
type Querier interface {
	GetPaper(ctx context.Context, paperKey string) (*graph.Paper, error)
	PapersByAuthor(ctx context.Context, authorName string) ([]graph.Paper, error)
	TopKeywords(ctx context.Context, limit int) ([]graph.KeywordCount, error)
	Stats(ctx context.Context) (*graph.Stats, error)
}

// NewRouter builds the gin router for the query API
func NewRouter(q Querier, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.Get()

	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		api.GET("/papers/:key", func(c *gin.Context) {
			ctx := c.Request.Context()

			paper, err := q.GetPaper(ctx, c.Param("key"))
			if err != nil {
				if _, ok := err.(graph.ErrPaperNotFound); ok {
					c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
					return
				}
				log.Error("Failed to fetch paper", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
				return
			}

			c.JSON(http.StatusOK, paper)
		})

		api.GET("/authors/:name/papers", func(c *gin.Context) {
			ctx := c.Request.Context()

			papers, err := q.PapersByAuthor(ctx, c.Param("name"))
			if err != nil {
				log.Error("Failed to fetch papers by author", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"author": c.Param("name"),
				"papers": papers,
			})
		})

		api.GET("/keywords/top", func(c *gin.Context) {
			ctx := c.Request.Context()

			limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
			keywords, err := q.TopKeywords(ctx, limit)
			if err != nil {
				log.Error("Failed to fetch top keywords", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch keywords"})
				return
			}

			c.JSON(http.StatusOK, gin.H{"keywords": keywords})
		})

		api.GET("/stats", func(c *gin.Context) {
			ctx := c.Request.Context()

			stats, err := q.Stats(ctx)
			if err != nil {
				log.Error("Failed to fetch graph stats", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
				return
			}

			c.JSON(http.StatusOK, stats)
		})
	}

	return router
}

func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"zotgraph/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// NewBatch opens a write session held for the duration of one import batch.
// The caller must Close it on all exit paths.
func (r *Repository) NewBatch(ctx context.Context) *Batch {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	return &Batch{
		session: session,
		logger:  r.logger,
	}
}

// Batch is a single shared write handle over the graph store. Every
// operation is an idempotent merge keyed by a natural key; a record's
// operations are intentionally not wrapped in one transaction, so a
// failure partway through leaves that record partially written.
type Batch struct {
	session neo4j.SessionWithContext
	logger  *zap.Logger
}

// Close releases the batch session
func (b *Batch) Close(ctx context.Context) {
	_ = b.session.Close(ctx)
}

// Clear removes every node and relationship from the graph
func (b *Batch) Clear(ctx context.Context) error {
	_, err := b.session.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
	if err != nil {
		return fmt.Errorf("failed to clear graph: %w", err)
	}
	b.logger.Info("Cleared existing graph data")
	return nil
}

// EnsureConstraints creates uniqueness constraints for the natural keys.
// Failures are reported but not fatal; merges stay correct without them.
func (b *Batch) EnsureConstraints(ctx context.Context) error {
	constraints := []string{
		"CREATE CONSTRAINT paper_key IF NOT EXISTS FOR (p:Paper) REQUIRE p.paper_key IS UNIQUE",
		"CREATE CONSTRAINT author_name IF NOT EXISTS FOR (a:Author) REQUIRE a.name IS UNIQUE",
		"CREATE CONSTRAINT keyword_name IF NOT EXISTS FOR (k:Keyword) REQUIRE k.name IS UNIQUE",
		"CREATE CONSTRAINT publisher_name IF NOT EXISTS FOR (pub:Publisher) REQUIRE pub.name IS UNIQUE",
		"CREATE CONSTRAINT journal_name IF NOT EXISTS FOR (j:Journal) REQUIRE j.name IS UNIQUE",
		"CREATE CONSTRAINT subject_name IF NOT EXISTS FOR (s:Subject) REQUIRE s.name IS UNIQUE",
	}
	for _, c := range constraints {
		if _, err := b.session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}
	return nil
}

// UpsertPaper creates or updates the Paper node for the given key,
// overwriting prior property values and refreshing imported_at.
func (b *Batch) UpsertPaper(ctx context.Context, paperKey string, props map[string]any) error {
	query := `
		MERGE (p:Paper {paper_key: $paperKey})
		SET p += $props,
		    p.imported_at = datetime()
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"paperKey": paperKey,
		"props":    props,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert paper: %w", err)
	}
	return nil
}

// UpsertAuthor creates or updates an Author node keyed by name. The
// last_seen_in hint is last-write-wins, not an append log.
func (b *Batch) UpsertAuthor(ctx context.Context, name, paperTitle string) error {
	query := `
		MERGE (a:Author {name: $name})
		SET a.last_seen_in = $paperTitle
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"name":       name,
		"paperTitle": paperTitle,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert author %q: %w", name, err)
	}
	return nil
}

// LinkAuthor merges an AUTHORED_BY edge from the paper to the author
func (b *Batch) LinkAuthor(ctx context.Context, paperKey, authorName string) error {
	query := `
		MATCH (p:Paper {paper_key: $paperKey})
		MATCH (a:Author {name: $authorName})
		MERGE (p)-[:AUTHORED_BY]->(a)
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"paperKey":   paperKey,
		"authorName": authorName,
	})
	if err != nil {
		return fmt.Errorf("failed to link author %q: %w", authorName, err)
	}
	return nil
}

// UpsertKeyword creates a Keyword node keyed by name if absent
func (b *Batch) UpsertKeyword(ctx context.Context, name string) error {
	query := `MERGE (k:Keyword {name: $name})`
	_, err := b.session.Run(ctx, query, map[string]any{"name": name})
	if err != nil {
		return fmt.Errorf("failed to upsert keyword %q: %w", name, err)
	}
	return nil
}

// LinkKeyword merges a HAS_KEYWORD edge from the paper to the keyword
func (b *Batch) LinkKeyword(ctx context.Context, paperKey, keyword string) error {
	query := `
		MATCH (p:Paper {paper_key: $paperKey})
		MATCH (k:Keyword {name: $keyword})
		MERGE (p)-[:HAS_KEYWORD]->(k)
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"paperKey": paperKey,
		"keyword":  keyword,
	})
	if err != nil {
		return fmt.Errorf("failed to link keyword %q: %w", keyword, err)
	}
	return nil
}

// UpsertPublisher merges a Publisher node and its PUBLISHED_BY edge
func (b *Batch) UpsertPublisher(ctx context.Context, paperKey, name string) error {
	query := `
		MERGE (pub:Publisher {name: $name})
		WITH pub
		MATCH (p:Paper {paper_key: $paperKey})
		MERGE (p)-[:PUBLISHED_BY]->(pub)
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"name":     name,
		"paperKey": paperKey,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert publisher %q: %w", name, err)
	}
	return nil
}

// UpsertJournal merges a Journal node (setting issn) and its PUBLISHED_IN edge
func (b *Batch) UpsertJournal(ctx context.Context, paperKey, name, issn string) error {
	query := `
		MERGE (j:Journal {name: $name})
		SET j.issn = $issn
		WITH j
		MATCH (p:Paper {paper_key: $paperKey})
		MERGE (p)-[:PUBLISHED_IN]->(j)
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"name":     name,
		"issn":     issn,
		"paperKey": paperKey,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert journal %q: %w", name, err)
	}
	return nil
}

// UpsertSubject merges a Subject node and its BELONGS_TO_SUBJECT edge
func (b *Batch) UpsertSubject(ctx context.Context, paperKey, name string) error {
	query := `
		MERGE (sub:Subject {name: $name})
		WITH sub
		MATCH (p:Paper {paper_key: $paperKey})
		MERGE (p)-[:BELONGS_TO_SUBJECT]->(sub)
	`
	_, err := b.session.Run(ctx, query, map[string]any{
		"name":     name,
		"paperKey": paperKey,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert subject %q: %w", name, err)
	}
	return nil
}

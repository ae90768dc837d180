package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"
)

// paperReturnClause aliases every Paper property the read queries expose.
const paperReturnClause = `
	p.paper_key as paper_key,
	p.title as title,
	p.item_type as item_type,
	p.publication_year as publication_year,
	p.publication_title as publication_title,
	p.doi as doi,
	p.url as url,
	p.abstract as abstract,
	p.date as date,
	p.pages as pages,
	p.has_attachment as has_attachment,
	p.download_count as download_count,
	p.citation_count as citation_count,
	p.major_field as major_field,
	p.imported_at as imported_at
`

// GetPaper returns the paper with the given key
func (r *Repository) GetPaper(ctx context.Context, paperKey string) (*Paper, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `MATCH (p:Paper {paper_key: $paperKey}) RETURN ` + paperReturnClause

	result, err := session.Run(ctx, query, map[string]any{"paperKey": paperKey})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, ErrPaperNotFound{PaperKey: paperKey}
	}

	paper := paperFromRecord(result.Record())
	return &paper, nil
}

// PapersByAuthor returns all papers linked to the given author name
func (r *Repository) PapersByAuthor(ctx context.Context, authorName string) ([]Paper, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Paper)-[:AUTHORED_BY]->(a:Author {name: $name})
		RETURN ` + paperReturnClause + `
		ORDER BY p.publication_year DESC, p.title
	`

	result, err := session.Run(ctx, query, map[string]any{"name": authorName})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	papers := []Paper{}
	for result.Next(ctx) {
		papers = append(papers, paperFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return papers, nil
}

// TopKeywords returns the keywords attached to the most papers
func (r *Repository) TopKeywords(ctx context.Context, limit int) ([]KeywordCount, error) {
	if limit <= 0 {
		limit = 20
	}
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Paper)-[:HAS_KEYWORD]->(k:Keyword)
		RETURN k.name as name, count(p) as papers
		ORDER BY papers DESC, name
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	keywords := []KeywordCount{}
	for result.Next(ctx) {
		keywords = append(keywords, KeywordCount{
			Name:   getStringFromRecord(result.Record(), "name"),
			Papers: getInt64FromRecord(result.Record(), "papers"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return keywords, nil
}

// Stats counts nodes per label and relationships across the graph. Counts
// run concurrently, each on its own read session.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	targets := []struct {
		label string
		dest  *int64
	}{
		{LabelPaper, &stats.Papers},
		{LabelAuthor, &stats.Authors},
		{LabelKeyword, &stats.Keywords},
		{LabelPublisher, &stats.Publishers},
		{LabelJournal, &stats.Journals},
		{LabelSubject, &stats.Subjects},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			count, err := r.countQuery(gctx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) as count", t.label))
			if err != nil {
				return err
			}
			*t.dest = count
			return nil
		})
	}
	g.Go(func() error {
		count, err := r.countQuery(gctx, "MATCH ()-[rel]->() RETURN count(rel) as count")
		if err != nil {
			return err
		}
		stats.Relationships = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *Repository) countQuery(ctx context.Context, query string) (int64, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return 0, fmt.Errorf("failed to fetch record: %w", err)
		}
		return 0, nil
	}
	return getInt64FromRecord(result.Record(), "count"), nil
}

func paperFromRecord(record *neo4j.Record) Paper {
	return Paper{
		PaperKey:         getStringFromRecord(record, "paper_key"),
		Title:            getStringFromRecord(record, "title"),
		ItemType:         getStringFromRecord(record, "item_type"),
		PublicationYear:  getStringFromRecord(record, "publication_year"),
		PublicationTitle: getStringFromRecord(record, "publication_title"),
		DOI:              getStringFromRecord(record, "doi"),
		URL:              getStringFromRecord(record, "url"),
		Abstract:         getStringFromRecord(record, "abstract"),
		Date:             getStringFromRecord(record, "date"),
		Pages:            getStringFromRecord(record, "pages"),
		HasAttachment:    getBoolFromRecord(record, "has_attachment"),
		DownloadCount:    getIntFromRecord(record, "download_count"),
		CitationCount:    getIntFromRecord(record, "citation_count"),
		MajorField:       getStringFromRecord(record, "major_field"),
		ImportedAt:       getTimeFromRecord(record, "imported_at"),
	}
}

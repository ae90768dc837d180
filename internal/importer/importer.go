// Package importer drives the batch that projects bibliographic rows into
// the property graph: normalize, extract entities, upsert, per record.
package importer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zotgraph/internal/record"
	"zotgraph/pkg/errors"
	"zotgraph/pkg/logger"
)

// ProgressInterval is the number of records between progress log lines.
const ProgressInterval = 10

// State describes where the importer is in its lifecycle
type State string

const (
	StateIdle      State = "idle"
	StateImporting State = "importing"
	StateCompleted State = "completed"
)

// Store is the graph write surface the importer runs against. It is
// satisfied by *graph.Batch.
type Store interface {
	Clear(ctx context.Context) error
	EnsureConstraints(ctx context.Context) error
	UpsertPaper(ctx context.Context, paperKey string, props map[string]any) error
	UpsertAuthor(ctx context.Context, name, paperTitle string) error
	LinkAuthor(ctx context.Context, paperKey, authorName string) error
	UpsertKeyword(ctx context.Context, name string) error
	LinkKeyword(ctx context.Context, paperKey, keyword string) error
	UpsertPublisher(ctx context.Context, paperKey, name string) error
	UpsertJournal(ctx context.Context, paperKey, name, issn string) error
	UpsertSubject(ctx context.Context, paperKey, name string) error
}

// Summary reports the outcome of one import batch
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Importer sequences the import batch over a single shared store handle
type Importer struct {
	store      Store
	normalizer *record.Normalizer
	logger     *zap.Logger
	runID      string
	state      State
}

// New creates an importer bound to the given store handle
func New(store Store) *Importer {
	runID := uuid.NewString()
	return &Importer{
		store:      store,
		normalizer: record.NewNormalizer(),
		logger:     logger.Get().With(zap.String("run_id", runID)),
		runID:      runID,
		state:      StateIdle,
	}
}

// State returns the importer's current lifecycle state
func (i *Importer) State() State {
	return i.state
}

// Run processes every row strictly in input order. A failure while
// importing a single record is logged with that record's key and the batch
// continues; only a failed full-graph clear aborts the run.
func (i *Importer) Run(ctx context.Context, rows []record.Row, clearExisting bool) (*Summary, error) {
	i.state = StateImporting

	if clearExisting {
		if err := i.store.Clear(ctx); err != nil {
			return nil, err
		}
	}

	if err := i.store.EnsureConstraints(ctx); err != nil {
		i.logger.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	total := len(rows)
	i.logger.Info("Starting import", zap.Int("records", total))

	summary := &Summary{Total: total}
	for idx, row := range rows {
		if err := i.importRecord(ctx, row); err != nil {
			recErr := errors.NewRecordImportFailed(row["Key"], err)
			i.logger.Error("Failed to import record",
				zap.String("paper_key", recErr.PaperKey),
				zap.Error(err))
			summary.Failed++
		} else {
			summary.Succeeded++
		}

		if (idx+1)%ProgressInterval == 0 || idx+1 == total {
			i.logger.Info("Import progress",
				zap.Int("done", idx+1),
				zap.Int("total", total))
		}
	}

	i.state = StateCompleted
	i.logger.Info("Import completed", zap.Int("records", total))
	return summary, nil
}

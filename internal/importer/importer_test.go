package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zotgraph/internal/record"
)

// fakeStore is an in-memory Store that mimics merge-by-key semantics.
type fakeStore struct {
	cleared     bool
	constraints bool

	papers      map[string]map[string]any
	authors     map[string]string // name -> last_seen_in
	keywords    map[string]bool
	publishers  map[string]bool
	journals    map[string]string // name -> issn
	subjects    map[string]bool
	edges       map[string]bool // "TYPE:paperKey->name"

	failPaperKey string // UpsertPaper fails for this key
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		papers:     map[string]map[string]any{},
		authors:    map[string]string{},
		keywords:   map[string]bool{},
		publishers: map[string]bool{},
		journals:   map[string]string{},
		subjects:   map[string]bool{},
		edges:      map[string]bool{},
	}
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.cleared = true
	return nil
}

func (f *fakeStore) EnsureConstraints(ctx context.Context) error {
	f.constraints = true
	return nil
}

func (f *fakeStore) UpsertPaper(ctx context.Context, paperKey string, props map[string]any) error {
	if f.failPaperKey != "" && paperKey == f.failPaperKey {
		return fmt.Errorf("simulated store failure")
	}
	f.papers[paperKey] = props
	return nil
}

func (f *fakeStore) UpsertAuthor(ctx context.Context, name, paperTitle string) error {
	f.authors[name] = paperTitle
	return nil
}

func (f *fakeStore) LinkAuthor(ctx context.Context, paperKey, authorName string) error {
	f.edges["AUTHORED_BY:"+paperKey+"->"+authorName] = true
	return nil
}

func (f *fakeStore) UpsertKeyword(ctx context.Context, name string) error {
	f.keywords[name] = true
	return nil
}

func (f *fakeStore) LinkKeyword(ctx context.Context, paperKey, keyword string) error {
	f.edges["HAS_KEYWORD:"+paperKey+"->"+keyword] = true
	return nil
}

func (f *fakeStore) UpsertPublisher(ctx context.Context, paperKey, name string) error {
	f.publishers[name] = true
	f.edges["PUBLISHED_BY:"+paperKey+"->"+name] = true
	return nil
}

func (f *fakeStore) UpsertJournal(ctx context.Context, paperKey, name, issn string) error {
	f.journals[name] = issn
	f.edges["PUBLISHED_IN:"+paperKey+"->"+name] = true
	return nil
}

func (f *fakeStore) UpsertSubject(ctx context.Context, paperKey, name string) error {
	f.subjects[name] = true
	f.edges["BELONGS_TO_SUBJECT:"+paperKey+"->"+name] = true
	return nil
}

func sampleRow(key string) record.Row {
	return record.Row{
		"Key":               key,
		"Item Type":         "journalArticle",
		"Title":             "Paper " + key,
		"Publication Title": "Journal of Testing",
		"Author":            "Zhang, Wei; Li, Na",
		"Manual Tags":       "AI;ML",
		"Automatic Tags":    "ML;Data",
		"Publisher":         "Springer",
		"ISSN":              "1234-5678",
		"Extra":             "download: 120\nCNKICite: 5\nmajor: Physics",
	}
}

func TestRun_ImportsRecord(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	summary, err := imp.Run(context.Background(), []record.Row{sampleRow("K1")}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.False(t, store.cleared)
	assert.True(t, store.constraints)

	props := store.papers["K1"]
	require.NotNil(t, props)
	assert.Equal(t, "Paper K1", props["title"])
	assert.Equal(t, 120, props["download_count"])
	assert.Equal(t, 5, props["citation_count"])

	assert.Equal(t, "Paper K1", store.authors["Zhang, Wei"])
	assert.True(t, store.edges["AUTHORED_BY:K1->Li, Na"])

	assert.True(t, store.publishers["Springer"])
	assert.Equal(t, "1234-5678", store.journals["Journal of Testing"])
	assert.True(t, store.subjects["Physics"])
	assert.True(t, store.edges["BELONGS_TO_SUBJECT:K1->Physics"])
}

func TestRun_TagUnionProducesThreeEdges(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	_, err := imp.Run(context.Background(), []record.Row{sampleRow("K1")}, false)
	require.NoError(t, err)

	count := 0
	for edge := range store.edges {
		if strings.HasPrefix(edge, "HAS_KEYWORD:") {
			count++
		}
	}
	assert.Equal(t, 3, count)
	assert.True(t, store.edges["HAS_KEYWORD:K1->AI"])
	assert.True(t, store.edges["HAS_KEYWORD:K1->ML"])
	assert.True(t, store.edges["HAS_KEYWORD:K1->Data"])
}

func TestRun_PartialFailureIsolation(t *testing.T) {
	store := newFakeStore()
	store.failPaperKey = "K5"
	imp := New(store)

	rows := make([]record.Row, 0, 10)
	for i := 1; i <= 10; i++ {
		rows = append(rows, sampleRow(fmt.Sprintf("K%d", i)))
	}

	summary, err := imp.Run(context.Background(), rows, false)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 9, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	_, failedPresent := store.papers["K5"]
	assert.False(t, failedPresent)
	for _, key := range []string{"K1", "K4", "K6", "K10"} {
		_, ok := store.papers[key]
		assert.True(t, ok, "record %s should still be imported", key)
	}
}

func TestRun_ClearFlag(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	_, err := imp.Run(context.Background(), []record.Row{sampleRow("K1")}, true)
	require.NoError(t, err)
	assert.True(t, store.cleared)
}

func TestRun_Idempotent(t *testing.T) {
	store := newFakeStore()
	rows := []record.Row{sampleRow("K1"), sampleRow("K2")}

	_, err := New(store).Run(context.Background(), rows, false)
	require.NoError(t, err)

	papersAfterFirst := len(store.papers)
	edgesAfterFirst := len(store.edges)
	authorsAfterFirst := len(store.authors)

	_, err = New(store).Run(context.Background(), rows, false)
	require.NoError(t, err)

	assert.Equal(t, papersAfterFirst, len(store.papers))
	assert.Equal(t, edgesAfterFirst, len(store.edges))
	assert.Equal(t, authorsAfterFirst, len(store.authors))
}

func TestRun_RecordWithoutKey(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	row := record.Row{"Title": "Keyless"}
	summary, err := imp.Run(context.Background(), []record.Row{row}, false)
	require.NoError(t, err)

	// A keyless record is still processed and merges under the empty key.
	assert.Equal(t, 1, summary.Succeeded)
	_, ok := store.papers[""]
	assert.True(t, ok)
}

func TestRun_SecondaryEntitiesConditional(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	row := record.Row{
		"Key":               "K9",
		"Item Type":         "book",
		"Title":             "A Book",
		"Publication Title": "Ignored For Books",
	}
	_, err := imp.Run(context.Background(), []record.Row{row}, false)
	require.NoError(t, err)

	assert.Empty(t, store.publishers)
	assert.Empty(t, store.journals)
	assert.Empty(t, store.subjects)
}

func TestRun_StateTransitions(t *testing.T) {
	store := newFakeStore()
	imp := New(store)

	assert.Equal(t, StateIdle, imp.State())

	_, err := imp.Run(context.Background(), []record.Row{sampleRow("K1")}, false)
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, imp.State())
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zotgraph/internal/graph"
)

type fakeQuerier struct {
	papers map[string]graph.Paper
	stats  graph.Stats
	fail   bool
}

func (f *fakeQuerier) GetPaper(ctx context.Context, paperKey string) (*graph.Paper, error) {
	if f.fail {
		return nil, fmt.Errorf("store unavailable")
	}
	p, ok := f.papers[paperKey]
	if !ok {
		return nil, graph.ErrPaperNotFound{PaperKey: paperKey}
	}
	return &p, nil
}

func (f *fakeQuerier) PapersByAuthor(ctx context.Context, authorName string) ([]graph.Paper, error) {
	papers := []graph.Paper{}
	for _, p := range f.papers {
		papers = append(papers, p)
	}
	return papers, nil
}

func (f *fakeQuerier) TopKeywords(ctx context.Context, limit int) ([]graph.KeywordCount, error) {
	return []graph.KeywordCount{{Name: "AI", Papers: 3}}, nil
}

func (f *fakeQuerier) Stats(ctx context.Context) (*graph.Stats, error) {
	return &f.stats, nil
}

func testRouter(q Querier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(q, false)
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(&fakeQuerier{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestGetPaperEndpoint(t *testing.T) {
	q := &fakeQuerier{papers: map[string]graph.Paper{
		"K1": {PaperKey: "K1", Title: "First Paper"},
	}}
	router := testRouter(q)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/papers/K1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var paper graph.Paper
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paper))
	assert.Equal(t, "First Paper", paper.Title)
}

func TestGetPaperEndpoint_NotFound(t *testing.T) {
	router := testRouter(&fakeQuerier{papers: map[string]graph.Paper{}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/papers/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPaperEndpoint_StoreError(t *testing.T) {
	router := testRouter(&fakeQuerier{fail: true})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/papers/K1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	q := &fakeQuerier{stats: graph.Stats{Papers: 12, Authors: 30, Relationships: 55}}
	router := testRouter(q)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var stats graph.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(12), stats.Papers)
	assert.Equal(t, int64(55), stats.Relationships)
}

func TestTopKeywordsEndpoint(t *testing.T) {
	router := testRouter(&fakeQuerier{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/keywords/top?limit=5", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Keywords []graph.KeywordCount `json:"keywords"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Keywords, 1)
	assert.Equal(t, "AI", response.Keywords[0].Name)
}

// ABOUTME: Tests for the RAG orchestrator
// ABOUTME: Drives index and query flows with fakes over a real in-memory index
package rag

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/documind/documind/internal/chunker"
	"github.com/documind/documind/internal/generation"
	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/storage/sqlite"
)

// fakeEmbedder maps texts to deterministic unit vectors so similarity
// is predictable: identical texts score 1.0 against each other.
type fakeEmbedder struct {
	vectors map[string][]float64
	fail    error
}

func (f *fakeEmbedder) vectorFor(text string) []float64 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	// Arbitrary but deterministic direction off the known axes.
	raw := []float64{1, 1, 1}
	norm := math.Sqrt(3)
	return []float64{raw[0] / norm, raw[1] / norm, raw[2] / norm}
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = f.vectorFor(text)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.vectorFor(query), nil
}

type fakeGenerator struct {
	result *generation.Result
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, query string, sources []models.RetrievedSource) (*generation.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestService(t *testing.T, embedder Embedder, gen Generator) (*Service, *sqlite.VectorIndex) {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	index, err := sqlite.NewVectorIndex(db, 3)
	if err != nil {
		t.Fatalf("NewVectorIndex() error = %v", err)
	}
	ch := chunker.New(300, 50, 500)
	svc, err := NewService(ch, embedder, index, gen)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, index
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestIndexSuccess(t *testing.T) {
	svc, index := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "Go is a compiled language. It has goroutines.")

	results := svc.Index(context.Background(), []string{path})
	if len(results) != 1 {
		t.Fatalf("Index() returned %d results, want 1", len(results))
	}
	r := results[0]
	if r.Status != models.IndexStatusSuccess {
		t.Fatalf("status = %s (%s), want success", r.Status, r.Error)
	}
	if r.FileName != "notes.txt" {
		t.Errorf("FileName = %s", r.FileName)
	}
	if r.ChunksCreated == 0 || r.ChunksStored != r.ChunksCreated {
		t.Errorf("chunks created/stored = %d/%d", r.ChunksCreated, r.ChunksStored)
	}
	if r.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", r.TotalPages)
	}

	stats, err := index.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalEntries != r.ChunksStored {
		t.Errorf("index has %d entries, result says %d", stats.TotalEntries, r.ChunksStored)
	}
}

func TestIndexMissingFileIsFailedNotFatal(t *testing.T) {
	svc, _ := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "Some real content here.")

	results := svc.Index(context.Background(), []string{
		filepath.Join(dir, "missing.txt"),
		good,
	})
	if len(results) != 2 {
		t.Fatalf("Index() returned %d results, want 2", len(results))
	}
	if results[0].Status != models.IndexStatusFailed {
		t.Errorf("missing file status = %s, want failed", results[0].Status)
	}
	if results[0].Error == "" {
		t.Error("failed result should carry an error message")
	}
	if results[1].Status != models.IndexStatusSuccess {
		t.Errorf("good file status = %s, want success", results[1].Status)
	}
}

func TestIndexEmptyFileIsSkipped(t *testing.T) {
	svc, _ := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.txt", "   \n\n  ")

	results := svc.Index(context.Background(), []string{path})
	if results[0].Status != models.IndexStatusSkipped {
		t.Errorf("status = %s, want skipped", results[0].Status)
	}
}

func TestIndexEmbedFailureIsFailed(t *testing.T) {
	svc, _ := newTestService(t, &fakeEmbedder{fail: fmt.Errorf("api down")}, &fakeGenerator{})
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "Content that would be embedded.")

	results := svc.Index(context.Background(), []string{path})
	if results[0].Status != models.IndexStatusFailed {
		t.Errorf("status = %s, want failed", results[0].Status)
	}
	if !strings.Contains(results[0].Error, "api down") {
		t.Errorf("error = %q", results[0].Error)
	}
}

func TestReindexReplacesEntries(t *testing.T) {
	svc, index := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "Original content sentence.")

	svc.Index(context.Background(), []string{path})
	first, _ := index.Stats()

	svc.Index(context.Background(), []string{path})
	second, _ := index.Stats()

	if second.TotalEntries != first.TotalEntries {
		t.Errorf("re-index grew entries from %d to %d", first.TotalEntries, second.TotalEntries)
	}
	if second.TotalDocuments != 1 {
		t.Errorf("TotalDocuments = %d, want 1", second.TotalDocuments)
	}
}

func TestQueryReturnsCitedAnswer(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"Go is a compiled language. It has goroutines.": {1, 0, 0},
		"what is Go": {1, 0, 0},
	}}
	gen := &fakeGenerator{result: &generation.Result{
		Answer:    "Go is compiled [1].",
		Citations: []int{1},
		CitationMap: map[int]models.CitationSource{
			1: {Document: "notes.txt", Page: 1},
		},
	}}
	svc, _ := newTestService(t, embedder, gen)
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "Go is a compiled language. It has goroutines.")
	svc.Index(context.Background(), []string{path})

	resp, err := svc.Query(context.Background(), models.QueryRequest{Query: "what is Go"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Answer != "Go is compiled [1]." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if resp.NumSources != len(resp.Sources) || resp.NumSources == 0 {
		t.Errorf("NumSources = %d, Sources = %d", resp.NumSources, len(resp.Sources))
	}
	if resp.AvgSimilarity <= 0 {
		t.Errorf("AvgSimilarity = %f, want > 0", resp.AvgSimilarity)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestQueryNothingAboveFloorSkipsGeneration(t *testing.T) {
	// Orthogonal vectors: the stored chunk scores 0 against the query.
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"Stored content about cooking.": {1, 0, 0},
		"quantum physics":               {0, 1, 0},
	}}
	gen := &fakeGenerator{result: &generation.Result{Answer: "should not appear"}}
	svc, _ := newTestService(t, embedder, gen)
	dir := t.TempDir()
	path := writeFile(t, dir, "recipes.txt", "Stored content about cooking.")
	svc.Index(context.Background(), []string{path})

	resp, err := svc.Query(context.Background(), models.QueryRequest{
		Query:           "quantum physics",
		SimilarityFloor: 0.99,
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Answer != NotFoundAnswer {
		t.Errorf("Answer = %q, want not-found answer", resp.Answer)
	}
	if len(resp.Sources) != 0 || len(resp.Citations) != 0 || len(resp.CitationMap) != 0 {
		t.Errorf("not-found response should be empty: %+v", resp)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestQueryZeroFloorKeepsWeakSources(t *testing.T) {
	// Stored chunk scores 0.1 against the query, below the default 0.3
	// floor. An explicit floor of 0 must keep it.
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"Loosely related content.": {1, 0, 0},
		"barely matching query":    {0.1, math.Sqrt(1 - 0.01), 0},
	}}
	gen := &fakeGenerator{result: &generation.Result{Answer: "weak but used [1]."}}
	svc, _ := newTestService(t, embedder, gen)
	dir := t.TempDir()
	path := writeFile(t, dir, "loose.txt", "Loosely related content.")
	svc.Index(context.Background(), []string{path})

	resp, err := svc.Query(context.Background(), models.QueryRequest{
		Query:           "barely matching query",
		SimilarityFloor: 0,
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.NumSources != 1 {
		t.Errorf("NumSources = %d, want 1 (floor 0 accepts everything)", resp.NumSources)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestQueryUnsetFloorUsesDefault(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"Loosely related content.": {1, 0, 0},
		"barely matching query":    {0.1, math.Sqrt(1 - 0.01), 0},
	}}
	gen := &fakeGenerator{result: &generation.Result{Answer: "should not appear"}}
	svc, _ := newTestService(t, embedder, gen)
	dir := t.TempDir()
	path := writeFile(t, dir, "loose.txt", "Loosely related content.")
	svc.Index(context.Background(), []string{path})

	resp, err := svc.Query(context.Background(), models.QueryRequest{
		Query:           "barely matching query",
		SimilarityFloor: models.UnsetSimilarityFloor,
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if resp.Answer != NotFoundAnswer {
		t.Errorf("Answer = %q, want not-found (default floor filters 0.1)", resp.Answer)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestQueryInvalidRequest(t *testing.T) {
	svc, _ := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})

	if _, err := svc.Query(context.Background(), models.QueryRequest{Query: "q", TopK: 99}); err == nil {
		t.Error("Query() with top_k 99 should fail")
	}
	if _, err := svc.Query(context.Background(), models.QueryRequest{}); err == nil {
		t.Error("Query() with empty query should fail")
	}
}

func TestClearAll(t *testing.T) {
	svc, index := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})
	dir := t.TempDir()
	svc.Index(context.Background(), []string{
		writeFile(t, dir, "one.txt", "First document content."),
		writeFile(t, dir, "two.txt", "Second document content."),
	})

	cleared, err := svc.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if cleared == 0 {
		t.Error("ClearAll() removed 0 entries")
	}

	stats, _ := index.Stats()
	if stats.TotalEntries != 0 || stats.TotalDocuments != 0 {
		t.Errorf("index not empty after ClearAll(): %+v", stats)
	}
}

func TestDeleteDocument(t *testing.T) {
	svc, index := newTestService(t, &fakeEmbedder{}, &fakeGenerator{})
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "Some content worth deleting.")
	svc.Index(context.Background(), []string{path})

	deleted, err := svc.DeleteDocument("notes.txt")
	if err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}
	if deleted == 0 {
		t.Error("DeleteDocument() removed 0 entries")
	}

	stats, _ := index.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("index has %d entries after delete", stats.TotalEntries)
	}
}

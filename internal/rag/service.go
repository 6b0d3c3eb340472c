// ABOUTME: End-to-end RAG orchestration over extraction, chunking, embedding, and generation
// ABOUTME: Owns the index/query/delete/clear/stats operations exposed by the CLI and MCP server
package rag

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/documind/documind/internal/chunker"
	"github.com/documind/documind/internal/extract"
	"github.com/documind/documind/internal/generation"
	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/retrieval"
)

// NotFoundAnswer is returned when nothing in the index clears the
// similarity floor for a query. No model call is made in that case.
const NotFoundAnswer = "I couldn't find any relevant information in the indexed documents to answer your question."

// Embedder produces vectors for documents and queries.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}

// Index stores embedded chunks and answers similarity queries.
type Index interface {
	Add(entries []models.IndexEntry) error
	Query(vector []float64, k int, documentFilter string) ([]models.RetrievedSource, error)
	DeleteDocument(document string) (int, error)
	Clear() (int, error)
	Stats() (*models.IndexStats, error)
}

// Generator produces a cited answer from retrieved sources.
type Generator interface {
	Generate(ctx context.Context, query string, sources []models.RetrievedSource) (*generation.Result, error)
}

// Service ties the pipeline together.
type Service struct {
	chunker   *chunker.Chunker
	embedder  Embedder
	index     Index
	retriever *retrieval.Retriever
	generator Generator
}

// NewService creates the RAG service.
func NewService(ch *chunker.Chunker, embedder Embedder, index Index, generator Generator) (*Service, error) {
	if ch == nil {
		return nil, fmt.Errorf("chunker is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if index == nil {
		return nil, fmt.Errorf("index is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	retriever, err := retrieval.NewRetriever(embedder, index)
	if err != nil {
		return nil, err
	}
	return &Service{
		chunker:   ch,
		embedder:  embedder,
		index:     index,
		retriever: retriever,
		generator: generator,
	}, nil
}

// Index processes each file through extract, chunk, embed, and store.
// One file's failure never aborts the batch; every file gets a result
// with a success, failed, or skipped status.
func (s *Service) Index(ctx context.Context, paths []string) []models.IndexingResult {
	results := make([]models.IndexingResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, s.indexOne(ctx, path))
	}
	return results
}

func (s *Service) indexOne(ctx context.Context, path string) models.IndexingResult {
	fileName := filepath.Base(path)

	doc, err := extract.Extract(path)
	if err != nil {
		return models.IndexingResult{
			FileName: fileName,
			Status:   models.IndexStatusFailed,
			Error:    err.Error(),
		}
	}

	chunks, err := s.chunker.ChunkDocument(doc)
	if err != nil {
		return models.IndexingResult{
			FileName: fileName,
			Status:   models.IndexStatusFailed,
			Error:    err.Error(),
		}
	}
	if len(chunks) == 0 {
		return models.IndexingResult{
			FileName:   fileName,
			Status:     models.IndexStatusSkipped,
			TotalPages: doc.TotalPages(),
			Error:      "no text content",
		}
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return models.IndexingResult{
			FileName: fileName,
			Status:   models.IndexStatusFailed,
			Error:    err.Error(),
		}
	}

	entries := make([]models.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = models.IndexEntry{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Text:   chunk.Text,
			Metadata: models.EntryMetadata{
				Document:   chunk.Document,
				Page:       chunk.Page,
				ChunkIndex: chunk.ChunkIndex,
			},
		}
	}

	// Re-indexing replaces the document's entries instead of piling
	// duplicates into the index.
	if _, err := s.index.DeleteDocument(fileName); err != nil {
		return models.IndexingResult{
			FileName: fileName,
			Status:   models.IndexStatusFailed,
			Error:    err.Error(),
		}
	}
	if err := s.index.Add(entries); err != nil {
		return models.IndexingResult{
			FileName: fileName,
			Status:   models.IndexStatusFailed,
			Error:    err.Error(),
		}
	}

	return models.IndexingResult{
		FileName:      fileName,
		Status:        models.IndexStatusSuccess,
		ChunksCreated: len(chunks),
		ChunksStored:  len(entries),
		TotalPages:    doc.TotalPages(),
	}
}

// Query retrieves sources for the request and generates a cited answer.
// When nothing clears the similarity floor, the canned not-found answer
// is returned with zero sources and no model call.
func (s *Service) Query(ctx context.Context, req models.QueryRequest) (*models.RAGResponse, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sources, err := s.retriever.Retrieve(ctx, req.Query, req.TopK, req.SimilarityFloor, req.FileFilter)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	if len(sources) == 0 {
		return &models.RAGResponse{
			Query:       req.Query,
			Answer:      NotFoundAnswer,
			Sources:     []models.RetrievedSource{},
			Citations:   []int{},
			CitationMap: map[int]models.CitationSource{},
		}, nil
	}

	if req.Rerank {
		sources = retrieval.Rerank(sources, retrieval.StrategyDiversity)
	}

	result, err := s.generator.Generate(ctx, req.Query, sources)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &models.RAGResponse{
		Query:         req.Query,
		Answer:        result.Answer,
		Sources:       sources,
		Citations:     result.Citations,
		CitationMap:   result.CitationMap,
		Warnings:      result.Warnings,
		NumSources:    len(sources),
		AvgSimilarity: averageSimilarity(sources),
	}, nil
}

// DeleteDocument removes a document's entries from the index and
// reports how many were removed.
func (s *Service) DeleteDocument(document string) (int, error) {
	return s.index.DeleteDocument(document)
}

// ClearAll removes every document from the index and reports how many
// entries were removed. The embedding cache is left intact; cached
// vectors are keyed by content and stay valid for future indexing.
func (s *Service) ClearAll() (int, error) {
	return s.index.Clear()
}

// Stats reports the current index size.
func (s *Service) Stats() (*models.IndexStats, error) {
	return s.index.Stats()
}

func averageSimilarity(sources []models.RetrievedSource) float64 {
	if len(sources) == 0 {
		return 0
	}
	var sum float64
	for _, src := range sources {
		sum += src.SimilarityScore
	}
	return sum / float64(len(sources))
}

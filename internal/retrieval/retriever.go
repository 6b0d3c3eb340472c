// ABOUTME: Retrieval over the vector index with a similarity floor
// ABOUTME: Embeds the query, ranks stored chunks, and filters weak matches
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/documind/documind/internal/models"
)

// QueryEmbedder turns a query string into a vector.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}

// Index answers nearest-neighbor queries over stored entries.
type Index interface {
	Query(vector []float64, k int, documentFilter string) ([]models.RetrievedSource, error)
}

// Retriever finds the chunks most similar to a query.
type Retriever struct {
	embedder QueryEmbedder
	index    Index
}

// NewRetriever creates a retriever.
func NewRetriever(embedder QueryEmbedder, index Index) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if index == nil {
		return nil, fmt.Errorf("index is required")
	}
	return &Retriever{embedder: embedder, index: index}, nil
}

// Retrieve returns up to topK sources scoring at or above floor,
// most similar first. An empty result is not an error; it means
// nothing in the index is close enough to the query.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, floor float64, fileFilter string) ([]models.RetrievedSource, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	candidates, err := r.index.Query(vector, topK, fileFilter)
	if err != nil {
		return nil, fmt.Errorf("index query failed: %w", err)
	}

	var results []models.RetrievedSource
	for _, src := range candidates {
		if src.SimilarityScore >= floor {
			results = append(results, src)
		}
	}
	return results, nil
}

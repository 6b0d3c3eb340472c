// ABOUTME: Embedding service with a content-addressed write-through cache
// ABOUTME: Normalizes vectors to unit length so dot product equals cosine
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"github.com/documind/documind/internal/storage/sqlite"
)

// Embedder produces one vector per input text, in order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Service embeds texts through an Embedder, consulting a persistent
// cache first. Cache keys are content hashes namespaced by model and
// dimension, so switching either never serves stale vectors.
type Service struct {
	embedder  Embedder
	cache     *sqlite.CacheStore
	model     string
	dimension int
}

// NewService creates an embedding service.
func NewService(embedder Embedder, cache *sqlite.CacheStore, model string, dimension int) (*Service, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if dimension < 1 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	return &Service{
		embedder:  embedder,
		cache:     cache,
		model:     model,
		dimension: dimension,
	}, nil
}

// ContentHash returns the cache key for a text under the service's
// model and dimension. Identical text embedded under the same model
// and dimension always maps to the same key; changing either namespace
// invalidates the key, never serving a vector of the wrong shape.
func (s *Service) ContentHash(text string) string {
	h := sha256.New()
	h.Write([]byte(s.model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(s.dimension)))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// EmbedTexts returns one unit-length vector per input text, in input
// order. Cached texts are served without calling the embedder; the
// remaining texts go out in a single batch, and the batch either fully
// succeeds or the whole call fails without caching anything.
func (s *Service) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	hashes := make([]string, len(texts))
	for i, text := range texts {
		hashes[i] = s.ContentHash(text)
	}

	hits, err := s.cache.GetBatch(hashes)
	if err != nil {
		return nil, fmt.Errorf("cache lookup failed: %w", err)
	}

	// Collect each missing text once, even when it repeats in the batch.
	var missTexts []string
	missIndex := make(map[string]int)
	for i, hash := range hashes {
		if _, cached := hits[hash]; cached {
			continue
		}
		if _, queued := missIndex[hash]; queued {
			continue
		}
		missIndex[hash] = len(missTexts)
		missTexts = append(missTexts, texts[i])
	}

	var fresh [][]float64
	if len(missTexts) > 0 {
		fresh, err = s.embedder.EmbedBatch(ctx, missTexts)
		if err != nil {
			return nil, fmt.Errorf("embedding request failed: %w", err)
		}
		if len(fresh) != len(missTexts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missTexts))
		}
		for i, vector := range fresh {
			if len(vector) != s.dimension {
				return nil, fmt.Errorf("embedder returned dimension %d, want %d", len(vector), s.dimension)
			}
			fresh[i] = normalize(vector)
		}
	}

	results := make([][]float64, len(texts))
	for i, hash := range hashes {
		if vector, cached := hits[hash]; cached {
			results[i] = vector
			continue
		}
		vector := fresh[missIndex[hash]]
		results[i] = vector
		if err := s.cache.Put(hash, vector); err != nil {
			return nil, fmt.Errorf("cache write failed: %w", err)
		}
	}
	return results, nil
}

// EmbedQuery embeds a single query string.
func (s *Service) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	vectors, err := s.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// normalize scales a vector to unit L2 length. The zero vector is
// returned unchanged.
func normalize(vector []float64) []float64 {
	var sum float64
	for _, v := range vector {
		sum += v * v
	}
	if sum == 0 {
		return vector
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = v / norm
	}
	return out
}

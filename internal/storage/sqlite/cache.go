// ABOUTME: Content-addressed embedding cache backed by the embedding_cache table
// ABOUTME: Keys are hex content hashes; stored vectors are never overwritten
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CacheStore persists embedding vectors keyed by content hash.
type CacheStore struct {
	db *DB
}

// NewCacheStore creates a cache store over the given database.
func NewCacheStore(db *DB) (*CacheStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &CacheStore{db: db}, nil
}

// Get returns the cached vector for a content hash, or (nil, nil) on a
// cache miss.
func (cs *CacheStore) Get(contentHash string) ([]float64, error) {
	if contentHash == "" {
		return nil, fmt.Errorf("content hash cannot be empty")
	}
	var blob []byte
	err := cs.db.QueryRow(`SELECT vector FROM embedding_cache WHERE content_hash = ?`, contentHash).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return blobToVector(blob), nil
}

// GetBatch looks up many content hashes at once and returns the hits.
// Missing hashes are simply absent from the result map.
func (cs *CacheStore) GetBatch(contentHashes []string) (map[string][]float64, error) {
	hits := make(map[string][]float64, len(contentHashes))
	for _, hash := range contentHashes {
		vector, err := cs.Get(hash)
		if err != nil {
			return nil, err
		}
		if vector != nil {
			hits[hash] = vector
		}
	}
	return hits, nil
}

// Put stores a vector under its content hash. An existing entry for the
// same hash is left untouched.
func (cs *CacheStore) Put(contentHash string, vector []float64) error {
	if contentHash == "" {
		return fmt.Errorf("content hash cannot be empty")
	}
	if len(vector) == 0 {
		return fmt.Errorf("vector cannot be empty")
	}
	_, err := cs.db.Exec(`
		INSERT OR IGNORE INTO embedding_cache (content_hash, vector, dimension, created_at)
		VALUES (?, ?, ?, ?)
	`, contentHash, vectorToBlob(vector), len(vector), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Count returns the number of cached embeddings.
func (cs *CacheStore) Count() (int, error) {
	var count int
	err := cs.db.QueryRow(`SELECT COUNT(*) FROM embedding_cache`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

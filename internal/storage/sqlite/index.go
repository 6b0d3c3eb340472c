// ABOUTME: Brute-force cosine vector index backed by the entries table
// ABOUTME: Handles idempotent inserts, similarity queries, and document deletion
package sqlite

import (
	"fmt"
	"sort"
	"time"

	"github.com/documind/documind/internal/models"
)

// VectorIndex stores embedded chunks and answers similarity queries.
// Vectors are expected to be L2-normalized, so the dot product is the
// cosine similarity.
type VectorIndex struct {
	db        *DB
	dimension int
}

// NewVectorIndex creates a vector index over the given database.
func NewVectorIndex(db *DB, dimension int) (*VectorIndex, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if dimension < 1 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	return &VectorIndex{db: db, dimension: dimension}, nil
}

// Add inserts entries into the index. Re-adding an existing ID replaces
// its row in place, so indexing the same document twice does not grow
// the index. The whole batch is applied in one transaction.
func (vi *VectorIndex) Add(entries []models.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("entry ID cannot be empty")
		}
		if len(entry.Vector) != vi.dimension {
			return fmt.Errorf("entry %s: vector dimension %d does not match index dimension %d",
				entry.ID, len(entry.Vector), vi.dimension)
		}
	}

	tx, err := vi.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO entries (id, document, page, chunk_index, text, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			page = excluded.page,
			chunk_index = excluded.chunk_index,
			text = excluded.text,
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, entry := range entries {
		_, err = stmt.Exec(
			entry.ID,
			entry.Metadata.Document,
			entry.Metadata.Page,
			entry.Metadata.ChunkIndex,
			entry.Text,
			vectorToBlob(entry.Vector),
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// Query returns the top k entries by cosine similarity to the query
// vector, most similar first. Ties keep insertion order. An optional
// documentFilter restricts the scan to a single document's entries.
func (vi *VectorIndex) Query(vector []float64, k int, documentFilter string) ([]models.RetrievedSource, error) {
	if len(vector) != vi.dimension {
		return nil, fmt.Errorf("query vector dimension %d does not match index dimension %d",
			len(vector), vi.dimension)
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	query := `SELECT id, document, page, chunk_index, text, vector FROM entries`
	args := []interface{}{}
	if documentFilter != "" {
		query += ` WHERE document = ?`
		args = append(args, documentFilter)
	}
	query += ` ORDER BY rowid`

	rows, err := vi.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var results []models.RetrievedSource
	for rows.Next() {
		var src models.RetrievedSource
		var blob []byte
		err := rows.Scan(&src.ID, &src.Metadata.Document, &src.Metadata.Page,
			&src.Metadata.ChunkIndex, &src.Text, &blob)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		stored := blobToVector(blob)
		if len(stored) != vi.dimension {
			continue
		}
		src.SimilarityScore = clampedDot(vector, stored)
		results = append(results, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// DeleteDocument removes all entries for the named document and reports
// how many were removed. Deleting an unknown document is not an error.
func (vi *VectorIndex) DeleteDocument(document string) (int, error) {
	if document == "" {
		return 0, fmt.Errorf("document name cannot be empty")
	}
	result, err := vi.db.Exec(`DELETE FROM entries WHERE document = ?`, document)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document %s: %w", document, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted entries: %w", err)
	}
	return int(affected), nil
}

// Clear removes every entry from the index and reports how many were
// removed. Clearing an empty index is not an error.
func (vi *VectorIndex) Clear() (int, error) {
	result, err := vi.db.Exec(`DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear index: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared entries: %w", err)
	}
	return int(affected), nil
}

// Stats reports the index size.
func (vi *VectorIndex) Stats() (*models.IndexStats, error) {
	stats := &models.IndexStats{DBPath: vi.db.Path()}

	err := vi.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&stats.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	err = vi.db.QueryRow(`SELECT COUNT(DISTINCT document) FROM entries`).Scan(&stats.TotalDocuments)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	return stats, nil
}

// clampedDot computes the dot product of two equal-length vectors,
// clamped to [0, 1].
func clampedDot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	if sum < 0 {
		return 0
	}
	if sum > 1 {
		return 1
	}
	return sum
}

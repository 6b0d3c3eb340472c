// ABOUTME: Vector index entry and retrieved source models
// ABOUTME: Defines the persisted record shape and the per-query scored result
package models

// EntryMetadata identifies where an index entry came from.
type EntryMetadata struct {
	Document   string `json:"document"`
	Page       int    `json:"page"`
	ChunkIndex int    `json:"chunk_index"`
}

// IndexEntry is a persisted vector index record. Entries are created at
// indexing time and deleted with their owning document; updates are
// delete+reinsert, never partial.
type IndexEntry struct {
	ID       string        `json:"id"`
	Vector   []float64     `json:"vector"`
	Text     string        `json:"text"`
	Metadata EntryMetadata `json:"metadata"`
}

// RetrievedSource is an index entry plus the similarity score computed for
// one query. It exists only for the duration of that query.
type RetrievedSource struct {
	ID              string        `json:"id"`
	Text            string        `json:"text"`
	Metadata        EntryMetadata `json:"metadata"`
	SimilarityScore float64       `json:"similarity_score"`
}

// IndexStats summarizes the vector index contents.
type IndexStats struct {
	TotalEntries   int    `json:"total_entries"`
	TotalDocuments int    `json:"total_documents"`
	DBPath         string `json:"db_path"`
}

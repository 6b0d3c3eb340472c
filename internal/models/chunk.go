// ABOUTME: Chunk represents a sentence-aligned passage of a document page
// ABOUTME: Carries provenance metadata and character offsets into the page text
package models

// Chunk is the unit of retrieval: a bounded, sentence-aligned passage derived
// from one page of a document. Chunks are created at index time and never
// mutated; re-indexing a document supersedes its chunks rather than updating
// them.
type Chunk struct {
	Document   string `json:"document"`
	Page       int    `json:"page"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
	StartChar  int    `json:"start_char"`
	EndChar    int    `json:"end_char"`
	TokenCount int    `json:"token_count"`
}

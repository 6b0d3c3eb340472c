// ABOUTME: Request and response models for the RAG query and indexing surfaces
// ABOUTME: QueryRequest validates options; RAGResponse is immutable per query
package models

import "fmt"

// Query option bounds and defaults.
const (
	DefaultTopK            = 5
	MaxTopK                = 20
	DefaultSimilarityFloor = 0.3
)

// QueryRequest holds validated options for one RAG query.
// A zero TopK means "use the default". SimilarityFloor uses a negative
// sentinel instead: 0 is a valid floor that accepts every candidate, so
// only a negative value means "use the default".
type QueryRequest struct {
	Query           string  `json:"query"`
	TopK            int     `json:"top_k"`
	SimilarityFloor float64 `json:"similarity_floor"`
	Rerank          bool    `json:"rerank"`
	FileFilter      string  `json:"file_filter,omitempty"`
}

// UnsetSimilarityFloor marks a request that did not specify a floor.
const UnsetSimilarityFloor = -1

// ApplyDefaults fills unset fields with their documented defaults.
// A floor of exactly 0 is kept as-is.
func (r *QueryRequest) ApplyDefaults() {
	if r.TopK == 0 {
		r.TopK = DefaultTopK
	}
	if r.SimilarityFloor < 0 {
		r.SimilarityFloor = DefaultSimilarityFloor
	}
}

// Validate checks field bounds after defaults have been applied.
func (r *QueryRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if r.TopK < 1 || r.TopK > MaxTopK {
		return fmt.Errorf("top_k must be 1-%d, got %d", MaxTopK, r.TopK)
	}
	if r.SimilarityFloor < 0 || r.SimilarityFloor > 1 {
		return fmt.Errorf("similarity_floor must be 0-1, got %f", r.SimilarityFloor)
	}
	return nil
}

// CitationSource is the source metadata a citation number resolves to.
type CitationSource struct {
	Document        string  `json:"document"`
	Page            int     `json:"page"`
	Text            string  `json:"text"`
	SimilarityScore float64 `json:"similarity_score"`
}

// RAGResponse is the complete result of one query. Constructed once,
// immutable, returned to the caller.
type RAGResponse struct {
	Query         string                 `json:"query"`
	Answer        string                 `json:"answer"`
	Sources       []RetrievedSource      `json:"sources"`
	Citations     []int                  `json:"citations"`
	CitationMap   map[int]CitationSource `json:"citation_map"`
	Warnings      []string               `json:"warnings,omitempty"`
	NumSources    int                    `json:"num_sources"`
	AvgSimilarity float64                `json:"avg_similarity"`
}

// Indexing result statuses.
const (
	IndexStatusSuccess = "success"
	IndexStatusFailed  = "failed"
	IndexStatusSkipped = "skipped"
)

// IndexingResult reports the outcome of indexing a single document.
// Batch indexing reports one result per document rather than failing the
// whole batch.
type IndexingResult struct {
	FileName      string `json:"file_name"`
	Status        string `json:"status"`
	ChunksCreated int    `json:"chunks_created,omitempty"`
	ChunksStored  int    `json:"chunks_stored,omitempty"`
	TotalPages    int    `json:"total_pages,omitempty"`
	Error         string `json:"error,omitempty"`
}

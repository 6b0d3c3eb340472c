// ABOUTME: Shared service construction for CLI commands
// ABOUTME: Wires config, storage, LLM client, and pipeline into a RAG service
package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/documind/documind/internal/chunker"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/embedding"
	"github.com/documind/documind/internal/generation"
	"github.com/documind/documind/internal/llm"
	"github.com/documind/documind/internal/rag"
	"github.com/documind/documind/internal/storage/sqlite"
	"github.com/documind/documind/internal/util"
)

// newService builds the full pipeline from configuration. The returned
// cleanup closes the database and must be called when done.
func newService() (*rag.Service, func(), error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	cleanup := func() { db.Close() }

	client, err := llm.NewClient(cfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("initializing LLM client: %w", err)
	}

	cache, err := sqlite.NewCacheStore(db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	embedder, err := embedding.NewService(client, cache, cfg.EmbeddingModel, cfg.EmbeddingDimension)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	index, err := sqlite.NewVectorIndex(db, cfg.EmbeddingDimension)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	retry := util.RetryPolicy{MaxAttempts: cfg.MaxRetries + 1, BaseDelay: cfg.RetryDelay}
	generator, err := generation.NewGenerator(client, retry, llm.IsRetryable)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	ch := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap, cfg.MaxChunkSize)
	service, err := rag.NewService(ch, embedder, index, generator)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service, cleanup, nil
}

// ABOUTME: Centralized configuration for the DocuMind RAG pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the RAG pipeline. It is constructed
// once and passed into each component's constructor; components never read
// the environment themselves.
type Config struct {
	// OpenAI settings
	OpenAIKey          string
	ChatModel          string
	EmbeddingModel     string
	EmbeddingDimension int
	LLMBaseURL         string
	Timeout            time.Duration
	MaxRetries         int
	RetryDelay         time.Duration

	// Chunking settings (token counts)
	ChunkSize    int
	ChunkOverlap int
	MaxChunkSize int

	// Retrieval settings
	TopK            int
	SimilarityFloor float64

	// Storage
	DBPath string
}

// DefaultDBPath returns the default database file path following XDG spec.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "documind", "documind.db")
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("DOCUMIND_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:     getEnv("DOCUMIND_EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimension: getEnvInt("DOCUMIND_EMBEDDING_DIMENSION", 384),
		LLMBaseURL:         os.Getenv("DOCUMIND_LLM_BASE_URL"),
		Timeout:            getEnvDuration("DOCUMIND_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("DOCUMIND_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("DOCUMIND_RETRY_DELAY", 2*time.Second),
		ChunkSize:          getEnvInt("DOCUMIND_CHUNK_SIZE", 300),
		ChunkOverlap:       getEnvInt("DOCUMIND_CHUNK_OVERLAP", 50),
		MaxChunkSize:       getEnvInt("DOCUMIND_MAX_CHUNK_SIZE", 500),
		TopK:               getEnvInt("DOCUMIND_TOP_K", 5),
		SimilarityFloor:    getEnvFloat("DOCUMIND_SIMILARITY_FLOOR", 0.3),
		DBPath:             getEnv("DOCUMIND_DB_PATH", DefaultDBPath()),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize < 50 || c.ChunkSize > 1000 {
		return fmt.Errorf("DOCUMIND_CHUNK_SIZE must be 50-1000, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap > 200 {
		return fmt.Errorf("DOCUMIND_CHUNK_OVERLAP must be 0-200, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("DOCUMIND_CHUNK_OVERLAP (%d) must be smaller than DOCUMIND_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxChunkSize < c.ChunkSize {
		return fmt.Errorf("DOCUMIND_MAX_CHUNK_SIZE (%d) must be >= DOCUMIND_CHUNK_SIZE (%d)", c.MaxChunkSize, c.ChunkSize)
	}
	if c.TopK < 1 || c.TopK > 20 {
		return fmt.Errorf("DOCUMIND_TOP_K must be 1-20, got %d", c.TopK)
	}
	if c.SimilarityFloor < 0 || c.SimilarityFloor > 1 {
		return fmt.Errorf("DOCUMIND_SIMILARITY_FLOOR must be 0-1, got %f", c.SimilarityFloor)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("DOCUMIND_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.EmbeddingDimension < 1 {
		return fmt.Errorf("DOCUMIND_EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

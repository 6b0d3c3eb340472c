// ABOUTME: OpenAI client for embeddings and grounded answer generation
// ABOUTME: Supports OpenAI-compatible local servers via a base URL override
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/documind/documind/internal/config"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// Client wraps the OpenAI API for the two operations the pipeline needs:
// batched embeddings and single-shot chat completion. It performs no
// retries itself; the caller owns the retry policy.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	dimensions     int
	timeout        time.Duration
	temperature    float32
}

// NewClient creates a client from configuration. An API key is required
// unless a base URL points at an OpenAI-compatible local server, which
// accepts any key.
func NewClient(cfg *config.Config) (*Client, error) {
	apiKey := cfg.OpenAIKey
	if apiKey == "" {
		if cfg.LLMBaseURL == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		apiKey = "local"
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.LLMBaseURL != "" {
		clientConfig.BaseURL = cfg.LLMBaseURL
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := openai.EmbeddingModel(cfg.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientConfig),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		dimensions:     cfg.EmbeddingDimension,
		timeout:        timeout,
		temperature:    0.1,
	}, nil
}

// EmbedBatch embeds all texts in one model invocation and returns one
// vector per input, in input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input:      texts,
		Model:      c.embeddingModel,
		Dimensions: c.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	vectors := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		vec := make([]float64, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// Complete performs one chat completion with a system and user message.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// IsRetryable classifies an API error as transient (rate limit, server
// fault, network) or terminal (authentication, malformed request).
// A deadline hit is a timed-out attempt and retries; an explicit
// cancellation means the caller gave up and does not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return true
		case apiErr.HTTPStatusCode >= 500:
			return true
		default:
			return false
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}

	// Plain transport errors (connection reset, refused) are transient
	return true
}

// ABOUTME: Answer generation with retry and citation validation
// ABOUTME: Drives the chat model and checks that citations match the sources
package generation

import (
	"context"
	"fmt"

	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/util"
)

// Completer produces a single chat completion.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Result carries a generated answer and its citation analysis.
type Result struct {
	Answer      string
	Citations   []int
	CitationMap map[int]models.CitationSource
	Warnings    []string
}

// Generator turns a query and retrieved sources into a cited answer.
// Transient completion failures are retried; the answer text is kept
// even when some citations fail validation, with warnings attached.
type Generator struct {
	completer Completer
	retry     util.RetryPolicy
	retryable func(error) bool
}

// NewGenerator creates a generator. The retryable predicate decides
// which completion errors are worth retrying; nil retries everything.
func NewGenerator(completer Completer, retry util.RetryPolicy, retryable func(error) bool) (*Generator, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is required")
	}
	return &Generator{completer: completer, retry: retry, retryable: retryable}, nil
}

// Generate asks the model to answer the query from the numbered
// sources, then extracts and validates the citations in the reply.
func (g *Generator) Generate(ctx context.Context, query string, sources []models.RetrievedSource) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}

	userPrompt := UserPrompt(query, sources)

	var answer string
	err := g.retry.Do(ctx, func() error {
		var completeErr error
		answer, completeErr = g.completer.Complete(ctx, SystemPrompt, userPrompt)
		return completeErr
	}, g.retryable)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &Result{
		Answer:      answer,
		Citations:   ExtractCitations(answer),
		CitationMap: MapCitations(answer, sources),
		Warnings:    ValidateCitations(answer, len(sources)),
	}, nil
}

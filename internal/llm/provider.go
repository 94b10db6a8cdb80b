// ABOUTME: Embedding provider contract and shared error classification
// ABOUTME: Variants: OpenAI, Cohere, and a declared-but-unimplemented Local model
package llm

import (
	"context"
	"errors"

	"github.com/reverie-journal/reverie/internal/models"
)

// EmbeddingProvider converts text into a fixed-length vector. Implementations
// declare their dimension and model identity; vectors from different
// providers must never mix in one similarity computation.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
	ModelName() string
	Name() string
}

// Summarizer produces a short human-readable description from a prompt.
// Optional: pattern detection falls back to templates when nil.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// classifyProviderErr wraps upstream failures into the engine's typed kinds.
// Deadline expiry surfaces as ErrTimeout so batch callers can report it
// distinctly; everything else becomes a ProviderError.
func classifyProviderErr(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrTimeout
	}
	return &models.ProviderError{Provider: provider, Err: err}
}

// LocalProvider is the on-device embedding variant. The model runtime has
// not shipped yet; every call fails fast rather than silently degrading.
type LocalProvider struct{}

// NewLocalProvider creates the local provider placeholder
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Embed always fails with ErrNotImplemented
func (p *LocalProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, models.ErrNotImplemented
}

// Dimension returns 0; the local model has no declared dimension yet
func (p *LocalProvider) Dimension() int { return 0 }

// ModelName identifies the placeholder model
func (p *LocalProvider) ModelName() string { return "local-unavailable" }

// Name returns the provider identifier
func (p *LocalProvider) Name() string { return "local" }

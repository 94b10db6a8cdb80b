// ABOUTME: Cohere client for embeddings
// ABOUTME: Uses embed-english-v3.0 with the same retry/timeout behavior as OpenAI
package llm

import (
	"context"
	"fmt"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/reverie-journal/reverie/internal/util"
)

const (
	// DefaultCohereEmbeddingModel is the default Cohere embedding model
	DefaultCohereEmbeddingModel = "embed-english-v3.0"
	// cohereEmbeddingDimension is the vector size of embed-english-v3.0
	cohereEmbeddingDimension = 1024
)

// CohereConfig holds configuration for the Cohere client
type CohereConfig struct {
	APIKey         string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultCohereConfig returns the default client configuration
func DefaultCohereConfig(apiKey string) *CohereConfig {
	return &CohereConfig{
		APIKey:         apiKey,
		EmbeddingModel: DefaultCohereEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// CohereClient wraps the Cohere API client with retry logic
type CohereClient struct {
	client     *cohereclient.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewCohereClient creates a new Cohere client
func NewCohereClient(config *CohereConfig) (*CohereClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Cohere API key is required")
	}

	return &CohereClient{
		client:     cohereclient.NewClient(cohereclient.WithToken(config.APIKey)),
		model:      config.EmbeddingModel,
		timeout:    config.Timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// Name returns the provider identifier
func (c *CohereClient) Name() string { return "cohere" }

// ModelName returns the embedding model identifier
func (c *CohereClient) ModelName() string { return c.model }

// Dimension returns the embedding vector size
func (c *CohereClient) Dimension() int { return cohereEmbeddingDimension }

// Embed generates an embedding vector for the given text
func (c *CohereClient) Embed(ctx context.Context, text string) ([]float64, error) {
	var embedding []float64

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		model := c.model
		resp, err := c.client.Embed(callCtx, &cohere.EmbedRequest{
			Model: &model,
			Texts: []string{text},
		})
		if err != nil {
			return err
		}

		floats := resp.GetEmbeddingsFloats()
		if floats == nil || len(floats.Embeddings) == 0 {
			return fmt.Errorf("no embeddings returned")
		}

		embedding = floats.Embeddings[0]
		return nil
	})

	if err != nil {
		return nil, classifyProviderErr("cohere", err)
	}
	return embedding, nil
}

// ABOUTME: OpenAI client for embeddings and pattern summarization
// ABOUTME: Uses text-embedding-3-small for embeddings, gpt-4o-mini for summaries (configurable)
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/reverie-journal/reverie/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultOpenAIEmbeddingModel is the default model for embeddings
	DefaultOpenAIEmbeddingModel = openai.SmallEmbedding3
	// openAIEmbeddingDimension is the vector size of text-embedding-3-small
	openAIEmbeddingDimension = 1536
)

// OpenAIConfig holds configuration for the OpenAI client
type OpenAIConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultOpenAIConfig returns the default client configuration
func DefaultOpenAIConfig(apiKey string) *OpenAIConfig {
	return &OpenAIConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultOpenAIEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewOpenAIClient creates a new OpenAI client with default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultOpenAIConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *OpenAIConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIClient{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		timeout:        config.Timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// Name returns the provider identifier
func (c *OpenAIClient) Name() string { return "openai" }

// ModelName returns the embedding model identifier
func (c *OpenAIClient) ModelName() string { return string(c.embeddingModel) }

// Dimension returns the embedding vector size
func (c *OpenAIClient) Dimension() int { return openAIEmbeddingDimension }

// Embed generates an embedding vector for the given text
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	var embedding []float64

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("no embeddings returned")
		}

		// Convert []float32 to []float64
		raw := resp.Data[0].Embedding
		embedding = make([]float64, len(raw))
		for i, v := range raw {
			embedding[i] = float64(v)
		}
		return nil
	})

	if err != nil {
		return nil, classifyProviderErr("openai", err)
	}
	return embedding, nil
}

// Summarize generates a one-paragraph description from a prompt. Used to
// enrich pattern descriptions; callers must tolerate failure.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	systemPrompt := `You are a journaling assistant. Given a description of a pattern found in a user's timeline, write one short, warm, factual sentence summarizing it. Return ONLY the sentence.`

	var summary string

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}

		summary = resp.Choices[0].Message.Content
		return nil
	})

	if err != nil {
		return "", classifyProviderErr("openai", err)
	}
	return summary, nil
}

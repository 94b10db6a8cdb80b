// ABOUTME: Shared utility functions and engine wiring for CLI commands
// ABOUTME: Consolidates setup duplicated across the subcommands
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/reverie-journal/reverie/internal/charm"
	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/core"
	"github.com/reverie-journal/reverie/internal/llm"
	"github.com/reverie-journal/reverie/internal/storage"
	"github.com/reverie-journal/reverie/internal/storage/sqlite"
)

// openEngine wires the full engine stack from configuration. The returned
// cleanup closes the database and any cloud connection; call it when the
// command finishes.
func openEngine() (*core.Engine, *sqlite.EventStore, func(), error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	vectors, closeVectors, err := openVectorBackend(cfg, db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("initializing vector backend: %w", err)
	}

	provider, err := openProvider(cfg)
	if err != nil {
		if closeVectors != nil {
			closeVectors()
		}
		db.Close()
		return nil, nil, nil, fmt.Errorf("initializing embedding provider: %w", err)
	}

	eventStore := sqlite.NewEventStore(db)
	engine := core.NewEngine(core.Deps{
		Config:     cfg,
		Events:     eventStore,
		Eras:       eventStore,
		Vectors:    vectors,
		Provider:   provider,
		CrossRefs:  sqlite.NewCrossRefStore(db),
		Summarizer: openSummarizer(cfg),
	})

	cleanup := func() {
		if closeVectors != nil {
			closeVectors()
		}
		_ = db.Close()
	}
	return engine, eventStore, cleanup, nil
}

func openVectorBackend(cfg *config.Config, db *sqlite.DB) (storage.VectorBackend, func(), error) {
	switch cfg.Backend {
	case "charm":
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewCharmVectorStore(client), func() { client.Close() }, nil
	default:
		return sqlite.NewEmbeddingStore(db), nil, nil
	}
}

func openProvider(cfg *config.Config) (llm.EmbeddingProvider, error) {
	switch cfg.Provider {
	case "openai":
		oc := llm.DefaultOpenAIConfig(cfg.OpenAIKey)
		oc.ChatModel = cfg.ChatModel
		if cfg.EmbeddingModel != "" {
			oc.EmbeddingModel = openai.EmbeddingModel(cfg.EmbeddingModel)
		}
		oc.Timeout = cfg.Timeout
		oc.MaxRetries = cfg.MaxRetries
		oc.RetryDelay = cfg.RetryDelay
		return llm.NewOpenAIClientWithConfig(oc)
	case "cohere":
		cc := llm.DefaultCohereConfig(cfg.CohereKey)
		if cfg.EmbeddingModel != "" {
			cc.EmbeddingModel = cfg.EmbeddingModel
		}
		cc.Timeout = cfg.Timeout
		cc.MaxRetries = cfg.MaxRetries
		cc.RetryDelay = cfg.RetryDelay
		return llm.NewCohereClient(cc)
	case "local":
		return llm.NewLocalProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func openSummarizer(cfg *config.Config) llm.Summarizer {
	if cfg.Provider != "openai" || cfg.OpenAIKey == "" {
		return nil
	}
	client, err := llm.NewOpenAIClient(cfg.OpenAIKey)
	if err != nil {
		return nil
	}
	return client
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// parseDateFlag parses a YYYY-MM-DD flag value
func parseDateFlag(value, name string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", name, value)
	}
	return t, nil
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

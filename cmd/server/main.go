// ABOUTME: Main entry point for the retrieval MCP server with stdio transport
// ABOUTME: Wires storage, embedding provider, and engine, then serves tools
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"

	"github.com/reverie-journal/reverie/internal/charm"
	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/core"
	"github.com/reverie-journal/reverie/internal/llm"
	"github.com/reverie-journal/reverie/internal/mcp"
	"github.com/reverie-journal/reverie/internal/storage"
	"github.com/reverie-journal/reverie/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	vectors, closeVectors, err := buildVectorBackend(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize vector backend: %v", err)
	}
	if closeVectors != nil {
		defer closeVectors()
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize embedding provider: %v", err)
	}

	eventStore := sqlite.NewEventStore(db)
	engine := core.NewEngine(core.Deps{
		Config:     cfg,
		Events:     eventStore,
		Eras:       eventStore,
		Vectors:    vectors,
		Provider:   provider,
		CrossRefs:  sqlite.NewCrossRefStore(db),
		Summarizer: buildSummarizer(cfg),
	})

	server := mcpserver.NewMCPServer(
		"Reverie Retrieval Engine",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine, eventStore)

	log.Printf("Reverie MCP server starting on stdio (backend=%s provider=%s)...",
		cfg.Backend, cfg.Provider)
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func buildVectorBackend(cfg *config.Config, db *sqlite.DB) (storage.VectorBackend, func(), error) {
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

func buildProvider(cfg *config.Config) (llm.EmbeddingProvider, error) {
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

// buildSummarizer returns an optional chat summarizer for pattern
// descriptions. Only the OpenAI provider offers one; pattern detection
// falls back to templates without it.
func buildSummarizer(cfg *config.Config) llm.Summarizer {
	if cfg.Provider != "openai" || cfg.OpenAIKey == "" {
		return nil
	}
	client, err := llm.NewOpenAIClient(cfg.OpenAIKey)
	if err != nil {
		return nil
	}
	return client
}

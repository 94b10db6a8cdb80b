// ABOUTME: Centralized configuration for the retrieval engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the retrieval engine. Every threshold
// the engine uses lives here and is passed in explicitly; there is no
// ambient mutable settings object.
type Config struct {
	// Storage settings
	Backend     string // "sqlite" or "charm"
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// Provider settings
	Provider       string // "openai", "cohere", or "local"
	OpenAIKey      string
	CohereKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Similarity settings
	SimilarityThreshold float64 // base threshold for neighbor filtering
	DefaultNeighbors    int     // default K for KNN queries
	MinTagSimilarity    float64 // floor for tag-suggestion neighbors

	// Cross-reference settings. Cutoffs are heuristic and tunable, not
	// derived constants.
	CausalThreshold    float64
	CausalWindowDays   int
	TemporalWindowDays int
	FollowUpWindowDays int

	// Pattern settings
	ClusterThreshold  float64
	MinPatternSupport int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Backend:     getEnv("REVERIE_BACKEND", "sqlite"),
		CharmHost:   getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName: getEnv("CHARM_DB", "reverie"),
		AutoSync:    getEnvBool("CHARM_AUTO_SYNC", true),

		Provider:       getEnv("REVERIE_PROVIDER", "openai"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		CohereKey:      os.Getenv("COHERE_API_KEY"),
		ChatModel:      getEnv("REVERIE_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("REVERIE_EMBEDDING_MODEL", ""),
		Timeout:        getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("PROVIDER_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("PROVIDER_RETRY_DELAY", 2*time.Second),

		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.5),
		DefaultNeighbors:    getEnvInt("DEFAULT_NEIGHBORS", 10),
		MinTagSimilarity:    getEnvFloat("MIN_TAG_SIMILARITY", 0.3),

		CausalThreshold:    getEnvFloat("CAUSAL_THRESHOLD", 0.5),
		CausalWindowDays:   getEnvInt("CAUSAL_WINDOW_DAYS", 365),
		TemporalWindowDays: getEnvInt("TEMPORAL_WINDOW_DAYS", 30),
		FollowUpWindowDays: getEnvInt("FOLLOWUP_WINDOW_DAYS", 90),

		ClusterThreshold:  getEnvFloat("CLUSTER_THRESHOLD", 0.75),
		MinPatternSupport: getEnvInt("MIN_PATTERN_SUPPORT", 3),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Backend != "sqlite" && c.Backend != "charm" {
		return fmt.Errorf("REVERIE_BACKEND must be sqlite or charm, got %q", c.Backend)
	}
	if c.Provider != "openai" && c.Provider != "cohere" && c.Provider != "local" {
		return fmt.Errorf("REVERIE_PROVIDER must be openai, cohere, or local, got %q", c.Provider)
	}
	for name, v := range map[string]float64{
		"SIMILARITY_THRESHOLD": c.SimilarityThreshold,
		"MIN_TAG_SIMILARITY":   c.MinTagSimilarity,
		"CAUSAL_THRESHOLD":     c.CausalThreshold,
		"CLUSTER_THRESHOLD":    c.ClusterThreshold,
	} {
		if v < -1 || v > 1 {
			return fmt.Errorf("%s must be within [-1, 1], got %f", name, v)
		}
	}
	for name, v := range map[string]int{
		"CAUSAL_WINDOW_DAYS":   c.CausalWindowDays,
		"TEMPORAL_WINDOW_DAYS": c.TemporalWindowDays,
		"FOLLOWUP_WINDOW_DAYS": c.FollowUpWindowDays,
		"DEFAULT_NEIGHBORS":    c.DefaultNeighbors,
		"MIN_PATTERN_SUPPORT":  c.MinPatternSupport,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("PROVIDER_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
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

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
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

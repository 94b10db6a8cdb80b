// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %s, want sqlite", cfg.Backend)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %s, want openai", cfg.Provider)
	}
	if cfg.CharmHost != "cloud.charm.sh" {
		t.Errorf("CharmHost = %s, want cloud.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "reverie" {
		t.Errorf("CharmDBName = %s, want reverie", cfg.CharmDBName)
	}
	if !cfg.AutoSync {
		t.Error("AutoSync = false, want true")
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.SimilarityThreshold != 0.5 {
		t.Errorf("SimilarityThreshold = %f, want 0.5", cfg.SimilarityThreshold)
	}
	if cfg.DefaultNeighbors != 10 {
		t.Errorf("DefaultNeighbors = %d, want 10", cfg.DefaultNeighbors)
	}
	if cfg.CausalThreshold != 0.5 {
		t.Errorf("CausalThreshold = %f, want 0.5", cfg.CausalThreshold)
	}
	if cfg.CausalWindowDays != 365 {
		t.Errorf("CausalWindowDays = %d, want 365", cfg.CausalWindowDays)
	}
	if cfg.TemporalWindowDays != 30 {
		t.Errorf("TemporalWindowDays = %d, want 30", cfg.TemporalWindowDays)
	}
	if cfg.FollowUpWindowDays != 90 {
		t.Errorf("FollowUpWindowDays = %d, want 90", cfg.FollowUpWindowDays)
	}
	if cfg.ClusterThreshold != 0.75 {
		t.Errorf("ClusterThreshold = %f, want 0.75", cfg.ClusterThreshold)
	}
	if cfg.MinPatternSupport != 3 {
		t.Errorf("MinPatternSupport = %d, want 3", cfg.MinPatternSupport)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("REVERIE_BACKEND", "charm")
	os.Setenv("REVERIE_PROVIDER", "cohere")
	os.Setenv("COHERE_API_KEY", "co-key")
	os.Setenv("CHARM_HOST", "custom.charm.sh")
	os.Setenv("CHARM_DB", "test_db")
	os.Setenv("CHARM_AUTO_SYNC", "false")
	os.Setenv("PROVIDER_TIMEOUT", "60s")
	os.Setenv("PROVIDER_MAX_RETRIES", "5")
	os.Setenv("PROVIDER_RETRY_DELAY", "3s")
	os.Setenv("SIMILARITY_THRESHOLD", "0.65")
	os.Setenv("CAUSAL_WINDOW_DAYS", "180")
	os.Setenv("CLUSTER_THRESHOLD", "0.8")
	os.Setenv("MIN_PATTERN_SUPPORT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Backend != "charm" {
		t.Errorf("Backend = %s, want charm", cfg.Backend)
	}
	if cfg.Provider != "cohere" {
		t.Errorf("Provider = %s, want cohere", cfg.Provider)
	}
	if cfg.CohereKey != "co-key" {
		t.Errorf("CohereKey = %s, want co-key", cfg.CohereKey)
	}
	if cfg.CharmHost != "custom.charm.sh" {
		t.Errorf("CharmHost = %s, want custom.charm.sh", cfg.CharmHost)
	}
	if cfg.CharmDBName != "test_db" {
		t.Errorf("CharmDBName = %s, want test_db", cfg.CharmDBName)
	}
	if cfg.AutoSync {
		t.Error("AutoSync = true, want false")
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.SimilarityThreshold != 0.65 {
		t.Errorf("SimilarityThreshold = %f, want 0.65", cfg.SimilarityThreshold)
	}
	if cfg.CausalWindowDays != 180 {
		t.Errorf("CausalWindowDays = %d, want 180", cfg.CausalWindowDays)
	}
	if cfg.ClusterThreshold != 0.8 {
		t.Errorf("ClusterThreshold = %f, want 0.8", cfg.ClusterThreshold)
	}
	if cfg.MinPatternSupport != 5 {
		t.Errorf("MinPatternSupport = %d, want 5", cfg.MinPatternSupport)
	}
}

func TestValidate_InvalidBackend(t *testing.T) {
	os.Clearenv()
	os.Setenv("REVERIE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown backend")
	}
}

func TestValidate_InvalidProvider(t *testing.T) {
	os.Clearenv()
	os.Setenv("REVERIE_PROVIDER", "anthropic")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown provider")
	}
}

func TestValidate_InvalidThreshold(t *testing.T) {
	os.Clearenv()
	os.Setenv("SIMILARITY_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for threshold > 1")
	}

	os.Clearenv()
	os.Setenv("CAUSAL_THRESHOLD", "-1.5")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for threshold < -1")
	}
}

func TestValidate_InvalidWindows(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEMPORAL_WINDOW_DAYS", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for zero temporal window")
	}

	os.Clearenv()
	os.Setenv("DEFAULT_NEIGHBORS", "-3")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for negative neighbor count")
	}
}

func TestValidate_InvalidMaxRetries(t *testing.T) {
	os.Clearenv()
	os.Setenv("PROVIDER_MAX_RETRIES", "15")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for MaxRetries > 10")
	}

	os.Clearenv()
	os.Setenv("PROVIDER_MAX_RETRIES", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for MaxRetries < 0")
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal bool
		want       bool
	}{
		{"empty uses default true", "", true, true},
		{"empty uses default false", "", false, false},
		{"true", "true", false, true},
		{"1", "1", false, true},
		{"false", "false", true, false},
		{"0", "0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_BOOL", tt.value)
			}
			got := getEnvBool("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

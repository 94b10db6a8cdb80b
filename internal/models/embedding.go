// ABOUTME: Embedding models for vector storage and semantic search
// ABOUTME: Defines EmbeddingRecord and SimilarityResult structures
package models

import "time"

// EmbeddingRecord is a stored embedding vector for an event. Exactly one
// current record exists per (event, provider) pair; a re-embed overwrites.
type EmbeddingRecord struct {
	EventID     string    `json:"event_id"`
	Vector      []float64 `json:"vector"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Dimension   int       `json:"dimension"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}

// SimilarityResult is one ranked neighbor from a similarity search.
type SimilarityResult struct {
	EventID         string  `json:"event_id"`
	SimilarityScore float64 `json:"similarity_score"`
	Rank            int     `json:"rank"`
}

// TagSuggestion is a proposed tag with provenance.
type TagSuggestion struct {
	TagName        string   `json:"tag_name"`
	Confidence     float64  `json:"confidence"`
	SourceEventIDs []string `json:"source_event_ids"`
}

// BatchError records a per-event failure inside a batch embedding run.
type BatchError struct {
	EventID string `json:"event_id"`
	Message string `json:"message"`
}

// BatchResult summarizes a batch embedding run.
type BatchResult struct {
	SucceededCount int          `json:"succeeded_count"`
	FailedCount    int          `json:"failed_count"`
	Errors         []BatchError `json:"errors,omitempty"`
}

// ABOUTME: Batch embedding generation with partial-failure tolerance
// ABOUTME: Content hashes make re-runs idempotent; only stale events re-embed
package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/reverie-journal/reverie/internal/llm"
	"github.com/reverie-journal/reverie/internal/models"
	"github.com/reverie-journal/reverie/internal/storage"
)

// BatchEmbeddingJob walks every event and ensures a current embedding
// exists for it. One event's failure never aborts the run; failures are
// collected and reported, and a re-run retries only what is missing or
// stale.
type BatchEmbeddingJob struct {
	events   EventSource
	vectors  storage.VectorBackend
	provider llm.EmbeddingProvider
}

func NewBatchEmbeddingJob(events EventSource, vectors storage.VectorBackend, provider llm.EmbeddingProvider) *BatchEmbeddingJob {
	return &BatchEmbeddingJob{events: events, vectors: vectors, provider: provider}
}

// Run embeds every event that needs it. Force re-embeds everything
// regardless of staleness. Cancellation stops between events and returns
// the partial result alongside the context error.
func (j *BatchEmbeddingJob) Run(ctx context.Context, force bool) (*models.BatchResult, error) {
	events, err := j.events.List(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	result := &models.BatchResult{}
	for i := range events {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		event := &events[i]

		changed, err := j.EmbedEvent(ctx, event, force)
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, models.BatchError{
				EventID: event.ID,
				Message: err.Error(),
			})
			log.Printf("[Batch] embed %s failed: %v", event.ID, err)
			continue
		}
		if changed {
			result.SucceededCount++
		}
	}
	return result, nil
}

// EmbedEvent embeds a single event unless its stored embedding is already
// current. Returns true when a new vector was written.
func (j *BatchEmbeddingJob) EmbedEvent(ctx context.Context, event *models.Event, force bool) (bool, error) {
	hash := event.ContentHash()
	if !force {
		existing, err := j.vectors.Get(event.ID, j.provider.Name())
		if err != nil {
			return false, fmt.Errorf("check existing embedding: %w", err)
		}
		if existing != nil && j.current(existing, hash) {
			return false, nil
		}
	}

	vec, err := j.provider.Embed(ctx, event.EmbeddingText())
	if err != nil {
		return false, err
	}

	rec := models.EmbeddingRecord{
		EventID:     event.ID,
		Vector:      vec,
		Provider:    j.provider.Name(),
		Model:       j.provider.ModelName(),
		Dimension:   j.provider.Dimension(),
		ContentHash: hash,
		CreatedAt:   time.Now().UTC(),
	}
	if err := j.vectors.Put(rec); err != nil {
		return false, fmt.Errorf("store embedding: %w", err)
	}
	return true, nil
}

// current reports whether an existing record still matches the event's
// content and the active model.
func (j *BatchEmbeddingJob) current(rec *models.EmbeddingRecord, hash string) bool {
	return rec.ContentHash == hash &&
		rec.Model == j.provider.ModelName() &&
		rec.Dimension == j.provider.Dimension()
}

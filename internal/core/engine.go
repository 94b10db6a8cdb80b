// ABOUTME: Engine facade tying embeddings, search, classification, and mining together
// ABOUTME: Serializes whole-store mutations so a clear cannot race a batch run
package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/llm"
	"github.com/reverie-journal/reverie/internal/models"
	"github.com/reverie-journal/reverie/internal/storage"
	"github.com/reverie-journal/reverie/internal/vector"
)

// CrossRefSink persists detected cross-references. Satisfied by the
// SQLite cross-reference store.
type CrossRefSink interface {
	ReplaceForEvent(eventID string, refs []models.CrossReference) error
	GetForEvent(eventID string) ([]models.CrossReference, error)
}

// Engine is the retrieval engine's single entry point. All operations go
// through it; callers never touch the component types directly.
type Engine struct {
	cfg      *config.Config
	events   EventSource
	eras     EraSource
	vectors  storage.VectorBackend
	provider llm.EmbeddingProvider
	refs     CrossRefSink

	similarity *SimilarityEngine
	detector   *CrossReferenceDetector
	patterns   *PatternDetector
	tags       *TagSuggester
	batch      *BatchEmbeddingJob

	// Guards GenerateAll and ClearAll against each other. Held with
	// TryLock so a contender fails with ErrBusy instead of queueing
	// behind a long batch run.
	storeMu sync.Mutex
}

// Deps bundles the engine's collaborators.
type Deps struct {
	Config     *config.Config
	Events     EventSource
	Eras       EraSource
	Vectors    storage.VectorBackend
	Provider   llm.EmbeddingProvider
	CrossRefs  CrossRefSink
	Summarizer llm.Summarizer
}

func NewEngine(deps Deps) *Engine {
	similarity := NewSimilarityEngine(deps.Vectors, deps.Events, deps.Provider.Name())
	return &Engine{
		cfg:        deps.Config,
		events:     deps.Events,
		eras:       deps.Eras,
		vectors:    deps.Vectors,
		provider:   deps.Provider,
		refs:       deps.CrossRefs,
		similarity: similarity,
		detector:   NewCrossReferenceDetector(deps.Config),
		patterns:   NewPatternDetector(deps.Events, deps.Eras, deps.Vectors, deps.Provider.Name(), deps.Config, deps.Summarizer),
		tags:       NewTagSuggester(similarity, deps.Events, deps.Config),
		batch:      NewBatchEmbeddingJob(deps.Events, deps.Vectors, deps.Provider),
	}
}

// GenerateForEvent embeds one event, skipping work when the stored vector
// is still current. Returns true when a new vector was written.
func (e *Engine) GenerateForEvent(ctx context.Context, eventID string, force bool) (bool, error) {
	event, err := e.events.GetByID(eventID)
	if err != nil {
		return false, err
	}
	return e.batch.EmbedEvent(ctx, event, force)
}

// GenerateAll embeds every event that is missing a current vector. Only
// one GenerateAll or ClearAll runs at a time; contenders get ErrBusy.
func (e *Engine) GenerateAll(ctx context.Context, force bool) (*models.BatchResult, error) {
	if !e.storeMu.TryLock() {
		return nil, fmt.Errorf("embedding store busy: %w", models.ErrBusy)
	}
	defer e.storeMu.Unlock()

	started := time.Now()
	result, err := e.batch.Run(ctx, force)
	if result != nil {
		log.Printf("[Engine] batch embed: %d succeeded, %d failed in %s",
			result.SucceededCount, result.FailedCount, time.Since(started).Round(time.Millisecond))
	}
	return result, err
}

// ClearAll deletes every stored vector for the active provider. Used for
// provider or model migration. Fails with ErrBusy while a batch run holds
// the store.
func (e *Engine) ClearAll() error {
	if !e.storeMu.TryLock() {
		return fmt.Errorf("embedding store busy: %w", models.ErrBusy)
	}
	defer e.storeMu.Unlock()
	return e.vectors.ClearProvider(e.provider.Name())
}

// FindSimilar returns up to k neighbors of the event at or above threshold.
// Zero k falls back to the configured default; a negative threshold falls
// back to the configured base threshold.
func (e *Engine) FindSimilar(eventID string, k int, threshold float64) ([]models.SimilarityResult, error) {
	if k < 0 {
		return nil, &models.ValidationError{Field: "limit", Message: fmt.Sprintf("must not be negative, got %d", k)}
	}
	if k == 0 {
		k = e.cfg.DefaultNeighbors
	}
	if threshold < -1 {
		threshold = e.cfg.SimilarityThreshold
	}
	return e.similarity.FindSimilar(eventID, k, threshold)
}

// DetectCrossReferences classifies the event against every other embedded
// event and replaces its stored references with the fresh set. Candidates
// without an embedding are reported as skipped, not errors.
func (e *Engine) DetectCrossReferences(ctx context.Context, eventID string) (*models.CrossReferenceReport, error) {
	query, err := e.events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	queryVec, err := e.vectors.Get(eventID, e.provider.Name())
	if err != nil {
		return nil, fmt.Errorf("load query embedding: %w", err)
	}
	if queryVec == nil {
		return nil, fmt.Errorf("no embedding for event %s: %w", eventID, models.ErrNotFound)
	}

	candidates, err := e.events.List(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	report := &models.CrossReferenceReport{References: []models.CrossReference{}}
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cand := &candidates[i]
		if cand.ID == eventID {
			continue
		}
		candVec, err := e.vectors.Get(cand.ID, e.provider.Name())
		if err != nil {
			return nil, fmt.Errorf("load candidate embedding: %w", err)
		}
		if candVec == nil {
			report.SkippedEventIDs = append(report.SkippedEventIDs, cand.ID)
			continue
		}
		sim, err := vector.CosineSimilarity(queryVec.Vector, candVec.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", cand.ID, err)
		}
		report.References = append(report.References, e.detector.Classify(query, cand, sim)...)
	}

	if err := e.refs.ReplaceForEvent(eventID, report.References); err != nil {
		return nil, fmt.Errorf("store cross-references: %w", err)
	}
	return report, nil
}

// CrossReferencesFor returns the stored references touching the event.
func (e *Engine) CrossReferencesFor(eventID string) ([]models.CrossReference, error) {
	return e.refs.GetForEvent(eventID)
}

// DetectPatterns mines the window; nil bounds mean full history.
func (e *Engine) DetectPatterns(ctx context.Context, from, to *time.Time) (*models.PatternReport, error) {
	return e.patterns.DetectPatterns(ctx, from, to)
}

// SuggestTags proposes up to max tags for the event by neighbor analogy.
func (e *Engine) SuggestTags(eventID string, max int) ([]models.TagSuggestion, error) {
	if max < 0 {
		return nil, &models.ValidationError{Field: "max", Message: fmt.Sprintf("must not be negative, got %d", max)}
	}
	if max == 0 {
		max = e.cfg.DefaultNeighbors
	}
	return e.tags.SuggestTags(eventID, max)
}

// EmbeddingCount reports how many vectors the active provider has stored.
func (e *Engine) EmbeddingCount() (int, error) {
	return e.vectors.CountForProvider(e.provider.Name())
}

// ProviderName identifies the active embedding provider.
func (e *Engine) ProviderName() string {
	return e.provider.Name()
}

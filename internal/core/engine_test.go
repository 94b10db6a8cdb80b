// ABOUTME: Tests for the engine facade
// ABOUTME: Covers wiring, busy-store protection, and cross-reference persistence
package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/reverie-journal/reverie/internal/models"
)

func engineFixture() (*fakeEvents, *fakeVectors, *fakeProvider, *fakeRefs, *Engine) {
	events := &fakeEvents{events: []models.Event{
		{ID: "evt_a", Title: "first", Category: "Work", StartDate: date("2024-01-01")},
		{ID: "evt_b", Title: "second", Category: "Work", StartDate: date("2024-01-10")},
		{ID: "evt_c", Title: "third", Category: "Travel", StartDate: date("2024-05-01")},
	}}
	vectors := newFakeVectors()
	provider := newFakeProvider(3)
	refs := newFakeRefs()
	engine := NewEngine(Deps{
		Config:    testConfig(),
		Events:    events,
		Eras:      events,
		Vectors:   vectors,
		Provider:  provider,
		CrossRefs: refs,
	})
	return events, vectors, provider, refs, engine
}

func TestEngineGenerateForEvent(t *testing.T) {
	_, vectors, _, _, engine := engineFixture()

	changed, err := engine.GenerateForEvent(context.Background(), "evt_a", false)
	if err != nil {
		t.Fatalf("GenerateForEvent() error = %v", err)
	}
	if !changed {
		t.Error("GenerateForEvent() = false, want true for an unembedded event")
	}
	if count, _ := vectors.CountForProvider("openai"); count != 1 {
		t.Errorf("stored %d vectors, want 1", count)
	}

	_, err = engine.GenerateForEvent(context.Background(), "evt_missing", false)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GenerateForEvent(missing) error = %v, want ErrNotFound", err)
	}
}

func TestEngineGenerateAllThenCount(t *testing.T) {
	_, _, _, _, engine := engineFixture()

	result, err := engine.GenerateAll(context.Background(), false)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if result.SucceededCount != 3 {
		t.Errorf("SucceededCount = %d, want 3", result.SucceededCount)
	}
	count, err := engine.EmbeddingCount()
	if err != nil {
		t.Fatalf("EmbeddingCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("EmbeddingCount() = %d, want 3", count)
	}
}

// blockingProvider parks inside Embed until released, so a test can hold
// the store lock open.
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *blockingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.once.Do(func() { close(p.started) })
	<-p.release
	return []float64{1, 0, 0}, nil
}

func (p *blockingProvider) Dimension() int    { return 3 }
func (p *blockingProvider) ModelName() string { return "blocking-model" }
func (p *blockingProvider) Name() string      { return "openai" }

func TestEngineClearAllBusyDuringBatch(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "evt_a", Title: "first", StartDate: date("2024-01-01")},
	}}
	provider := &blockingProvider{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	engine := NewEngine(Deps{
		Config:    testConfig(),
		Events:    events,
		Eras:      events,
		Vectors:   newFakeVectors(),
		Provider:  provider,
		CrossRefs: newFakeRefs(),
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := engine.GenerateAll(context.Background(), false); err != nil {
			t.Errorf("GenerateAll() error = %v", err)
		}
	}()

	<-provider.started
	if err := engine.ClearAll(); !errors.Is(err, models.ErrBusy) {
		t.Errorf("ClearAll() during batch error = %v, want ErrBusy", err)
	}
	if _, err := engine.GenerateAll(context.Background(), false); !errors.Is(err, models.ErrBusy) {
		t.Errorf("concurrent GenerateAll() error = %v, want ErrBusy", err)
	}

	close(provider.release)
	<-done

	if err := engine.ClearAll(); err != nil {
		t.Errorf("ClearAll() after batch error = %v", err)
	}
}

func TestEngineDetectCrossReferences(t *testing.T) {
	events, vectors, _, refs, engine := engineFixture()
	vectors.putVec(&events.events[0], "openai", []float64{1, 0, 0})
	vectors.putVec(&events.events[1], "openai", []float64{0.95, 0.05, 0})
	// evt_c stays unembedded.

	report, err := engine.DetectCrossReferences(context.Background(), "evt_a")
	if err != nil {
		t.Fatalf("DetectCrossReferences() error = %v", err)
	}
	if len(report.References) == 0 {
		t.Fatal("near-identical same-category events must produce references")
	}
	if len(report.SkippedEventIDs) != 1 || report.SkippedEventIDs[0] != "evt_c" {
		t.Errorf("SkippedEventIDs = %v, want [evt_c]", report.SkippedEventIDs)
	}

	stored, err := engine.CrossReferencesFor("evt_a")
	if err != nil {
		t.Fatalf("CrossReferencesFor() error = %v", err)
	}
	if len(stored) != len(report.References) {
		t.Errorf("stored %d references, report had %d", len(stored), len(report.References))
	}

	// Re-running replaces rather than accumulates.
	if _, err := engine.DetectCrossReferences(context.Background(), "evt_a"); err != nil {
		t.Fatalf("second DetectCrossReferences() error = %v", err)
	}
	again, _ := refs.GetForEvent("evt_a")
	if len(again) != len(stored) {
		t.Errorf("re-run stored %d references, want %d", len(again), len(stored))
	}
}

func TestEngineDetectCrossReferencesNoQueryEmbedding(t *testing.T) {
	_, _, _, _, engine := engineFixture()

	_, err := engine.DetectCrossReferences(context.Background(), "evt_a")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound for unembedded query", err)
	}
}

func TestEngineFindSimilarDefaults(t *testing.T) {
	events, vectors, _, _, engine := engineFixture()
	vectors.putVec(&events.events[0], "openai", []float64{1, 0, 0})
	vectors.putVec(&events.events[1], "openai", []float64{0.9, 0.1, 0})

	// k=0 falls back to the configured default neighbor count.
	results, err := engine.FindSimilar("evt_a", 0, 0.5)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(results) != 1 || results[0].EventID != "evt_b" {
		t.Errorf("FindSimilar() = %v, want [evt_b]", results)
	}
}

func TestEngineRejectsNegativeLimits(t *testing.T) {
	_, _, _, _, engine := engineFixture()

	var verr *models.ValidationError
	if _, err := engine.FindSimilar("evt_a", -1, 0.5); !errors.As(err, &verr) {
		t.Errorf("FindSimilar(k=-1) error = %v, want ValidationError", err)
	}
	if _, err := engine.SuggestTags("evt_a", -1); !errors.As(err, &verr) {
		t.Errorf("SuggestTags(max=-1) error = %v, want ValidationError", err)
	}
}

func TestEngineSuggestTags(t *testing.T) {
	events, vectors, _, _, engine := engineFixture()
	events.events[1].Tags = []models.Tag{{Name: "career"}}
	vectors.putVec(&events.events[0], "openai", []float64{1, 0, 0})
	vectors.putVec(&events.events[1], "openai", []float64{0.9, 0.1, 0})

	suggestions, err := engine.SuggestTags("evt_a", 0)
	if err != nil {
		t.Fatalf("SuggestTags() error = %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].TagName != "career" {
		t.Errorf("SuggestTags() = %v, want [career]", suggestions)
	}
}

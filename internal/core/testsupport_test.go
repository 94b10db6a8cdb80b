// ABOUTME: In-memory fakes shared by the engine package tests
// ABOUTME: Fake event source, vector backend, and embedding provider
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Backend:             "sqlite",
		Provider:            "openai",
		SimilarityThreshold: 0.5,
		DefaultNeighbors:    10,
		MinTagSimilarity:    0.3,
		CausalThreshold:     0.5,
		CausalWindowDays:    365,
		TemporalWindowDays:  30,
		FollowUpWindowDays:  90,
		ClusterThreshold:    0.75,
		MinPatternSupport:   3,
	}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeEvents struct {
	events []models.Event
	eras   []models.Era
}

func (f *fakeEvents) GetByID(id string) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			e := f.events[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, models.ErrNotFound)
}

func (f *fakeEvents) List(from, to *time.Time) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		if from != nil && e.StartDate.Before(*from) {
			continue
		}
		if to != nil && e.StartDate.After(*to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeEvents) ListEras() ([]models.Era, error) {
	return f.eras, nil
}

type fakeVectors struct {
	recs map[string]models.EmbeddingRecord
}

func newFakeVectors() *fakeVectors {
	return &fakeVectors{recs: make(map[string]models.EmbeddingRecord)}
}

func (f *fakeVectors) key(eventID, provider string) string {
	return provider + "/" + eventID
}

func (f *fakeVectors) Put(rec models.EmbeddingRecord) error {
	f.recs[f.key(rec.EventID, rec.Provider)] = rec
	return nil
}

func (f *fakeVectors) Get(eventID, provider string) (*models.EmbeddingRecord, error) {
	rec, ok := f.recs[f.key(eventID, provider)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeVectors) AllForProvider(provider string) ([]models.EmbeddingRecord, error) {
	var out []models.EmbeddingRecord
	for _, rec := range f.recs {
		if rec.Provider == provider {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out, nil
}

func (f *fakeVectors) Delete(eventID, provider string) error {
	delete(f.recs, f.key(eventID, provider))
	return nil
}

func (f *fakeVectors) ClearProvider(provider string) error {
	for k, rec := range f.recs {
		if rec.Provider == provider {
			delete(f.recs, k)
		}
	}
	return nil
}

func (f *fakeVectors) CountForProvider(provider string) (int, error) {
	n := 0
	for _, rec := range f.recs {
		if rec.Provider == provider {
			n++
		}
	}
	return n, nil
}

// putVec stores a raw vector for an event under the fake provider,
// hashed against the given event so staleness checks line up.
func (f *fakeVectors) putVec(event *models.Event, provider string, vec []float64) {
	f.recs[f.key(event.ID, provider)] = models.EmbeddingRecord{
		EventID:     event.ID,
		Vector:      vec,
		Provider:    provider,
		Model:       "fake-model",
		Dimension:   len(vec),
		ContentHash: event.ContentHash(),
		CreatedAt:   time.Now().UTC(),
	}
}

var errEmbedFailed = errors.New("embedding backend unavailable")

// fakeProvider returns canned vectors keyed by embedding text and fails
// for texts in the fail set. Unknown texts get a fixed filler vector.
type fakeProvider struct {
	vectors map[string][]float64
	fail    map[string]bool
	calls   int
	dim     int
}

func newFakeProvider(dim int) *fakeProvider {
	return &fakeProvider{
		vectors: make(map[string][]float64),
		fail:    make(map[string]bool),
		dim:     dim,
	}
}

func (p *fakeProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.calls++
	if p.fail[text] {
		return nil, errEmbedFailed
	}
	if v, ok := p.vectors[text]; ok {
		return v, nil
	}
	v := make([]float64, p.dim)
	v[0] = 1
	return v, nil
}

func (p *fakeProvider) Dimension() int    { return p.dim }
func (p *fakeProvider) ModelName() string { return "fake-model" }
func (p *fakeProvider) Name() string      { return "openai" }

type fakeRefs struct {
	byEvent map[string][]models.CrossReference
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{byEvent: make(map[string][]models.CrossReference)}
}

func (f *fakeRefs) ReplaceForEvent(eventID string, refs []models.CrossReference) error {
	f.byEvent[eventID] = refs
	return nil
}

func (f *fakeRefs) GetForEvent(eventID string) ([]models.CrossReference, error) {
	return f.byEvent[eventID], nil
}

// ABOUTME: K-nearest-neighbor similarity search over stored embeddings
// ABOUTME: Brute-force cosine scan with deterministic tie-breaking
package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/reverie-journal/reverie/internal/models"
	"github.com/reverie-journal/reverie/internal/storage"
	"github.com/reverie-journal/reverie/internal/vector"
)

// EventSource supplies event records to the engine. Satisfied by the
// SQLite event store.
type EventSource interface {
	GetByID(id string) (*models.Event, error)
	List(from, to *time.Time) ([]models.Event, error)
}

// SimilarityEngine answers KNN queries against one provider's embeddings.
// The scan is brute force over the provider's full embedding set; journals
// are small enough that an index would not pay for itself.
type SimilarityEngine struct {
	vectors  storage.VectorBackend
	events   EventSource
	provider string
}

func NewSimilarityEngine(vectors storage.VectorBackend, events EventSource, provider string) *SimilarityEngine {
	return &SimilarityEngine{
		vectors:  vectors,
		events:   events,
		provider: provider,
	}
}

// FindSimilar returns up to k events whose embeddings score at or above
// threshold against the query event's embedding, best first. The query
// event itself is never a result. Ties on score break toward the more
// recent event, then the lexically smaller ID, so repeated queries over
// unchanged data return identical rankings.
func (s *SimilarityEngine) FindSimilar(queryEventID string, k int, threshold float64) ([]models.SimilarityResult, error) {
	if k <= 0 {
		return []models.SimilarityResult{}, nil
	}

	query, err := s.vectors.Get(queryEventID, s.provider)
	if err != nil {
		return nil, fmt.Errorf("load query embedding: %w", err)
	}
	if query == nil {
		return nil, fmt.Errorf("no embedding for event %s: %w", queryEventID, models.ErrNotFound)
	}

	candidates, err := s.vectors.AllForProvider(s.provider)
	if err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}

	results := make([]models.SimilarityResult, 0, len(candidates))
	for _, cand := range candidates {
		if cand.EventID == queryEventID {
			continue
		}
		score, err := vector.CosineSimilarity(query.Vector, cand.Vector)
		if err != nil {
			// A stored vector with the wrong dimension is corrupt state,
			// not a query error.
			return nil, fmt.Errorf("candidate %s: %w", cand.EventID, err)
		}
		if score < threshold {
			continue
		}
		results = append(results, models.SimilarityResult{
			EventID:         cand.EventID,
			SimilarityScore: score,
		})
	}

	s.sortResults(results)
	if len(results) > k {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// sortResults orders by score descending, then newer start date, then ID.
func (s *SimilarityEngine) sortResults(results []models.SimilarityResult) {
	dates := s.startDates(results)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		di, dj := dates[results[i].EventID], dates[results[j].EventID]
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return results[i].EventID < results[j].EventID
	})
}

// startDates fetches start dates for tie-breaking. Events that cannot be
// loaded sort as the zero time, after everything dated.
func (s *SimilarityEngine) startDates(results []models.SimilarityResult) map[string]time.Time {
	dates := make(map[string]time.Time, len(results))
	for _, r := range results {
		event, err := s.events.GetByID(r.EventID)
		if err != nil || event == nil {
			continue
		}
		dates[r.EventID] = event.StartDate
	}
	return dates
}

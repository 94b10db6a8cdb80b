// ABOUTME: Pattern mining over a date window of events and their embeddings
// ABOUTME: Finds recurring categories, similarity clusters, and era transitions
package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/llm"
	"github.com/reverie-journal/reverie/internal/models"
	"github.com/reverie-journal/reverie/internal/storage"
	"github.com/reverie-journal/reverie/internal/vector"
)

// EraSource supplies the user's named eras. Satisfied by the SQLite
// event store.
type EraSource interface {
	ListEras() ([]models.Era, error)
}

// PatternDetector aggregates over a date range. Results are computed on
// demand and never persisted. The summarizer is optional; when nil,
// descriptions fall back to templates.
type PatternDetector struct {
	events     EventSource
	eras       EraSource
	vectors    storage.VectorBackend
	provider   string
	cfg        *config.Config
	summarizer llm.Summarizer
}

func NewPatternDetector(events EventSource, eras EraSource, vectors storage.VectorBackend, provider string, cfg *config.Config, summarizer llm.Summarizer) *PatternDetector {
	return &PatternDetector{
		events:     events,
		eras:       eras,
		vectors:    vectors,
		provider:   provider,
		cfg:        cfg,
		summarizer: summarizer,
	}
}

// DetectPatterns mines the window bounded by from/to; nil bounds mean the
// full history.
func (p *PatternDetector) DetectPatterns(ctx context.Context, from, to *time.Time) (*models.PatternReport, error) {
	events, err := p.events.List(from, to)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	report := &models.PatternReport{
		CategoryPatterns: p.categoryPatterns(ctx, events),
	}

	clusters, err := p.clusters(ctx, events)
	if err != nil {
		return nil, err
	}
	report.Clusters = clusters

	transitions, err := p.eraTransitions(events)
	if err != nil {
		return nil, err
	}
	report.EraTransitions = transitions

	return report, nil
}

// categoryPatterns emits categories that either meet the minimum support
// or show a clear trend across the window's halves.
func (p *PatternDetector) categoryPatterns(ctx context.Context, events []models.Event) []models.CategoryPattern {
	type bucket struct {
		events []models.Event
	}
	byCategory := make(map[string]*bucket)
	for _, e := range events {
		if e.Category == "" {
			continue
		}
		b := byCategory[e.Category]
		if b == nil {
			b = &bucket{}
			byCategory[e.Category] = b
		}
		b.events = append(b.events, e)
	}

	var patterns []models.CategoryPattern
	for category, b := range byCategory {
		first, last := dateRange(b.events)
		trend := categoryTrend(b.events, first, last)
		if len(b.events) < p.cfg.MinPatternSupport && trend == "stable" {
			continue
		}
		pattern := models.CategoryPattern{
			Category:   category,
			EventCount: len(b.events),
			FirstDate:  first,
			LastDate:   last,
			Trend:      trend,
		}
		pattern.Description = p.describe(ctx, fmt.Sprintf(
			"%d %s events between %s and %s (%s)",
			pattern.EventCount, category,
			first.Format("2006-01-02"), last.Format("2006-01-02"), trend))
		patterns = append(patterns, pattern)
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].EventCount != patterns[j].EventCount {
			return patterns[i].EventCount > patterns[j].EventCount
		}
		return patterns[i].FirstDate.Before(patterns[j].FirstDate)
	})
	return patterns
}

// categoryTrend compares event counts in the first and second halves of
// the category's own span. A doubling either way counts as a trend.
func categoryTrend(events []models.Event, first, last time.Time) string {
	span := last.Sub(first)
	if span <= 0 || len(events) < 4 {
		return "stable"
	}
	mid := first.Add(span / 2)
	var early, late int
	for _, e := range events {
		if e.StartDate.Before(mid) {
			early++
		} else {
			late++
		}
	}
	switch {
	case late >= 2*early && late >= 2:
		return "rising"
	case early >= 2*late && early >= 2:
		return "falling"
	default:
		return "stable"
	}
}

// clusters merges events transitively whenever a pair's similarity exceeds
// the cluster threshold. Events without an embedding stay unclustered.
func (p *PatternDetector) clusters(ctx context.Context, events []models.Event) ([]models.EventCluster, error) {
	records, err := p.vectors.AllForProvider(p.provider)
	if err != nil {
		return nil, fmt.Errorf("scan embeddings: %w", err)
	}

	inWindow := make(map[string]models.Event, len(events))
	for _, e := range events {
		inWindow[e.ID] = e
	}

	var embedded []models.EmbeddingRecord
	for _, rec := range records {
		if _, ok := inWindow[rec.EventID]; ok {
			embedded = append(embedded, rec)
		}
	}

	ids := make([]string, len(embedded))
	for i, rec := range embedded {
		ids[i] = rec.EventID
	}
	uf := newUnionFind(ids)
	for i := 0; i < len(embedded); i++ {
		for j := i + 1; j < len(embedded); j++ {
			score, err := vector.CosineSimilarity(embedded[i].Vector, embedded[j].Vector)
			if err != nil {
				return nil, fmt.Errorf("cluster pair %s/%s: %w", embedded[i].EventID, embedded[j].EventID, err)
			}
			if score >= p.cfg.ClusterThreshold {
				uf.union(embedded[i].EventID, embedded[j].EventID)
			}
		}
	}

	var clusters []models.EventCluster
	for _, members := range uf.components() {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		memberEvents := make([]models.Event, 0, len(members))
		for _, id := range members {
			memberEvents = append(memberEvents, inWindow[id])
		}
		first, last := dateRange(memberEvents)
		cluster := models.EventCluster{
			EventIDs:   members,
			EventCount: len(members),
			FirstDate:  first,
			LastDate:   last,
		}
		cluster.Description = p.describe(ctx, fmt.Sprintf(
			"%d closely related events between %s and %s",
			cluster.EventCount, first.Format("2006-01-02"), last.Format("2006-01-02")))
		clusters = append(clusters, cluster)
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].EventCount != clusters[j].EventCount {
			return clusters[i].EventCount > clusters[j].EventCount
		}
		return clusters[i].FirstDate.Before(clusters[j].FirstDate)
	})
	return clusters, nil
}

// eraTransitions reports eras whose dominant category differs before and
// after the era's start date.
func (p *PatternDetector) eraTransitions(events []models.Event) ([]models.EraTransition, error) {
	eras, err := p.eras.ListEras()
	if err != nil {
		return nil, fmt.Errorf("list eras: %w", err)
	}

	var transitions []models.EraTransition
	for _, era := range eras {
		var before, after []models.Event
		for _, e := range events {
			if e.StartDate.Before(era.StartDate) {
				before = append(before, e)
			} else {
				after = append(after, e)
			}
		}
		if len(before) == 0 || len(after) == 0 {
			continue
		}
		catBefore := dominantCategory(before)
		catAfter := dominantCategory(after)
		if catBefore == "" || catAfter == "" || catBefore == catAfter {
			continue
		}
		transitions = append(transitions, models.EraTransition{
			EraID:          era.ID,
			EraName:        era.Name,
			BoundaryDate:   era.StartDate,
			CategoryBefore: catBefore,
			CategoryAfter:  catAfter,
			EventCount:     len(after),
			Description: fmt.Sprintf("entering %s, focus shifted from %s to %s",
				era.Name, catBefore, catAfter),
		})
	}

	sort.Slice(transitions, func(i, j int) bool {
		return transitions[i].BoundaryDate.Before(transitions[j].BoundaryDate)
	})
	return transitions, nil
}

// describe asks the summarizer for a nicer sentence, keeping the template
// when no summarizer is wired or the call fails.
func (p *PatternDetector) describe(ctx context.Context, template string) string {
	if p.summarizer == nil {
		return template
	}
	summary, err := p.summarizer.Summarize(ctx, "Describe this journaling pattern in one sentence: "+template)
	if err != nil || summary == "" {
		return template
	}
	return summary
}

func dateRange(events []models.Event) (time.Time, time.Time) {
	if len(events) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last := events[0].StartDate, events[0].StartDate
	for _, e := range events[1:] {
		if e.StartDate.Before(first) {
			first = e.StartDate
		}
		if e.StartDate.After(last) {
			last = e.StartDate
		}
	}
	return first, last
}

// dominantCategory returns the most frequent category, breaking ties
// alphabetically for determinism.
func dominantCategory(events []models.Event) string {
	counts := make(map[string]int)
	for _, e := range events {
		if e.Category != "" {
			counts[e.Category]++
		}
	}
	var best string
	bestCount := 0
	for category, count := range counts {
		if count > bestCount || (count == bestCount && category < best) {
			best = category
			bestCount = count
		}
	}
	return best
}

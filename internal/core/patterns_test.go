// ABOUTME: Tests for pattern detection
// ABOUTME: Covers category support, trends, similarity clusters, and era transitions
package core

import (
	"context"
	"testing"

	"github.com/reverie-journal/reverie/internal/models"
)

func TestCategoryPatternsMinSupport(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "e1", Category: "Work", StartDate: date("2024-01-01")},
		{ID: "e2", Category: "Work", StartDate: date("2024-02-01")},
		{ID: "e3", Category: "Work", StartDate: date("2024-03-01")},
		{ID: "e4", Category: "Travel", StartDate: date("2024-01-15")},
	}}
	detector := NewPatternDetector(events, events, newFakeVectors(), "openai", testConfig(), nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.CategoryPatterns) != 1 {
		t.Fatalf("got %d category patterns, want 1 (Travel is below support)", len(report.CategoryPatterns))
	}
	p := report.CategoryPatterns[0]
	if p.Category != "Work" || p.EventCount != 3 {
		t.Errorf("pattern = %s/%d, want Work/3", p.Category, p.EventCount)
	}
	if !p.FirstDate.Equal(date("2024-01-01")) || !p.LastDate.Equal(date("2024-03-01")) {
		t.Errorf("date range = %s..%s, want 2024-01-01..2024-03-01", p.FirstDate, p.LastDate)
	}
	if p.Description == "" {
		t.Error("pattern description must not be empty")
	}
}

func TestCategoryPatternsRisingTrend(t *testing.T) {
	// One early event, three late ones: rising even below a larger
	// support threshold.
	cfg := testConfig()
	cfg.MinPatternSupport = 10
	events := &fakeEvents{events: []models.Event{
		{ID: "e1", Category: "Health", StartDate: date("2024-01-01")},
		{ID: "e2", Category: "Health", StartDate: date("2024-11-01")},
		{ID: "e3", Category: "Health", StartDate: date("2024-11-15")},
		{ID: "e4", Category: "Health", StartDate: date("2024-12-01")},
	}}
	detector := NewPatternDetector(events, events, newFakeVectors(), "openai", cfg, nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.CategoryPatterns) != 1 {
		t.Fatalf("got %d patterns, want 1 trending pattern", len(report.CategoryPatterns))
	}
	if report.CategoryPatterns[0].Trend != "rising" {
		t.Errorf("trend = %s, want rising", report.CategoryPatterns[0].Trend)
	}
}

func TestClustersMergeTransitively(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "e1", StartDate: date("2024-01-01")},
		{ID: "e2", StartDate: date("2024-02-01")},
		{ID: "e3", StartDate: date("2024-03-01")},
		{ID: "e4", StartDate: date("2024-04-01")},
	}}
	vectors := newFakeVectors()
	// e1~e2 and e2~e3 exceed the threshold; e4 points elsewhere.
	vectors.putVec(&events.events[0], "openai", []float64{1, 0, 0})
	vectors.putVec(&events.events[1], "openai", []float64{0.95, 0.05, 0})
	vectors.putVec(&events.events[2], "openai", []float64{0.9, 0.1, 0})
	vectors.putVec(&events.events[3], "openai", []float64{0, 0, 1})
	detector := NewPatternDetector(events, events, vectors, "openai", testConfig(), nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(report.Clusters))
	}
	c := report.Clusters[0]
	if c.EventCount != 3 {
		t.Errorf("cluster size = %d, want 3", c.EventCount)
	}
	want := []string{"e1", "e2", "e3"}
	for i, id := range want {
		if c.EventIDs[i] != id {
			t.Errorf("cluster member %d = %s, want %s", i, c.EventIDs[i], id)
		}
	}
	if !c.FirstDate.Equal(date("2024-01-01")) || !c.LastDate.Equal(date("2024-03-01")) {
		t.Errorf("cluster range = %s..%s", c.FirstDate, c.LastDate)
	}
}

func TestClustersIgnoreUnembeddedEvents(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "e1", StartDate: date("2024-01-01")},
		{ID: "e2", StartDate: date("2024-02-01")},
		{ID: "e3", StartDate: date("2024-03-01")},
	}}
	vectors := newFakeVectors()
	vectors.putVec(&events.events[0], "openai", []float64{1, 0})
	vectors.putVec(&events.events[1], "openai", []float64{1, 0})
	// e3 has no embedding.
	detector := NewPatternDetector(events, events, vectors, "openai", testConfig(), nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.Clusters) != 1 || report.Clusters[0].EventCount != 2 {
		t.Fatalf("clusters = %+v, want one pair cluster", report.Clusters)
	}
}

func TestEraTransitions(t *testing.T) {
	events := &fakeEvents{
		events: []models.Event{
			{ID: "e1", Category: "Education", StartDate: date("2019-05-01")},
			{ID: "e2", Category: "Education", StartDate: date("2019-09-01")},
			{ID: "e3", Category: "Work", StartDate: date("2020-07-01")},
			{ID: "e4", Category: "Work", StartDate: date("2020-09-01")},
		},
		eras: []models.Era{
			{ID: "era_career", Name: "First Job", StartDate: date("2020-06-01")},
		},
	}
	detector := NewPatternDetector(events, events, newFakeVectors(), "openai", testConfig(), nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.EraTransitions) != 1 {
		t.Fatalf("got %d transitions, want 1", len(report.EraTransitions))
	}
	tr := report.EraTransitions[0]
	if tr.CategoryBefore != "Education" || tr.CategoryAfter != "Work" {
		t.Errorf("transition %s -> %s, want Education -> Work", tr.CategoryBefore, tr.CategoryAfter)
	}
	if tr.EraName != "First Job" {
		t.Errorf("era name = %s, want First Job", tr.EraName)
	}
}

func TestEraTransitionsSkipUnchangedMix(t *testing.T) {
	events := &fakeEvents{
		events: []models.Event{
			{ID: "e1", Category: "Work", StartDate: date("2019-05-01")},
			{ID: "e2", Category: "Work", StartDate: date("2020-07-01")},
		},
		eras: []models.Era{
			{ID: "era_x", Name: "Same Thing", StartDate: date("2020-01-01")},
		},
	}
	detector := NewPatternDetector(events, events, newFakeVectors(), "openai", testConfig(), nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.EraTransitions) != 0 {
		t.Errorf("unchanged category mix must not report a transition, got %+v", report.EraTransitions)
	}
}

func TestPatternsSortedByCountThenDate(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "a1", Category: "Art", StartDate: date("2024-01-01")},
		{ID: "a2", Category: "Art", StartDate: date("2024-02-01")},
		{ID: "a3", Category: "Art", StartDate: date("2024-03-01")},
		{ID: "w1", Category: "Work", StartDate: date("2023-01-01")},
		{ID: "w2", Category: "Work", StartDate: date("2023-02-01")},
		{ID: "w3", Category: "Work", StartDate: date("2023-03-01")},
		{ID: "w4", Category: "Work", StartDate: date("2023-04-01")},
	}}
	detector := NewPatternDetector(events, events, newFakeVectors(), "openai", testConfig(), nil)

	report, err := detector.DetectPatterns(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.CategoryPatterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(report.CategoryPatterns))
	}
	if report.CategoryPatterns[0].Category != "Work" {
		t.Errorf("first pattern = %s, want Work (higher count)", report.CategoryPatterns[0].Category)
	}
}

func TestDetectPatternsWindowBounds(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "in1", Category: "Work", StartDate: date("2024-02-01")},
		{ID: "in2", Category: "Work", StartDate: date("2024-03-01")},
		{ID: "in3", Category: "Work", StartDate: date("2024-04-01")},
		{ID: "out", Category: "Work", StartDate: date("2023-01-01")},
	}}
	detector := NewPatternDetector(events, events, newFakeVectors(), "openai", testConfig(), nil)

	from, to := date("2024-01-01"), date("2024-12-31")
	report, err := detector.DetectPatterns(context.Background(), &from, &to)
	if err != nil {
		t.Fatalf("DetectPatterns() error = %v", err)
	}
	if len(report.CategoryPatterns) != 1 || report.CategoryPatterns[0].EventCount != 3 {
		t.Fatalf("windowed pattern = %+v, want Work/3", report.CategoryPatterns)
	}
}

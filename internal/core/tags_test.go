// ABOUTME: Tests for similarity-weighted tag suggestion
// ABOUTME: Covers weighting, exclusion of existing tags, and tie-breaks
package core

import (
	"testing"

	"github.com/reverie-journal/reverie/internal/models"
)

// Neighbors carry tags {a,b}, {a,c}, {b} at similarities 0.9, 0.8, 0.7:
// weighted frequency ranks a (1.7) above b (1.6) above c (0.8).
func tagFixture() (*fakeEvents, *TagSuggester) {
	events := &fakeEvents{events: []models.Event{
		{ID: "evt_target", StartDate: date("2024-06-01")},
		{ID: "evt_n1", StartDate: date("2024-05-01"),
			Tags: []models.Tag{{Name: "a"}, {Name: "b"}}},
		{ID: "evt_n2", StartDate: date("2024-04-01"),
			Tags: []models.Tag{{Name: "a"}, {Name: "c"}}},
		{ID: "evt_n3", StartDate: date("2024-03-01"),
			Tags: []models.Tag{{Name: "b"}}},
	}}
	vectors := newFakeVectors()
	vectors.putVec(&events.events[0], "openai", []float64{1, 0})
	// Vectors chosen so cosine against the target is 0.9, 0.8, 0.7.
	vectors.putVec(&events.events[1], "openai", []float64{0.9, 0.43589})
	vectors.putVec(&events.events[2], "openai", []float64{0.8, 0.6})
	vectors.putVec(&events.events[3], "openai", []float64{0.7, 0.71414})
	similarity := NewSimilarityEngine(vectors, events, "openai")
	return events, NewTagSuggester(similarity, events, testConfig())
}

func TestSuggestTagsWeightedOrdering(t *testing.T) {
	_, suggester := tagFixture()

	suggestions, err := suggester.SuggestTags("evt_target", 10)
	if err != nil {
		t.Fatalf("SuggestTags() error = %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}
	want := []string{"a", "b", "c"}
	for i, name := range want {
		if suggestions[i].TagName != name {
			t.Errorf("suggestion %d = %s, want %s", i, suggestions[i].TagName, name)
		}
	}
	if suggestions[0].Confidence <= suggestions[1].Confidence {
		t.Error("confidence must decrease with rank")
	}
	for _, s := range suggestions {
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("confidence %.3f outside [0,1]", s.Confidence)
		}
		if len(s.SourceEventIDs) == 0 {
			t.Errorf("suggestion %s has no provenance", s.TagName)
		}
	}
}

func TestSuggestTagsExcludesExisting(t *testing.T) {
	events, suggester := tagFixture()
	events.events[0].Tags = []models.Tag{{Name: "a"}}

	suggestions, err := suggester.SuggestTags("evt_target", 10)
	if err != nil {
		t.Fatalf("SuggestTags() error = %v", err)
	}
	for _, s := range suggestions {
		if s.TagName == "a" {
			t.Error("existing tag must not be suggested")
		}
	}
}

func TestSuggestTagsMaxLimit(t *testing.T) {
	_, suggester := tagFixture()

	suggestions, err := suggester.SuggestTags("evt_target", 1)
	if err != nil {
		t.Fatalf("SuggestTags() error = %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].TagName != "a" {
		t.Errorf("SuggestTags(max=1) = %v, want just [a]", suggestions)
	}
}

func TestSuggestTagsAlphabeticalTieBreak(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "evt_target", StartDate: date("2024-06-01")},
		{ID: "evt_n1", StartDate: date("2024-05-01"),
			Tags: []models.Tag{{Name: "zebra"}, {Name: "apple"}}},
	}}
	vectors := newFakeVectors()
	vectors.putVec(&events.events[0], "openai", []float64{1, 0})
	vectors.putVec(&events.events[1], "openai", []float64{1, 0})
	similarity := NewSimilarityEngine(vectors, events, "openai")
	suggester := NewTagSuggester(similarity, events, testConfig())

	suggestions, err := suggester.SuggestTags("evt_target", 10)
	if err != nil {
		t.Fatalf("SuggestTags() error = %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].TagName != "apple" || suggestions[1].TagName != "zebra" {
		t.Errorf("tied tags = [%s %s], want alphabetical [apple zebra]",
			suggestions[0].TagName, suggestions[1].TagName)
	}
}

func TestSuggestTagsNoNeighbors(t *testing.T) {
	events := &fakeEvents{events: []models.Event{
		{ID: "evt_target", StartDate: date("2024-06-01")},
	}}
	vectors := newFakeVectors()
	vectors.putVec(&events.events[0], "openai", []float64{1, 0})
	similarity := NewSimilarityEngine(vectors, events, "openai")
	suggester := NewTagSuggester(similarity, events, testConfig())

	suggestions, err := suggester.SuggestTags("evt_target", 10)
	if err != nil {
		t.Fatalf("SuggestTags() error = %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("got %d suggestions for an isolated event, want 0", len(suggestions))
	}
}

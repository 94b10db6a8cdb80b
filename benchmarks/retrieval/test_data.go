// ABOUTME: Benchmark scenario definitions with labeled ground truth
// ABOUTME: Synthetic journals with hand-assigned embedding directions per topic

package retrieval

import (
	"time"

	"github.com/reverie-journal/reverie/internal/models"
)

// BenchmarkScenario is one labeled retrieval test: a synthetic journal,
// a query event, and the expected outcomes.
type BenchmarkScenario struct {
	ID          string
	Name        string
	Description string
	Events      []SeedEvent
	QueryID     string

	// Retrieval ground truth: neighbors that should rank at or above
	// the similarity threshold, in expected order.
	ExpectedNeighborIDs []string

	// Relationship ground truth: per other-event, the relationship
	// types that must be detected for the (query, other) pair.
	ExpectedRelations map[string][]models.RelationshipType
}

// SeedEvent couples an event with the vector the benchmark embedder
// returns for it. Vectors are unit-length by construction so cosine
// scores are direct dot products.
type SeedEvent struct {
	Event  models.Event
	Vector []float64
}

// TestResult represents the outcome of one benchmark scenario
type TestResult struct {
	ScenarioID       string                 `json:"scenario_id"`
	ScenarioName     string                 `json:"scenario_name"`
	RetrievalScore   float64                `json:"retrieval_score"`
	RelationScore    float64                `json:"relation_score"`
	OverallScore     float64                `json:"overall_score"`
	Status           string                 `json:"status"` // "PASS" or "FAIL"
	Details          map[string]interface{} `json:"details,omitempty"`
	ErrorMessage     string                 `json:"error_message,omitempty"`
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// GetTopicalRetrieval returns a scenario with two well-separated topics.
// The query is a climbing event; both other climbing events must come
// back ahead of anything from the cooking cluster.
func GetTopicalRetrieval() BenchmarkScenario {
	return BenchmarkScenario{
		ID:          "topical_retrieval",
		Name:        "Topical retrieval across two clusters",
		Description: "KNN must keep topic clusters separated",
		QueryID:     "climb_1",
		Events: []SeedEvent{
			{
				Event:  models.Event{ID: "climb_1", Title: "First outdoor climb", Category: "Sport", StartDate: day("2024-03-01")},
				Vector: []float64{1, 0, 0},
			},
			{
				Event:  models.Event{ID: "climb_2", Title: "Bouldering gym session", Category: "Sport", StartDate: day("2024-03-20")},
				Vector: []float64{0.98, 0.19899749, 0},
			},
			{
				Event:  models.Event{ID: "climb_3", Title: "Climbing trip to Fontainebleau", Category: "Sport", StartDate: day("2024-05-10")},
				Vector: []float64{0.95, 0.31224990, 0},
			},
			{
				Event:  models.Event{ID: "cook_1", Title: "Sourdough starter day one", Category: "Cooking", StartDate: day("2024-03-05")},
				Vector: []float64{0, 1, 0},
			},
			{
				Event:  models.Event{ID: "cook_2", Title: "First sourdough loaf", Category: "Cooking", StartDate: day("2024-03-12")},
				Vector: []float64{0, 0.98, 0.19899749},
			},
		},
		ExpectedNeighborIDs: []string{"climb_2", "climb_3"},
		ExpectedRelations: map[string][]models.RelationshipType{
			"climb_2": {models.RelationThematic, models.RelationTemporal},
			"climb_3": {models.RelationThematic},
		},
	}
}

// GetCausalChain returns a scenario where a work event plausibly causes
// an education event in a different life domain weeks later.
func GetCausalChain() BenchmarkScenario {
	return BenchmarkScenario{
		ID:          "causal_chain",
		Name:        "Causal edge across life domains",
		Description: "Moderate similarity + ordered dates + differing categories",
		QueryID:     "layoff",
		Events: []SeedEvent{
			{
				Event:  models.Event{ID: "layoff", Title: "Laid off from the startup", Category: "Work", StartDate: day("2024-01-05")},
				Vector: []float64{1, 0, 0},
			},
			{
				Event:  models.Event{ID: "retrain", Title: "Enrolled in a data engineering course", Category: "Education", StartDate: day("2024-03-01")},
				Vector: []float64{0.6, 0.8, 0},
			},
			{
				Event:  models.Event{ID: "unrelated", Title: "Weekend at the lake", Category: "Travel", StartDate: day("2024-02-10")},
				Vector: []float64{0, 0, 1},
			},
		},
		ExpectedNeighborIDs: []string{"retrain"},
		ExpectedRelations: map[string][]models.RelationshipType{
			"retrain": {models.RelationCausal},
		},
	}
}

// GetEntityLinks returns a scenario where shared people and places must
// surface person/location edges even at modest similarity.
func GetEntityLinks() BenchmarkScenario {
	return BenchmarkScenario{
		ID:          "entity_links",
		Name:        "Entity-anchored relationships",
		Description: "Shared person and location edges plus a follow-up",
		QueryID:     "checkup",
		Events: []SeedEvent{
			{
				Event: models.Event{
					ID: "checkup", Title: "Annual checkup", Category: "Health", StartDate: day("2024-02-01"),
					People:    []models.Person{{Name: "Dr. Okafor"}},
					Locations: []models.Location{{Name: "City Clinic"}},
				},
				Vector: []float64{1, 0, 0},
			},
			{
				Event: models.Event{
					ID: "followup", Title: "Follow-up blood test", Category: "Health", StartDate: day("2024-03-10"),
					People:    []models.Person{{Name: "Dr. Okafor"}},
					Locations: []models.Location{{Name: "City Clinic"}},
				},
				Vector: []float64{0.9, 0.43588989, 0},
			},
			{
				Event: models.Event{
					ID: "dinner", Title: "Dinner near the clinic", Category: "Social", StartDate: day("2024-06-20"),
					Locations: []models.Location{{Name: "City Clinic"}},
				},
				Vector: []float64{0.3, 0, 0.95393920},
			},
		},
		ExpectedNeighborIDs: []string{"followup"},
		ExpectedRelations: map[string][]models.RelationshipType{
			"followup": {models.RelationPerson, models.RelationLocation, models.RelationFollowUp, models.RelationThematic},
			"dinner":   {models.RelationLocation},
		},
	}
}

// AllScenarios returns every benchmark scenario in run order.
func AllScenarios() []BenchmarkScenario {
	return []BenchmarkScenario{
		GetTopicalRetrieval(),
		GetCausalChain(),
		GetEntityLinks(),
	}
}

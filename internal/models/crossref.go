// ABOUTME: Cross-reference models for typed relationships between events
// ABOUTME: Pairs are canonicalized so EventID1 < EventID2 to avoid reverse duplicates
package models

import "time"

// RelationshipType classifies the nature of a cross-reference.
type RelationshipType string

const (
	RelationCausal   RelationshipType = "causal"
	RelationThematic RelationshipType = "thematic"
	RelationTemporal RelationshipType = "temporal"
	RelationPerson   RelationshipType = "person"
	RelationLocation RelationshipType = "location"
	RelationFollowUp RelationshipType = "follow-up"
)

// AnalysisDetails records which signals contributed to a cross-reference.
type AnalysisDetails struct {
	Similarity       float64  `json:"similarity"`
	SharedTags       []string `json:"shared_tags,omitempty"`
	SharedPeople     []string `json:"shared_people,omitempty"`
	SharedLocations  []string `json:"shared_locations,omitempty"`
	DayGap           int      `json:"day_gap"`
	SimilarityWeight float64  `json:"similarity_weight"`
	EntityWeight     float64  `json:"entity_weight"`
	TemporalWeight   float64  `json:"temporal_weight"`
}

// CrossReference is a typed, scored relationship between two events.
type CrossReference struct {
	ReferenceID      string           `json:"reference_id"`
	EventID1         string           `json:"event_id_1"`
	EventID2         string           `json:"event_id_2"`
	RelationshipType RelationshipType `json:"relationship_type"`
	ConfidenceScore  float64          `json:"confidence_score"`
	Details          AnalysisDetails  `json:"details"`
	CreatedAt        time.Time        `json:"created_at"`
}

// CanonicalPair orders two event IDs lexically. Cross-references always
// store the smaller ID first so (A,B) and (B,A) produce the same edge.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// CrossReferenceReport is the aggregate detection result for one event.
// SkippedEventIDs marks candidates that had no embedding and were not
// classified (the report is incomplete with respect to them).
type CrossReferenceReport struct {
	References      []CrossReference `json:"references"`
	SkippedEventIDs []string         `json:"skipped_event_ids,omitempty"`
}

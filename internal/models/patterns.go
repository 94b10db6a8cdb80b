// ABOUTME: Pattern detection output models
// ABOUTME: Category patterns, event clusters, and era transitions are ephemeral
package models

import "time"

// CategoryPattern is a recurring or trending category within a window.
type CategoryPattern struct {
	Category    string    `json:"category"`
	EventCount  int       `json:"event_count"`
	FirstDate   time.Time `json:"first_date"`
	LastDate    time.Time `json:"last_date"`
	Trend       string    `json:"trend"` // "stable", "rising", "falling"
	Description string    `json:"description"`
}

// EventCluster is a group of mutually similar events.
type EventCluster struct {
	EventIDs    []string  `json:"event_ids"`
	EventCount  int       `json:"event_count"`
	FirstDate   time.Time `json:"first_date"`
	LastDate    time.Time `json:"last_date"`
	Description string    `json:"description"`
}

// EraTransition is a shift in dominant category across an era boundary.
type EraTransition struct {
	EraID          string    `json:"era_id"`
	EraName        string    `json:"era_name"`
	BoundaryDate   time.Time `json:"boundary_date"`
	CategoryBefore string    `json:"category_before"`
	CategoryAfter  string    `json:"category_after"`
	EventCount     int       `json:"event_count"`
	Description    string    `json:"description"`
}

// PatternReport bundles all pattern detection outputs for a window.
// Computed on demand, never persisted.
type PatternReport struct {
	CategoryPatterns []CategoryPattern `json:"category_patterns"`
	Clusters         []EventCluster    `json:"clusters"`
	EraTransitions   []EraTransition   `json:"era_transitions"`
}

// ABOUTME: Rule-based classification of event pairs into typed cross-references
// ABOUTME: Each rule fires independently and computes its own confidence
package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/models"
)

// CrossReferenceDetector classifies a similar event pair into zero or more
// typed relationships. Classification is a pure function of the two events,
// their similarity, and the configured thresholds; identical inputs always
// produce identical types and confidences.
type CrossReferenceDetector struct {
	cfg *config.Config
}

func NewCrossReferenceDetector(cfg *config.Config) *CrossReferenceDetector {
	return &CrossReferenceDetector{cfg: cfg}
}

// Classify evaluates every relationship rule for the pair. The returned
// references carry canonicalized event IDs and at most one entry per
// relationship type.
func (d *CrossReferenceDetector) Classify(a, b *models.Event, similarity float64) []models.CrossReference {
	// Order chronologically: rules that care about direction treat the
	// earlier event as the antecedent.
	first, second := a, b
	if second.StartDate.Before(first.StartDate) {
		first, second = second, first
	}
	dayGap := int(second.StartDate.Sub(first.StartDate).Hours() / 24)

	sharedTags := sharedNames(tagNames(first), tagNames(second))
	sharedPeople := sharedNames(personNames(first), personNames(second))
	sharedLocations := sharedNames(locationNames(first), locationNames(second))

	base := models.AnalysisDetails{
		Similarity:      similarity,
		SharedTags:      sharedTags,
		SharedPeople:    sharedPeople,
		SharedLocations: sharedLocations,
		DayGap:          dayGap,
	}

	var refs []models.CrossReference
	add := func(relType models.RelationshipType, confidence float64, details models.AnalysisDetails) {
		id1, id2 := models.CanonicalPair(a.ID, b.ID)
		refs = append(refs, models.CrossReference{
			ReferenceID:      uuid.NewString(),
			EventID1:         id1,
			EventID2:         id2,
			RelationshipType: relType,
			ConfidenceScore:  clamp01(confidence),
			Details:          details,
			CreatedAt:        time.Now().UTC(),
		})
	}

	simScore := clamp01(similarity)

	// Causal: a strong semantic link crossing life domains, with the
	// effect following the cause inside a bounded window.
	if similarity >= d.cfg.CausalThreshold &&
		dayGap > 0 && dayGap <= d.cfg.CausalWindowDays &&
		first.Category != second.Category {
		details := base
		details.SimilarityWeight = 0.7
		details.TemporalWeight = 0.3
		add(models.RelationCausal,
			0.7*simScore+0.3*closeness(dayGap, d.cfg.CausalWindowDays), details)
	}

	// Thematic: similar content sharing a category or at least one tag.
	if similarity >= d.cfg.SimilarityThreshold &&
		(first.Category == second.Category || len(sharedTags) > 0) {
		signal := 0.2 * float64(len(sharedTags))
		if first.Category == second.Category {
			signal += 0.6
		}
		if signal > 1 {
			signal = 1
		}
		details := base
		details.SimilarityWeight = 0.6
		details.EntityWeight = 0.4
		add(models.RelationThematic, 0.6*simScore+0.4*signal, details)
	}

	// Temporal: close in time regardless of semantic similarity.
	if dayGap <= d.cfg.TemporalWindowDays {
		details := base
		details.TemporalWeight = 1.0
		add(models.RelationTemporal, closeness(dayGap, d.cfg.TemporalWindowDays), details)
	}

	// Person / location: shared named entities, confidence scaled by how
	// semantically related the two events are.
	if len(sharedPeople) > 0 {
		details := base
		details.SimilarityWeight = 0.5
		details.EntityWeight = 0.5
		add(models.RelationPerson,
			0.5*simScore+0.5*entitySignal(len(sharedPeople)), details)
	}
	if len(sharedLocations) > 0 {
		details := base
		details.SimilarityWeight = 0.5
		details.EntityWeight = 0.5
		add(models.RelationLocation,
			0.5*simScore+0.5*entitySignal(len(sharedLocations)), details)
	}

	// Follow-up: a later chapter of the same thread — same category, same
	// primary participant or place, inside a narrower window than causal.
	if dayGap > 0 && dayGap <= d.cfg.FollowUpWindowDays &&
		first.Category == second.Category &&
		samePrimaryEntity(first, second) {
		details := base
		details.SimilarityWeight = 0.5
		details.TemporalWeight = 0.5
		add(models.RelationFollowUp,
			0.5*simScore+0.5*closeness(dayGap, d.cfg.FollowUpWindowDays), details)
	}

	return refs
}

// closeness maps a day gap onto (0,1]: zero gap scores 1.0, a gap at the
// window edge scores 0.1, linearly in between.
func closeness(dayGap, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	return 1.0 - 0.9*float64(dayGap)/float64(windowDays)
}

// entitySignal rewards additional shared entities with diminishing returns.
func entitySignal(shared int) float64 {
	s := 0.6 + 0.2*float64(shared-1)
	if s > 1 {
		s = 1
	}
	return s
}

func samePrimaryEntity(a, b *models.Event) bool {
	if p := a.PrimaryPerson(); p != "" && p == b.PrimaryPerson() {
		return true
	}
	if l := a.PrimaryLocation(); l != "" && l == b.PrimaryLocation() {
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func tagNames(e *models.Event) []string { return e.TagNames() }

func personNames(e *models.Event) []string {
	names := make([]string, len(e.People))
	for i, p := range e.People {
		names[i] = p.Name
	}
	return names
}

func locationNames(e *models.Event) []string {
	names := make([]string, len(e.Locations))
	for i, l := range e.Locations {
		names[i] = l.Name
	}
	return names
}

// sharedNames intersects two name lists preserving the first list's order.
func sharedNames(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[name] = true
	}
	var shared []string
	for _, name := range a {
		if inB[name] {
			shared = append(shared, name)
			inB[name] = false
		}
	}
	return shared
}

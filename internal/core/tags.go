// ABOUTME: Tag suggestion by analogy to a target event's nearest neighbors
// ABOUTME: Scores candidate tags by similarity-weighted frequency
package core

import (
	"fmt"
	"sort"

	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/models"
)

// TagSuggester proposes tags the target event does not yet carry, drawn
// from the tag sets of its nearest neighbors.
type TagSuggester struct {
	similarity *SimilarityEngine
	events     EventSource
	cfg        *config.Config
}

func NewTagSuggester(similarity *SimilarityEngine, events EventSource, cfg *config.Config) *TagSuggester {
	return &TagSuggester{similarity: similarity, events: events, cfg: cfg}
}

// SuggestTags ranks candidate tags by the summed similarity of the
// neighbors carrying them. Ties break alphabetically. No neighbors means
// no suggestions, not an error.
func (t *TagSuggester) SuggestTags(eventID string, maxSuggestions int) ([]models.TagSuggestion, error) {
	if maxSuggestions <= 0 {
		return []models.TagSuggestion{}, nil
	}

	target, err := t.events.GetByID(eventID)
	if err != nil {
		return nil, fmt.Errorf("load target event: %w", err)
	}
	existing := make(map[string]bool, len(target.Tags))
	for _, tag := range target.Tags {
		existing[tag.Name] = true
	}

	neighbors, err := t.similarity.FindSimilar(eventID, t.cfg.DefaultNeighbors, t.cfg.MinTagSimilarity)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []models.TagSuggestion{}, nil
	}

	weights := make(map[string]float64)
	sources := make(map[string][]string)
	var totalWeight float64
	for _, n := range neighbors {
		neighbor, err := t.events.GetByID(n.EventID)
		if err != nil {
			// A neighbor deleted between the scan and this lookup just
			// stops contributing.
			continue
		}
		totalWeight += n.SimilarityScore
		for _, tag := range neighbor.Tags {
			if existing[tag.Name] {
				continue
			}
			weights[tag.Name] += n.SimilarityScore
			sources[tag.Name] = append(sources[tag.Name], n.EventID)
		}
	}
	if totalWeight <= 0 {
		return []models.TagSuggestion{}, nil
	}

	suggestions := make([]models.TagSuggestion, 0, len(weights))
	for name, weight := range weights {
		suggestions = append(suggestions, models.TagSuggestion{
			TagName:        name,
			Confidence:     clamp01(weight / totalWeight),
			SourceEventIDs: sources[name],
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].TagName < suggestions[j].TagName
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

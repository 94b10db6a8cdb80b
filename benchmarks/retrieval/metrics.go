// ABOUTME: Deterministic retrieval-quality metrics for benchmark scenarios
// ABOUTME: Scores neighbor ranking and relationship recall against ground truth

package retrieval

import (
	"fmt"

	"github.com/reverie-journal/reverie/internal/models"
)

// MetricsCalculator scores engine output against scenario ground truth
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateRetrievalScore compares ranked neighbors against the expected
// list. The score averages recall (every expected neighbor retrieved)
// with order correctness (expected neighbors appear in expected relative
// order). A perfect 1.0 needs both.
func (m *MetricsCalculator) CalculateRetrievalScore(
	results []models.SimilarityResult,
	expectedIDs []string,
) (float64, string) {
	if len(expectedIDs) == 0 {
		return 1.0, "No retrieval expectations"
	}

	rank := make(map[string]int, len(results))
	for _, r := range results {
		rank[r.EventID] = r.Rank
	}

	found := 0
	missing := []string{}
	for _, id := range expectedIDs {
		if _, ok := rank[id]; ok {
			found++
		} else {
			missing = append(missing, id)
		}
	}
	recall := float64(found) / float64(len(expectedIDs))

	ordered := true
	prev := 0
	for _, id := range expectedIDs {
		r, ok := rank[id]
		if !ok {
			ordered = false
			break
		}
		if r < prev {
			ordered = false
			break
		}
		prev = r
	}

	orderScore := 0.0
	if ordered {
		orderScore = 1.0
	}
	score := (recall + orderScore) / 2.0

	if score == 1.0 {
		return 1.0, "Perfect retrieval - all expected neighbors in expected order"
	}
	return score, fmt.Sprintf(
		"Partial retrieval (recall %.2f, ordered %v) - missing: %v",
		recall, ordered, missing,
	)
}

// CalculateRelationScore computes the fraction of expected (event,
// relationship type) pairs that were detected. Extra detected edges do
// not count against the score; the ground truth lists what MUST appear,
// not everything that may.
func (m *MetricsCalculator) CalculateRelationScore(
	refs []models.CrossReference,
	queryID string,
	expected map[string][]models.RelationshipType,
) (float64, string) {
	total := 0
	for _, types := range expected {
		total += len(types)
	}
	if total == 0 {
		return 1.0, "No relationship expectations"
	}

	detected := make(map[string]bool)
	for _, ref := range refs {
		other := ref.EventID1
		if other == queryID {
			other = ref.EventID2
		}
		detected[other+"/"+string(ref.RelationshipType)] = true
	}

	found := 0
	missing := []string{}
	for otherID, types := range expected {
		for _, relType := range types {
			key := otherID + "/" + string(relType)
			if detected[key] {
				found++
			} else {
				missing = append(missing, key)
			}
		}
	}

	score := float64(found) / float64(total)
	if score == 1.0 {
		return 1.0, "All expected relationships detected"
	}
	return score, fmt.Sprintf("Missing relationships: %v", missing)
}

// EvaluateScenario combines both metrics into a test result. A pass
// requires 0.9 on each metric.
func (m *MetricsCalculator) EvaluateScenario(
	scenario BenchmarkScenario,
	neighbors []models.SimilarityResult,
	refs []models.CrossReference,
) TestResult {
	retrieval, retrievalDetail := m.CalculateRetrievalScore(neighbors, scenario.ExpectedNeighborIDs)
	relation, relationDetail := m.CalculateRelationScore(refs, scenario.QueryID, scenario.ExpectedRelations)

	status := "FAIL"
	if retrieval >= 0.9 && relation >= 0.9 {
		status = "PASS"
	}

	return TestResult{
		ScenarioID:     scenario.ID,
		ScenarioName:   scenario.Name,
		RetrievalScore: retrieval,
		RelationScore:  relation,
		OverallScore:   (retrieval + relation) / 2.0,
		Status:         status,
		Details: map[string]interface{}{
			"retrieval_detail": retrievalDetail,
			"relation_detail":  relationDetail,
			"neighbors":        len(neighbors),
			"references":       len(refs),
		},
	}
}

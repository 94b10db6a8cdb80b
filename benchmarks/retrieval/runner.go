// ABOUTME: Benchmark runner wiring scenarios through a real engine instance
// ABOUTME: Uses in-memory SQLite and canned vectors so no API key is needed

package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/reverie-journal/reverie/internal/config"
	"github.com/reverie-journal/reverie/internal/core"
	"github.com/reverie-journal/reverie/internal/storage/sqlite"
)

// staticProvider returns pre-assigned vectors keyed by embedding text.
// Deterministic, so benchmark runs are reproducible without network access.
type staticProvider struct {
	vectors map[string][]float64
	dim     int
}

func newStaticProvider(events []SeedEvent) *staticProvider {
	p := &staticProvider{vectors: make(map[string][]float64)}
	for i := range events {
		vec := events[i].Vector
		p.vectors[events[i].Event.EmbeddingText()] = vec
		if p.dim == 0 {
			p.dim = len(vec)
		}
	}
	return p
}

func (p *staticProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	vec, ok := p.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no canned vector for text %q", text)
	}
	return vec, nil
}

func (p *staticProvider) Dimension() int    { return p.dim }
func (p *staticProvider) ModelName() string { return "static-benchmark-v1" }
func (p *staticProvider) Name() string      { return "static" }

// benchmarkConfig pins every threshold so results do not drift with the
// caller's environment.
func benchmarkConfig() *config.Config {
	return &config.Config{
		Backend:             "sqlite",
		Provider:            "local",
		SimilarityThreshold: 0.5,
		DefaultNeighbors:    10,
		MinTagSimilarity:    0.3,
		CausalThreshold:     0.5,
		CausalWindowDays:    365,
		TemporalWindowDays:  30,
		FollowUpWindowDays:  90,
		ClusterThreshold:    0.75,
		MinPatternSupport:   3,
	}
}

// BenchmarkRunner executes scenarios end to end: seed events, embed them,
// retrieve neighbors, classify relationships, score against ground truth.
type BenchmarkRunner struct {
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a runner
func NewBenchmarkRunner(verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}
}

// RunScenario builds a fresh engine for the scenario and evaluates it
func (r *BenchmarkRunner) RunScenario(ctx context.Context, scenario BenchmarkScenario) TestResult {
	if r.verbose {
		fmt.Printf("\n--- Scenario: %s ---\n", scenario.Name)
		fmt.Printf("Description: %s\n", scenario.Description)
	}

	result := TestResult{
		ScenarioID:   scenario.ID,
		ScenarioName: scenario.Name,
		Status:       "ERROR",
	}

	db, err := sqlite.OpenInMemory()
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("open database: %v", err)
		return result
	}
	defer db.Close()

	events := sqlite.NewEventStore(db)
	vectors := sqlite.NewEmbeddingStore(db)
	refs := sqlite.NewCrossRefStore(db)

	for i := range scenario.Events {
		if err := events.Save(&scenario.Events[i].Event); err != nil {
			result.ErrorMessage = fmt.Sprintf("seed event %s: %v", scenario.Events[i].Event.ID, err)
			return result
		}
	}

	engine := core.NewEngine(core.Deps{
		Config:    benchmarkConfig(),
		Events:    events,
		Eras:      events,
		Vectors:   vectors,
		Provider:  newStaticProvider(scenario.Events),
		CrossRefs: refs,
	})

	batch, err := engine.GenerateAll(ctx, false)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("generate embeddings: %v", err)
		return result
	}
	if batch.FailedCount > 0 {
		result.ErrorMessage = fmt.Sprintf("%d events failed to embed", batch.FailedCount)
		return result
	}

	neighbors, err := engine.FindSimilar(scenario.QueryID, 0, -2)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("find similar: %v", err)
		return result
	}

	report, err := engine.DetectCrossReferences(ctx, scenario.QueryID)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("detect cross-references: %v", err)
		return result
	}

	result = r.metrics.EvaluateScenario(scenario, neighbors, report.References)

	if r.verbose {
		fmt.Printf("Retrieval score: %.2f\n", result.RetrievalScore)
		fmt.Printf("Relation score:  %.2f\n", result.RelationScore)
		fmt.Printf("Status: %s\n", result.Status)
	}

	return result
}

// RunAll executes every scenario and returns the results
func (r *BenchmarkRunner) RunAll(ctx context.Context) []TestResult {
	scenarios := AllScenarios()
	results := make([]TestResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		results = append(results, r.RunScenario(ctx, scenario))
	}
	return results
}

// ExportResults writes results as indented JSON
func ExportResults(results []TestResult, path string) error {
	report := struct {
		GeneratedAt time.Time    `json:"generated_at"`
		Results     []TestResult `json:"results"`
	}{
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Summarize prints a pass/fail table and returns the failure count
func Summarize(results []TestResult) int {
	failures := 0
	fmt.Println("\n=== Benchmark Summary ===")
	for _, res := range results {
		marker := "✓"
		if res.Status != "PASS" {
			marker = "✗"
			failures++
		}
		if res.Status == "ERROR" {
			fmt.Printf("%s %-24s ERROR: %s\n", marker, res.ScenarioName, res.ErrorMessage)
			continue
		}
		fmt.Printf("%s %-24s retrieval=%.2f relations=%.2f overall=%.2f\n",
			marker, res.ScenarioName, res.RetrievalScore, res.RelationScore, res.OverallScore)
	}
	fmt.Printf("\n%d/%d scenarios passed\n", len(results)-failures, len(results))
	return failures
}

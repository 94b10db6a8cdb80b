// ABOUTME: CLI entry point for the retrieval-quality benchmark suite
// ABOUTME: Runs deterministic scenarios against a real engine and reports scores

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/reverie-journal/reverie/benchmarks/retrieval"
)

func main() {
	var (
		scenarioID = flag.String("scenario", "", "Run a single scenario by ID (topical_retrieval, causal_chain, entity_links)")
		output     = flag.String("output", "", "Write results to a JSON file")
		verbose    = flag.Bool("verbose", false, "Print per-scenario detail")
	)
	flag.Parse()

	fmt.Println("=== Reverie Retrieval Benchmark ===")
	fmt.Println("Deterministic scenarios, no API key required")

	ctx := context.Background()
	runner := retrieval.NewBenchmarkRunner(*verbose)

	var results []retrieval.TestResult
	if *scenarioID != "" {
		scenario, ok := findScenario(*scenarioID)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown scenario %q\n", *scenarioID)
			os.Exit(1)
		}
		results = []retrieval.TestResult{runner.RunScenario(ctx, scenario)}
	} else {
		results = runner.RunAll(ctx)
	}

	failures := retrieval.Summarize(results)

	if *output != "" {
		if err := retrieval.ExportResults(results, *output); err != nil {
			fmt.Fprintf(os.Stderr, "export results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", *output)
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func findScenario(id string) (retrieval.BenchmarkScenario, bool) {
	for _, scenario := range retrieval.AllScenarios() {
		if scenario.ID == id {
			return scenario, true
		}
	}
	return retrieval.BenchmarkScenario{}, false
}

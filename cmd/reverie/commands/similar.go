// ABOUTME: CLI command for KNN similarity search from an event
// ABOUTME: Supports table and JSON output
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/models"
)

var (
	similarLimit     int
	similarThreshold float64
)

// NewSimilarCmd creates similar command
func NewSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <event-id>",
		Short: "Find events similar to the given event",
		Long: `Find events semantically similar to the given event, ranked by
cosine similarity of their embeddings.

Examples:
  reverie similar evt_abc123
  reverie similar --limit 5 evt_abc123
  reverie similar --threshold 0.7 --format json evt_abc123`,
		Args: cobra.ExactArgs(1),
		RunE: runSimilar,
	}

	cmd.Flags().IntVar(&similarLimit, "limit", 10, "Maximum results to return")
	cmd.Flags().Float64Var(&similarThreshold, "threshold", -2, "Minimum similarity score (default: configured threshold)")

	return cmd
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(similarLimit, "limit"); err != nil {
		return err
	}

	engine, events, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	eventID := args[0]
	results, err := engine.FindSimilar(eventID, similarLimit, similarThreshold)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("event %s has no embedding; run 'reverie embed' first", eventID)
		}
		return fmt.Errorf("similarity search: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No similar events found for %s\n", eventID)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tSCORE\tEVENT ID\tTITLE\tDATE\n")
	fmt.Fprintf(w, "----\t-----\t--------\t-----\t----\n")
	for _, r := range results {
		title, eventDate := "", ""
		if event, err := events.GetByID(r.EventID); err == nil {
			title = event.Title
			eventDate = event.StartDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\t%s\n",
			r.Rank, r.SimilarityScore, truncate(r.EventID, 25), truncate(title, 40), eventDate)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d similar event(s)\n", len(results))
	}
	return nil
}

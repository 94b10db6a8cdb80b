// ABOUTME: CLI command to detect and display cross-references for an event
// ABOUTME: Replaces the event's stored references with a fresh classification
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/models"
)

// NewCrossRefsCmd creates crossrefs command
func NewCrossRefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crossrefs <event-id>",
		Short: "Detect typed relationships for an event",
		Long: `Classify the relationships between the given event and every other
embedded event: causal, thematic, temporal, person, location, follow-up.
The stored references for the event are replaced with the fresh result.

Examples:
  reverie crossrefs evt_abc123
  reverie crossrefs --format json evt_abc123`,
		Args: cobra.ExactArgs(1),
		RunE: runCrossRefs,
	}

	return cmd
}

func runCrossRefs(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	eventID := args[0]
	report, err := engine.DetectCrossReferences(cmd.Context(), eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("event %s not found or not embedded; run 'reverie embed' first", eventID)
		}
		return fmt.Errorf("cross-reference detection: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(report.References) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No cross-references found for %s\n", eventID)
		}
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "TYPE\tCONFIDENCE\tOTHER EVENT\tDAY GAP\n")
		fmt.Fprintf(w, "----\t----------\t-----------\t-------\n")
		for _, ref := range report.References {
			other := ref.EventID1
			if other == eventID {
				other = ref.EventID2
			}
			fmt.Fprintf(w, "%s\t%.3f\t%s\t%d\n",
				ref.RelationshipType, ref.ConfidenceScore, truncate(other, 25), ref.Details.DayGap)
		}
		w.Flush()
	}

	if len(report.SkippedEventIDs) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d event(s) skipped (no embedding): run 'reverie embed' to include them\n",
			len(report.SkippedEventIDs))
	}
	return nil
}

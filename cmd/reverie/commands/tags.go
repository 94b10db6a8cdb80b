// ABOUTME: CLI command to suggest tags for an event
// ABOUTME: Ranks candidates by similarity-weighted neighbor tag frequency
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/models"
)

var tagsMax int

// NewTagsCmd creates tags command
func NewTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags <event-id>",
		Short: "Suggest tags for an event",
		Long: `Suggest tags for an event based on the tags its most similar
events carry, weighted by similarity. Tags already on the event are
never suggested.

Examples:
  reverie tags evt_abc123
  reverie tags --max 3 evt_abc123`,
		Args: cobra.ExactArgs(1),
		RunE: runTags,
	}

	cmd.Flags().IntVar(&tagsMax, "max", 10, "Maximum suggestions to return")

	return cmd
}

func runTags(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(tagsMax, "max"); err != nil {
		return err
	}

	engine, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	eventID := args[0]
	suggestions, err := engine.SuggestTags(eventID, tagsMax)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("event %s not found or not embedded; run 'reverie embed' first", eventID)
		}
		return fmt.Errorf("tag suggestion: %w", err)
	}

	if len(suggestions) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No tag suggestions for %s\n", eventID)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(suggestions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TAG\tCONFIDENCE\tSOURCES\n")
	fmt.Fprintf(w, "---\t----------\t-------\n")
	for _, s := range suggestions {
		fmt.Fprintf(w, "%s\t%.3f\t%d event(s)\n", s.TagName, s.Confidence, len(s.SourceEventIDs))
	}
	w.Flush()
	return nil
}

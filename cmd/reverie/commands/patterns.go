// ABOUTME: CLI command to mine patterns over a date window
// ABOUTME: Reports recurring categories, event clusters, and era transitions
package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	patternsFrom string
	patternsTo   string
)

// NewPatternsCmd creates patterns command
func NewPatternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Mine recurring patterns across your history",
		Long: `Mine the journal for recurring categories, clusters of closely
related events, and category shifts across era boundaries. Bounds
default to the full history when omitted.

Examples:
  reverie patterns
  reverie patterns --from 2024-01-01 --to 2024-12-31
  reverie patterns --format json`,
		Args: cobra.NoArgs,
		RunE: runPatterns,
	}

	cmd.Flags().StringVar(&patternsFrom, "from", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&patternsTo, "to", "", "Window end (YYYY-MM-DD)")

	return cmd
}

func runPatterns(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	var from, to *time.Time
	if patternsFrom != "" {
		t, err := parseDateFlag(patternsFrom, "--from")
		if err != nil {
			return err
		}
		from = &t
	}
	if patternsTo != "" {
		t, err := parseDateFlag(patternsTo, "--to")
		if err != nil {
			return err
		}
		to = &t
	}

	report, err := engine.DetectPatterns(cmd.Context(), from, to)
	if err != nil {
		return fmt.Errorf("pattern detection: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	out := cmd.OutOrStdout()
	if len(report.CategoryPatterns) > 0 {
		fmt.Fprintln(out, "Category patterns:")
		for _, p := range report.CategoryPatterns {
			fmt.Fprintf(out, "  %s\n", p.Description)
		}
	}
	if len(report.Clusters) > 0 {
		fmt.Fprintln(out, "Clusters:")
		for _, c := range report.Clusters {
			fmt.Fprintf(out, "  %s\n", c.Description)
		}
	}
	if len(report.EraTransitions) > 0 {
		fmt.Fprintln(out, "Era transitions:")
		for _, tr := range report.EraTransitions {
			fmt.Fprintf(out, "  %s\n", tr.Description)
		}
	}
	if len(report.CategoryPatterns) == 0 && len(report.Clusters) == 0 && len(report.EraTransitions) == 0 && !quiet {
		fmt.Fprintln(out, "No patterns found in the given window")
	}
	return nil
}

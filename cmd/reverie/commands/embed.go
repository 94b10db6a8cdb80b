// ABOUTME: CLI command to batch-generate embeddings
// ABOUTME: Idempotent; re-runs only touch missing or stale events
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/models"
)

var embedForce bool

// NewEmbedCmd creates embed command
func NewEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Generate embeddings for all events",
		Long: `Generate embeddings for every event missing one or whose content
changed since it was last embedded. Safe to re-run; a failed run can be
retried and only the failed events are attempted again.

Examples:
  reverie embed
  reverie embed --force`,
		Args: cobra.NoArgs,
		RunE: runEmbed,
	}

	cmd.Flags().BoolVar(&embedForce, "force", false, "Re-embed everything regardless of staleness")

	return cmd
}

func runEmbed(cmd *cobra.Command, args []string) error {
	engine, _, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := engine.GenerateAll(cmd.Context(), embedForce)
	if err != nil {
		if errors.Is(err, models.ErrBusy) {
			return fmt.Errorf("an embedding job is already running")
		}
		return fmt.Errorf("batch embedding: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Embedded %d event(s), %d failed\n",
			result.SucceededCount, result.FailedCount)
	}
	for _, be := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", be.EventID, be.Message)
	}
	if result.FailedCount > 0 {
		return fmt.Errorf("%d event(s) failed to embed", result.FailedCount)
	}
	return nil
}

// ABOUTME: CLI command to clear all stored embeddings for the active provider
// ABOUTME: Irreversible; requires --confirm like other destructive commands
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/models"
)

// NewClearCmd creates clear command
func NewClearCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all embeddings for the active provider",
		Long: `Delete every stored embedding for the active provider.

WARNING: This is irreversible. Events themselves are untouched; run
'reverie embed' afterwards to rebuild from scratch. Use this when
switching embedding providers or models.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), "This will delete ALL embeddings for the active provider!")
				fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
				return nil
			}

			engine, _, cleanup, err := openEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := engine.ClearAll(); err != nil {
				if errors.Is(err, models.ErrBusy) {
					return fmt.Errorf("an embedding job is running; try again when it finishes")
				}
				return fmt.Errorf("clearing embeddings: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared embeddings for provider %s\n", engine.ProviderName())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the clear operation")

	return cmd
}

// ABOUTME: Sync commands for Charm cloud embedding synchronization
// ABOUTME: Provides status and forced sync for the charm backend
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/charm"
	"github.com/reverie-journal/reverie/internal/config"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

With REVERIE_BACKEND=charm, embeddings sync automatically across
devices linked to the same Charm account via SSH keys.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			if cfg.Backend != "charm" {
				fmt.Fprintln(out, "Backend: sqlite (local only)")
				fmt.Fprintln(out, "Set REVERIE_BACKEND=charm to enable cloud sync")
				return nil
			}

			fmt.Fprintln(out, "Backend: charm")
			fmt.Fprintf(out, "Host: %s\n", cfg.CharmHost)
			fmt.Fprintf(out, "Database: %s\n", cfg.CharmDBName)
			fmt.Fprintf(out, "Auto-sync: %v\n", cfg.AutoSync)
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Force immediate sync with Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if cfg.Backend != "charm" {
				return fmt.Errorf("sync requires REVERIE_BACKEND=charm")
			}

			client, err := charm.NewClient(&charm.Config{
				Host:     cfg.CharmHost,
				DBName:   cfg.CharmDBName,
				AutoSync: false,
			})
			if err != nil {
				return fmt.Errorf("connecting to Charm: %w", err)
			}
			defer client.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Syncing...")
			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete")
			return nil
		},
	}
}

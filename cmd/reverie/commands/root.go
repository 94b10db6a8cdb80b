// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all reverie subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ███████╗██╗   ██╗███████╗██████╗ ██╗███████╗
██╔══██╗██╔════╝██║   ██║██╔════╝██╔══██╗██║██╔════╝
██████╔╝█████╗  ██║   ██║█████╗  ██████╔╝██║█████╗
██╔══██╗██╔══╝  ╚██╗ ██╔╝██╔══╝  ██╔══██╗██║██╔══╝
██║  ██║███████╗ ╚████╔╝ ███████╗██║  ██║██║███████╗
╚═╝  ╚═╝╚══════╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═╝╚══════╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverie",
		Short: "Retrieval and cross-referencing engine for your journal",
		Long: banner + `
Reverie turns journaled life events into vector embeddings, finds
semantically related events, classifies how they relate (causal,
thematic, temporal, person, location, follow-up), mines recurring
patterns across your history, and suggests tags by analogy.

Events live in a local SQLite database; embeddings can optionally
sync across devices through Charm cloud.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewEmbedCmd())
	cmd.AddCommand(NewSimilarCmd())
	cmd.AddCommand(NewCrossRefsCmd())
	cmd.AddCommand(NewPatternsCmd())
	cmd.AddCommand(NewTagsCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// ABOUTME: CLI command to export the timeline to YAML or Markdown
// ABOUTME: Writes events, eras, and stored cross-references to a file

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/storage/sqlite"
)

// NewExportCmd creates export command
func NewExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export the timeline to YAML or Markdown",
		Long: `Write all eras, events, and stored cross-references to a file.

The format is inferred from the file extension (.yaml, .yml, .md) unless
--export-format is given.

Examples:
  reverie export timeline.yaml
  reverie export --export-format markdown timeline.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "export-format", "", "Output format: yaml or markdown (default: by extension)")
	return cmd
}

func runExport(cmd *cobra.Command, outputPath, format string) error {
	if format == "" {
		switch {
		case strings.HasSuffix(outputPath, ".md"):
			format = "markdown"
		default:
			format = "yaml"
		}
	}

	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	exporter := sqlite.NewExporter(sqlite.NewEventStore(db), sqlite.NewCrossRefStore(db))

	switch format {
	case "yaml":
		err = exporter.ExportToYAML(outputPath)
	case "markdown":
		err = exporter.ExportToMarkdown(outputPath)
	default:
		return fmt.Errorf("unknown format %q (yaml or markdown)", format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported timeline to %s (%s)\n", outputPath, format)
	}
	return nil
}

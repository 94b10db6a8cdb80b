// ABOUTME: Tests for subcommand structure and flags
// ABOUTME: Verifies usage strings, flag defaults, and arg validators

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewAddCmd(t *testing.T) {
	cmd := NewAddCmd()

	if cmd.Use != "add <title>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "add <title>")
	}

	tests := []struct {
		flagName string
		defValue string
	}{
		{"date", ""},
		{"end-date", ""},
		{"category", ""},
		{"description", ""},
		{"tags", "[]"},
		{"people", "[]"},
		{"locations", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestNewEmbedCmd(t *testing.T) {
	cmd := NewEmbedCmd()

	if cmd.Use != "embed" {
		t.Errorf("Use = %q, want %q", cmd.Use, "embed")
	}
	flag := cmd.Flags().Lookup("force")
	if flag == nil {
		t.Fatal("--force flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--force default = %q, want false", flag.DefValue)
	}
}

func TestNewSimilarCmd(t *testing.T) {
	cmd := NewSimilarCmd()

	if cmd.Use != "similar <event-id>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "similar <event-id>")
	}
	if cmd.Flags().Lookup("limit") == nil {
		t.Error("--limit flag not found")
	}
	if cmd.Flags().Lookup("threshold") == nil {
		t.Error("--threshold flag not found")
	}
}

func TestNewPatternsCmd(t *testing.T) {
	cmd := NewPatternsCmd()

	if cmd.Use != "patterns" {
		t.Errorf("Use = %q, want %q", cmd.Use, "patterns")
	}
	if cmd.Flags().Lookup("from") == nil {
		t.Error("--from flag not found")
	}
	if cmd.Flags().Lookup("to") == nil {
		t.Error("--to flag not found")
	}
}

func TestNewTagsCmd(t *testing.T) {
	cmd := NewTagsCmd()

	if cmd.Use != "tags <event-id>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "tags <event-id>")
	}
	flag := cmd.Flags().Lookup("max")
	if flag == nil {
		t.Fatal("--max flag not found")
	}
	if flag.DefValue != "10" {
		t.Errorf("--max default = %q, want 10", flag.DefValue)
	}
}

func TestClearCmd_RequiresConfirm(t *testing.T) {
	cmd := NewClearCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() without --confirm error = %v", err)
	}
	if !strings.Contains(output.String(), "--confirm") {
		t.Error("clear without --confirm should instruct the user to pass --confirm")
	}
}

func TestNewCrossRefsCmd(t *testing.T) {
	cmd := NewCrossRefsCmd()

	if cmd.Use != "crossrefs <event-id>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "crossrefs <event-id>")
	}
	if cmd.Args == nil {
		t.Error("Args validator should be set")
	}
}

func TestNewExportCmd(t *testing.T) {
	cmd := NewExportCmd()

	if cmd.Use != "export <output-file>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "export <output-file>")
	}
	flag := cmd.Flags().Lookup("export-format")
	if flag == nil {
		t.Fatal("--export-format flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--export-format default = %q, want empty", flag.DefValue)
	}
}

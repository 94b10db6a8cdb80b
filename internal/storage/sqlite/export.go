// ABOUTME: Export functionality for timeline data
// ABOUTME: Supports YAML and Markdown export formats

package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version         string            `yaml:"version" json:"version"`
	ExportedAt      string            `yaml:"exported_at" json:"exported_at"`
	Tool            string            `yaml:"tool" json:"tool"`
	Eras            []ExportEra       `yaml:"eras,omitempty" json:"eras,omitempty"`
	Events          []ExportEvent     `yaml:"events,omitempty" json:"events,omitempty"`
	CrossReferences []ExportReference `yaml:"cross_references,omitempty" json:"cross_references,omitempty"`
}

// ExportEra represents a named period for export
type ExportEra struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	StartDate string `yaml:"start_date" json:"start_date"`
	EndDate   string `yaml:"end_date,omitempty" json:"end_date,omitempty"`
}

// ExportEvent represents a timeline event for export
type ExportEvent struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string   `yaml:"category,omitempty" json:"category,omitempty"`
	StartDate   string   `yaml:"start_date" json:"start_date"`
	EndDate     string   `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	EraID       string   `yaml:"era_id,omitempty" json:"era_id,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	People      []string `yaml:"people,omitempty" json:"people,omitempty"`
	Locations   []string `yaml:"locations,omitempty" json:"locations,omitempty"`
}

// ExportReference represents a detected relationship for export
type ExportReference struct {
	EventID1   string  `yaml:"event_id_1" json:"event_id_1"`
	EventID2   string  `yaml:"event_id_2" json:"event_id_2"`
	Type       string  `yaml:"type" json:"type"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
	DayGap     int     `yaml:"day_gap" json:"day_gap"`
}

// Exporter pulls the full timeline out of the stores
type Exporter struct {
	events *EventStore
	refs   *CrossRefStore
}

// NewExporter creates an Exporter over the given stores
func NewExporter(events *EventStore, refs *CrossRefStore) *Exporter {
	return &Exporter{events: events, refs: refs}
}

// Export collects all eras, events, and cross-references
func (e *Exporter) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "reverie",
	}

	eras, err := e.events.ListEras()
	if err != nil {
		return nil, fmt.Errorf("failed to list eras: %w", err)
	}
	for _, era := range eras {
		data.Eras = append(data.Eras, ExportEra{
			ID:        era.ID,
			Name:      era.Name,
			StartDate: era.StartDate.Format("2006-01-02"),
			EndDate:   formatOptionalDate(era.EndDate),
		})
	}

	events, err := e.events.List(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	// Each pair appears once per type; collect per event and dedupe on
	// the canonical edge key.
	seen := make(map[string]bool)

	for i := range events {
		event := &events[i]
		data.Events = append(data.Events, ExportEvent{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Category:    event.Category,
			StartDate:   event.StartDate.Format("2006-01-02"),
			EndDate:     formatOptionalDate(event.EndDate),
			EraID:       event.EraID,
			Tags:        entityNames(len(event.Tags), func(j int) string { return event.Tags[j].Name }),
			People:      entityNames(len(event.People), func(j int) string { return event.People[j].Name }),
			Locations:   entityNames(len(event.Locations), func(j int) string { return event.Locations[j].Name }),
		})

		refs, err := e.refs.GetForEvent(event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list cross-references for %s: %w", event.ID, err)
		}
		for _, ref := range refs {
			key := ref.EventID1 + "/" + ref.EventID2 + "/" + string(ref.RelationshipType)
			if seen[key] {
				continue
			}
			seen[key] = true
			data.CrossReferences = append(data.CrossReferences, ExportReference{
				EventID1:   ref.EventID1,
				EventID2:   ref.EventID2,
				Type:       string(ref.RelationshipType),
				Confidence: ref.ConfidenceScore,
				DayGap:     ref.Details.DayGap,
			})
		}
	}

	return data, nil
}

// ExportToYAML exports data to a YAML file
func (e *Exporter) ExportToYAML(outputPath string) error {
	data, err := e.Export()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// ExportToMarkdown exports data to a Markdown file
func (e *Exporter) ExportToMarkdown(outputPath string) error {
	data, err := e.Export()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, _ = fmt.Fprintf(file, "# Timeline Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Eras) > 0 {
		_, _ = fmt.Fprintln(file, "## Eras")
		_, _ = fmt.Fprintln(file)
		for _, era := range data.Eras {
			end := era.EndDate
			if end == "" {
				end = "present"
			}
			_, _ = fmt.Fprintf(file, "- **%s** (%s to %s)\n", era.Name, era.StartDate, end)
		}
		_, _ = fmt.Fprintln(file)
	}

	if len(data.Events) > 0 {
		_, _ = fmt.Fprintln(file, "## Events")
		_, _ = fmt.Fprintln(file)
		for _, event := range data.Events {
			_, _ = fmt.Fprintf(file, "### %s (%s)\n\n", event.Title, event.StartDate)
			if event.Category != "" {
				_, _ = fmt.Fprintf(file, "*Category: %s*\n\n", event.Category)
			}
			if event.Description != "" {
				_, _ = fmt.Fprintf(file, "%s\n\n", event.Description)
			}
			if len(event.Tags) > 0 {
				_, _ = fmt.Fprintf(file, "*Tags: %s*\n\n", strings.Join(event.Tags, ", "))
			}
			if len(event.People) > 0 {
				_, _ = fmt.Fprintf(file, "*People: %s*\n\n", strings.Join(event.People, ", "))
			}
			if len(event.Locations) > 0 {
				_, _ = fmt.Fprintf(file, "*Locations: %s*\n\n", strings.Join(event.Locations, ", "))
			}
			_, _ = fmt.Fprintln(file, "---")
			_, _ = fmt.Fprintln(file)
		}
	}

	if len(data.CrossReferences) > 0 {
		_, _ = fmt.Fprintln(file, "## Cross-References")
		_, _ = fmt.Fprintln(file)
		_, _ = fmt.Fprintln(file, "| Event 1 | Event 2 | Type | Confidence | Day Gap |")
		_, _ = fmt.Fprintln(file, "|---------|---------|------|------------|---------|")
		for _, ref := range data.CrossReferences {
			_, _ = fmt.Fprintf(file, "| %s | %s | %s | %.2f | %d |\n",
				ref.EventID1, ref.EventID2, ref.Type, ref.Confidence, ref.DayGap)
		}
		_, _ = fmt.Fprintln(file)
	}

	return nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func entityNames(n int, name func(int) string) []string {
	if n == 0 {
		return nil
	}
	names := make([]string, n)
	for i := range names {
		names[i] = name(i)
	}
	return names
}

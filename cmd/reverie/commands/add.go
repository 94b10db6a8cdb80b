// ABOUTME: CLI command to add new journal events
// ABOUTME: Stores the event and embeds it in one step
package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/reverie-journal/reverie/internal/models"
)

var (
	addDate        string
	addEndDate     string
	addCategory    string
	addDescription string
	addTags        []string
	addPeople      []string
	addLocations   []string
)

// NewAddCmd creates add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new journal event",
		Long: `Add a new journal event and embed it for retrieval.

Examples:
  reverie add "Moved to Berlin" --date 2024-03-15 --category Life
  reverie add "Dinner with Maya" --date 2024-04-02 --people Maya --locations "Cafe Anna"
  reverie add "Started learning Go" --date 2024-05-01 --tags programming,career`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addDate, "date", "", "Event date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&addEndDate, "end-date", "", "Event end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&addCategory, "category", "", "Life category (e.g. Work, Travel, Health)")
	cmd.Flags().StringVar(&addDescription, "description", "", "Longer free-text description")
	cmd.Flags().StringSliceVar(&addTags, "tags", []string{}, "Tags (comma-separated)")
	cmd.Flags().StringSliceVar(&addPeople, "people", []string{}, "People involved, primary first")
	cmd.Flags().StringSliceVar(&addLocations, "locations", []string{}, "Places involved, primary first")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	startDate, err := parseDateFlag(addDate, "--date")
	if err != nil {
		return err
	}

	engine, events, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	now := time.Now().UTC()
	event := &models.Event{
		ID:          "evt_" + uuid.NewString(),
		Title:       args[0],
		Description: addDescription,
		Category:    addCategory,
		StartDate:   startDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if addEndDate != "" {
		endDate, err := parseDateFlag(addEndDate, "--end-date")
		if err != nil {
			return err
		}
		event.EndDate = &endDate
	}
	for _, name := range addTags {
		event.Tags = append(event.Tags, models.Tag{Name: name})
	}
	for _, name := range addPeople {
		event.People = append(event.People, models.Person{Name: name})
	}
	for _, name := range addLocations {
		event.Locations = append(event.Locations, models.Location{Name: name})
	}

	if err := events.Save(event); err != nil {
		return fmt.Errorf("storing event: %w", err)
	}

	if _, err := engine.GenerateForEvent(cmd.Context(), event.ID, false); err != nil {
		// The event is stored; embedding can be retried with `reverie embed`.
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: embedding failed (run 'reverie embed' later): %v\n", err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added event %s\n", event.ID)
	}
	return nil
}

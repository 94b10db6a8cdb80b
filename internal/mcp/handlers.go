// ABOUTME: MCP tool handler implementations for the retrieval server
// ABOUTME: Each handler validates arguments, calls the engine, and returns JSON
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/reverie-journal/reverie/internal/core"
	"github.com/reverie-journal/reverie/internal/models"
)

// EventWriter persists events coming in over MCP. Satisfied by the SQLite
// event store.
type EventWriter interface {
	Save(event *models.Event) error
	GetByID(id string) (*models.Event, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *core.Engine
	events EventWriter
}

// StoreEvent handles the store_event tool. The event is persisted and
// embedded in one step; an embedding failure still stores the event.
func (h *Handlers) StoreEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	startDate, err := parseDate(request.GetString("start_date", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start_date: %v", err)), nil
	}

	now := time.Now().UTC()
	event := &models.Event{
		ID:          "evt_" + uuid.NewString(),
		Title:       title,
		Description: request.GetString("description", ""),
		Category:    request.GetString("category", ""),
		StartDate:   startDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, name := range argStrings(request, "tags") {
		event.Tags = append(event.Tags, models.Tag{Name: name})
	}
	for _, name := range argStrings(request, "people") {
		event.People = append(event.People, models.Person{Name: name})
	}
	for _, name := range argStrings(request, "locations") {
		event.Locations = append(event.Locations, models.Location{Name: name})
	}

	if err := h.events.Save(event); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store event: %v", err)), nil
	}

	embedded := true
	if _, err := h.engine.GenerateForEvent(ctx, event.ID, false); err != nil {
		embedded = false
	}

	return jsonResult(map[string]interface{}{
		"event_id": event.ID,
		"embedded": embedded,
	})
}

// GenerateEmbeddings handles the generate_embeddings tool
func (h *Handlers) GenerateEmbeddings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	force := request.GetBool("force", false)

	result, err := h.engine.GenerateAll(ctx, force)
	if err != nil {
		if errors.Is(err, models.ErrBusy) {
			return mcp.NewToolResultError("an embedding job is already running"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("batch embedding failed: %v", err)), nil
	}

	return jsonResult(result)
}

// FindSimilar handles the find_similar tool
func (h *Handlers) FindSimilar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := request.RequireString("event_id")
	if err != nil {
		return mcp.NewToolResultError("event_id argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 0)
	threshold := request.GetFloat("threshold", -2)

	results, err := h.engine.FindSimilar(eventID, maxResults, threshold)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s has no embedding; run generate_embeddings first", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("similarity search failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"event_id": eventID,
		"results":  results,
	})
}

// DetectCrossReferences handles the detect_cross_references tool
func (h *Handlers) DetectCrossReferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := request.RequireString("event_id")
	if err != nil {
		return mcp.NewToolResultError("event_id argument is required and must be a string"), nil
	}

	report, err := h.engine.DetectCrossReferences(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s not found or not embedded", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("cross-reference detection failed: %v", err)), nil
	}

	return jsonResult(report)
}

// DetectPatterns handles the detect_patterns tool
func (h *Handlers) DetectPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var from, to *time.Time
	if s := request.GetString("start_date", ""); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start_date: %v", err)), nil
		}
		from = &t
	}
	if s := request.GetString("end_date", ""); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end_date: %v", err)), nil
		}
		to = &t
	}

	report, err := h.engine.DetectPatterns(ctx, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pattern detection failed: %v", err)), nil
	}

	return jsonResult(report)
}

// SuggestTags handles the suggest_tags tool
func (h *Handlers) SuggestTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := request.RequireString("event_id")
	if err != nil {
		return mcp.NewToolResultError("event_id argument is required and must be a string"), nil
	}
	max := request.GetInt("max_suggestions", 0)

	suggestions, err := h.engine.SuggestTags(eventID, max)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s not found or not embedded", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("tag suggestion failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"event_id":    eventID,
		"suggestions": suggestions,
	})
}

// ClearEmbeddings handles the clear_embeddings tool
func (h *Handlers) ClearEmbeddings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.engine.ClearAll(); err != nil {
		if errors.Is(err, models.ErrBusy) {
			return mcp.NewToolResultError("an embedding job is running; try again when it finishes"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"cleared":  true,
		"provider": h.engine.ProviderName(),
	})
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return time.Parse("2006-01-02", s)
}

// argStrings reads an optional string-array argument.
func argStrings(request mcp.CallToolRequest, key string) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

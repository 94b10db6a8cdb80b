// ABOUTME: MCP tool definitions and registration for the retrieval server
// ABOUTME: Defines JSON schemas for the seven engine-facing tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/reverie-journal/reverie/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine, events EventWriter) *Handlers {
	handlers := &Handlers{
		engine: engine,
		events: events,
	}

	// 1. store_event - Store or update a journal event
	server.AddTool(mcp.Tool{
		Name:        "store_event",
		Description: "Store a journal event (title, dates, category, tags, people, locations) and embed it for retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Short event title",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Longer free-text description",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Life category (e.g. Work, Travel, Health)",
				},
				"start_date": map[string]interface{}{
					"type":        "string",
					"description": "Event date in YYYY-MM-DD form",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tag names",
				},
				"people": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "People involved, primary first",
				},
				"locations": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Places involved, primary first",
				},
			},
			Required: []string{"title", "start_date"},
		},
	}, handlers.StoreEvent)

	// 2. generate_embeddings - Batch-embed every event
	server.AddTool(mcp.Tool{
		Name:        "generate_embeddings",
		Description: "Generate embeddings for all events that are missing one or whose content changed. Safe to re-run.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "Re-embed everything regardless of staleness",
					"default":     false,
				},
			},
		},
	}, handlers.GenerateEmbeddings)

	// 3. find_similar - KNN search from one event
	server.AddTool(mcp.Tool{
		Name:        "find_similar",
		Description: "Find events semantically similar to the given event, ranked by cosine similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"event_id": map[string]interface{}{
					"type":        "string",
					"description": "Query event ID",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of neighbors (default: 10)",
					"default":     10,
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Minimum similarity score (default: configured threshold)",
				},
			},
			Required: []string{"event_id"},
		},
	}, handlers.FindSimilar)

	// 4. detect_cross_references - Classify relationships for one event
	server.AddTool(mcp.Tool{
		Name:        "detect_cross_references",
		Description: "Detect typed relationships (causal, thematic, temporal, person, location, follow-up) between the event and the rest of the journal.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"event_id": map[string]interface{}{
					"type":        "string",
					"description": "Event to analyze",
				},
			},
			Required: []string{"event_id"},
		},
	}, handlers.DetectCrossReferences)

	// 5. detect_patterns - Mine a date window
	server.AddTool(mcp.Tool{
		Name:        "detect_patterns",
		Description: "Mine recurring categories, event clusters, and era transitions over a date range (full history when omitted).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start_date": map[string]interface{}{
					"type":        "string",
					"description": "Window start in YYYY-MM-DD form",
				},
				"end_date": map[string]interface{}{
					"type":        "string",
					"description": "Window end in YYYY-MM-DD form",
				},
			},
		},
	}, handlers.DetectPatterns)

	// 6. suggest_tags - Tag suggestions by neighbor analogy
	server.AddTool(mcp.Tool{
		Name:        "suggest_tags",
		Description: "Suggest tags for an event based on the tags of its most similar events.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"event_id": map[string]interface{}{
					"type":        "string",
					"description": "Target event ID",
				},
				"max_suggestions": map[string]interface{}{
					"type":        "number",
					"description": "Maximum suggestions to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"event_id"},
		},
	}, handlers.SuggestTags)

	// 7. clear_embeddings - Provider/model migration reset
	server.AddTool(mcp.Tool{
		Name:        "clear_embeddings",
		Description: "Delete every stored embedding for the active provider. Irreversible; used when switching providers or models.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearEmbeddings)

	return handlers
}

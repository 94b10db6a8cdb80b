// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to query the retrieval engine via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/reverie-journal/reverie/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Reverie as an MCP (Model Context Protocol) server, enabling
LLM agents to store events, search for similar ones, and mine
patterns via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  reverie mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "reverie": {
  #       "command": "reverie",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	engine, events, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("COHERE_API_KEY") == "" {
		log.Println("Warning: no provider API key set - embedding generation will not work")
	}

	server := mcpserver.NewMCPServer(
		"Reverie Retrieval Engine",
		"0.1.0",
	)
	mcp.RegisterTools(server, engine, events)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Reverie MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}

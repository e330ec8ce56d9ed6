package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants score resumes and read your audit history.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "atsmatch": {
      "command": "/path/to/atsmatch",
      "args": ["mcp"]
    }
  }
}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Health(cmd.Context()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	server := mcp.New(db, cfg, logger)

	// Handle interrupt
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	logger.Info("mcp server started", "transport", cfg.MCP.Transport, "database", cfg.Database.Path)
	err = server.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

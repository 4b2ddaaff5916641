package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing database lookups as tools",
	Long: `Start the Model Context Protocol (MCP) server that lets an LLM triage
loop query the database: resolve functions, macros, globals and classes,
walk caller chains, and extract line-numbered source snippets.

The server:
- Scans the CSV tables fresh on every lookup (no caching)
- Remembers functions resolved during the session for by-name lookups
- Communicates via stdio (standard MCP transport)

Example:
  quarry mcp --db ./dbs/redis`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Quarry MCP Server\n")
	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Database.Path)

	server, err := mcp.NewServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	return server.Serve(ctx)
}

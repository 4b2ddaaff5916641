package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AddListSourceFilesTool registers the list_source_files tool.
func AddListSourceFilesTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"list_source_files",
		mcpgo.WithDescription(`List source files packaged in the database's src.zip archive.

Supports glob filtering (e.g. '**/*.c' or 'src/net/*'). Useful for finding
the archive path of a file before line-based lookups.`),
		mcpgo.WithString("pattern",
			mcpgo.Description("Glob pattern to filter entries (empty lists everything)")),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of entries to return (default: 100)")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createListSourceFilesHandler(srv))
}

// ListSourceFilesResponse is the JSON response for list_source_files.
type ListSourceFilesResponse struct {
	Pattern   string   `json:"pattern,omitempty"`
	Files     []string `json:"files"`
	Total     int      `json:"total"`
	Truncated bool     `json:"truncated"`
}

func createListSourceFilesHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, ok := argsMap(request)
		if !ok {
			return mcpgo.NewToolResultError("invalid arguments format"), nil
		}

		pattern, err := parseStringArg(args, "pattern", false)
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		limit := parseIntArg(args, "limit", 100)
		if limit < 1 {
			limit = 100
		}

		files, err := srv.db.SourceArchive().List(pattern)
		if err != nil {
			return nil, err
		}

		total := len(files)
		truncated := false
		if len(files) > limit {
			files = files[:limit]
			truncated = true
		}

		return toolResultJSON(&ListSourceFilesResponse{
			Pattern:   pattern,
			Files:     files,
			Total:     total,
			Truncated: truncated,
		})
	}
}

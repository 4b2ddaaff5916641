package mcp

import (
	"context"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quarrylabs/quarry/internal/search"
)

// AddSearchFunctionsTool registers the search_functions tool.
func AddSearchFunctionsTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"search_functions",
		mcpgo.WithDescription(`Fuzzy-search function names when exact and substring lookups both miss.

Use this as a recovery step for misspelled or heavily partial names. Each
match becomes a known function for subsequent get_function_by_name calls.`),
		mcpgo.WithString("query",
			mcpgo.Required(),
			mcpgo.Description("Function name or fragment to search for")),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of results (1-100, default: 15)")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createSearchFunctionsHandler(srv))
}

// SearchFunctionsResponse is the JSON response for search_functions.
type SearchFunctionsResponse struct {
	Query   string         `json:"query"`
	Matches []search.Match `json:"matches"`
	Total   int            `json:"total"`
	TookMs  int            `json:"took_ms"`
}

func createSearchFunctionsHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		startTime := time.Now()

		args, ok := argsMap(request)
		if !ok {
			return mcpgo.NewToolResultError("invalid arguments format"), nil
		}

		query, err := parseStringArg(args, "query", true)
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		limit := parseIntArg(args, "limit", srv.config.Search.MaxResults)

		matches, err := srv.index.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			srv.session.remember(m.Row)
		}

		return toolResultJSON(&SearchFunctionsResponse{
			Query:   query,
			Matches: matches,
			Total:   len(matches),
			TookMs:  int(time.Since(startTime).Milliseconds()),
		})
	}
}

package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quarrylabs/quarry/internal/codeql"
)

// AddExtractCodeTool registers the extract_function_code tool.
func AddExtractCodeTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"extract_function_code",
		mcpgo.WithDescription(`Return the exact, line-numbered source text of the function at a given file and line.

The function is resolved by line containment, its source file is read from
the database's src.zip, and the function's line range is rendered with
absolute line numbers under a "file:" header.`),
		mcpgo.WithString("file",
			mcpgo.Required(),
			mcpgo.Description("Source file of the function to extract")),
		mcpgo.WithNumber("line",
			mcpgo.Required(),
			mcpgo.Description("A line inside that function")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createExtractCodeHandler(srv))
}

func createExtractCodeHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, ok := argsMap(request)
		if !ok {
			return mcpgo.NewToolResultError("invalid arguments format"), nil
		}

		fn, early, err := resolveCurrentFunction(srv, args)
		if err != nil {
			return nil, err
		}
		if early != nil {
			return early, nil
		}

		extract, err := srv.lookup.ExtractFunctionLines(srv.db, *fn)
		if err != nil {
			return nil, err
		}

		// The extract carries whole-file lines; slicing to the function's
		// range happens here, on the caller side of that contract.
		snippet := codeql.SliceLines(extract.Lines, extract.StartLine, extract.EndLine)
		text := codeql.FormatNumberedSnippet(extract.FilePath, extract.StartLine, snippet)
		return mcpgo.NewToolResultText(text), nil
	}
}

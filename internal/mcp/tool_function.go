package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quarrylabs/quarry/internal/codeql"
)

// AddFunctionByLineTool registers the get_function_by_line tool.
// This function is composable - it can be combined with other tool registrations.
func AddFunctionByLineTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_function_by_line",
		mcpgo.WithDescription(`Find the function that contains a given line of a source file.

Use this to resolve a finding location (file + line) to the enclosing
function record. The file argument is matched as a substring of the table's
file field, so a trailing path like "net/socket.c" works.`),
		mcpgo.WithString("file",
			mcpgo.Required(),
			mcpgo.Description("Source file path (or trailing fragment) as it appears in the finding")),
		mcpgo.WithNumber("line",
			mcpgo.Required(),
			mcpgo.Description("Line number inside the function")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFunctionByLineHandler(srv))
}

func createFunctionByLineHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, ok := argsMap(request)
		if !ok {
			return mcpgo.NewToolResultError("invalid arguments format"), nil
		}

		file, err := parseStringArg(args, "file", true)
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		line, err := requireIntArg(args, "line")
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}

		fn, err := srv.lookup.FunctionByLine(srv.db.FunctionTreePath(), file, line)
		if err != nil {
			return nil, err
		}
		if fn == nil {
			return notFoundResult("No function covers that file and line. Check the file path fragment and line number."), nil
		}

		srv.session.remember(*fn)
		return toolResultJSON(fn)
	}
}

// AddFunctionByNameTool registers the get_function_by_name tool.
func AddFunctionByNameTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_function_by_name",
		mcpgo.WithDescription(`Find a function by name among rows related to functions already resolved this session.

The search walks outward from known functions (resolved earlier via
get_function_by_line, get_caller_function or search_functions) and matches
the namespace-stripped name exactly first, then by substring. The response
includes the known function whose id led to the match ("via").`),
		mcpgo.WithString("function_name",
			mcpgo.Required(),
			mcpgo.Description("Function name, optionally namespace-qualified (e.g. 'Parser::consume')")),
		mcpgo.WithBoolean("less_strict",
			mcpgo.Description("Skip the exact pass and match by substring immediately (default: false)")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createFunctionByNameHandler(srv))
}

// FunctionByNameResponse pairs the matched function with the known function
// that referenced it.
type FunctionByNameResponse struct {
	Function *codeql.FunctionRow `json:"function"`
	Via      *codeql.FunctionRow `json:"via,omitempty"`
}

func createFunctionByNameHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, ok := argsMap(request)
		if !ok {
			return mcpgo.NewToolResultError("invalid arguments format"), nil
		}

		name, err := parseStringArg(args, "function_name", true)
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		lessStrict := parseBoolArg(args, "less_strict", false)

		known := srv.session.knownFunctions()
		if len(known) == 0 {
			return notFoundResult("No functions are known yet this session. Resolve one first, e.g. with get_function_by_line or search_functions."), nil
		}

		result, via, err := srv.lookup.FunctionByName(srv.db.FunctionTreePath(), name, known, lessStrict)
		if err != nil {
			return nil, err
		}
		if !result.Found() {
			return notFoundResult(result.Message()), nil
		}

		srv.session.remember(*result.Record())
		return toolResultJSON(&FunctionByNameResponse{
			Function: result.Record(),
			Via:      via,
		})
	}
}

package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quarrylabs/quarry/internal/callgraph"
	"github.com/quarrylabs/quarry/internal/codeql"
)

// AddCallerTool registers the get_caller_function tool.
func AddCallerTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_caller_function",
		mcpgo.WithDescription(`Find the function that calls the function at a given file and line.

The target function is resolved by line containment first, then its caller
reference is followed, including the file:line fallback encoding some rows
use instead of a function id.`),
		mcpgo.WithString("file",
			mcpgo.Required(),
			mcpgo.Description("Source file of the function whose caller you want")),
		mcpgo.WithNumber("line",
			mcpgo.Required(),
			mcpgo.Description("A line inside that function")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createCallerHandler(srv))
}

func createCallerHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
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

		result, err := srv.lookup.CallerFunction(srv.db.FunctionTreePath(), *fn)
		if err != nil {
			return nil, err
		}
		if !result.Found() {
			return notFoundResult(result.Message()), nil
		}

		srv.session.remember(*result.Record())
		return toolResultJSON(result.Record())
	}
}

// AddCallChainTool registers the get_call_chain tool.
func AddCallChainTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_call_chain",
		mcpgo.WithDescription(`Walk the caller chain upward from the function at a given file and line.

Returns up to depth calling functions, nearest caller first. Callers
encoded as file:line locations are resolved by line containment, the same
fallback get_caller_function uses. The walk stops at chain roots and on
cycles.`),
		mcpgo.WithString("file",
			mcpgo.Required(),
			mcpgo.Description("Source file of the starting function")),
		mcpgo.WithNumber("line",
			mcpgo.Required(),
			mcpgo.Description("A line inside the starting function")),
		mcpgo.WithNumber("depth",
			mcpgo.Description("Maximum number of caller hops (1-20, default: 5)")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createCallChainHandler(srv))
}

// CallChainResponse lists the calling functions nearest-first.
type CallChainResponse struct {
	Function *codeql.FunctionRow  `json:"function"`
	Chain    []codeql.FunctionRow `json:"chain"`
	Depth    int                  `json:"depth"`
}

func createCallChainHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
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

		depth := parseIntArg(args, "depth", 5)
		if depth < 1 || depth > 20 {
			depth = 5
		}

		chain, err := srv.walker.get().Chain(fn.FunctionID, depth, callerResolver(srv))
		if err != nil {
			return nil, err
		}
		for _, caller := range chain {
			srv.session.remember(caller)
		}

		return toolResultJSON(&CallChainResponse{
			Function: fn,
			Chain:    chain,
			Depth:    depth,
		})
	}
}

// callerResolver bridges graph gaps with the single-hop caller lookup so
// chain walks see the file:line decode fallback too.
func callerResolver(srv *Server) callgraph.CallerResolver {
	return func(fn codeql.FunctionRow) (*codeql.FunctionRow, error) {
		res, err := srv.lookup.CallerFunction(srv.db.FunctionTreePath(), fn)
		if err != nil {
			return nil, err
		}
		if !res.Found() {
			return nil, nil
		}
		return res.Record(), nil
	}
}

// AddCalleesTool registers the get_callees tool.
func AddCalleesTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_callees",
		mcpgo.WithDescription(`List the functions directly called by the function at a given file and line.

Callees are derived from the caller graph: every function whose caller
reference names the target's function id, in table order. Functions whose
caller is encoded as a file:line location do not appear.`),
		mcpgo.WithString("file",
			mcpgo.Required(),
			mcpgo.Description("Source file of the function whose callees you want")),
		mcpgo.WithNumber("line",
			mcpgo.Required(),
			mcpgo.Description("A line inside that function")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createCalleesHandler(srv))
}

// CalleesResponse lists the direct callees of a function.
type CalleesResponse struct {
	Function *codeql.FunctionRow  `json:"function"`
	Callees  []codeql.FunctionRow `json:"callees"`
	Total    int                  `json:"total"`
}

func createCalleesHandler(srv *Server) func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
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

		walker := srv.walker.get()
		ids, err := walker.Callees(fn.FunctionID)
		if err != nil {
			return nil, err
		}

		callees := make([]codeql.FunctionRow, 0, len(ids))
		for _, id := range ids {
			row, ok := walker.Function(id)
			if !ok {
				continue
			}
			srv.session.remember(row)
			callees = append(callees, row)
		}

		return toolResultJSON(&CalleesResponse{
			Function: fn,
			Callees:  callees,
			Total:    len(callees),
		})
	}
}

package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quarrylabs/quarry/internal/codeql"
)

// AddMacroTool registers the get_macro tool.
func AddMacroTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_macro",
		mcpgo.WithDescription(`Look up a preprocessor macro by name and return its body.

Matches the namespace-stripped name exactly first, then by substring.`),
		mcpgo.WithString("macro_name",
			mcpgo.Required(),
			mcpgo.Description("Macro name as referenced in the finding")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return handleNameLookup(request, "macro_name", func(name string) (found bool, record interface{}, message string, err error) {
			res, err := srv.lookup.Macro(srv.db, name)
			if err != nil {
				return false, nil, "", err
			}
			return res.Found(), res.Record(), res.Message(), nil
		})
	})
}

// AddGlobalVarTool registers the get_global_var tool.
func AddGlobalVarTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_global_var",
		mcpgo.WithDescription(`Look up a global variable by name and return where it is declared.

Matches the namespace-stripped name exactly first, then by substring.`),
		mcpgo.WithString("global_var_name",
			mcpgo.Required(),
			mcpgo.Description("Global variable name, optionally namespace-qualified")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return handleNameLookup(request, "global_var_name", func(name string) (bool, interface{}, string, error) {
			res, err := srv.lookup.GlobalVar(srv.db, name)
			if err != nil {
				return false, nil, "", err
			}
			return res.Found(), res.Record(), res.Message(), nil
		})
	})
}

// AddClassTool registers the get_class tool.
func AddClassTool(s *server.MCPServer, srv *Server) {
	tool := mcpgo.NewTool(
		"get_class",
		mcpgo.WithDescription(`Look up a class, struct or union by name.

Matches either the fully qualified name or the simple (unqualified) name,
exactly first and then by substring.`),
		mcpgo.WithString("class_name",
			mcpgo.Required(),
			mcpgo.Description("Class name, optionally namespace-qualified")),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return handleNameLookup(request, "class_name", func(name string) (bool, interface{}, string, error) {
			res, err := srv.lookup.Class(srv.db, name)
			if err != nil {
				return false, nil, "", err
			}
			return res.Found(), res.Record(), res.Message(), nil
		})
	})
}

// handleNameLookup is the shared handler shape for the three single-name
// symbol tools: parse the one required argument, run the lookup, forward a
// miss message verbatim or marshal the record.
func handleNameLookup(
	request mcpgo.CallToolRequest,
	argKey string,
	lookup func(name string) (found bool, record interface{}, message string, err error),
) (*mcpgo.CallToolResult, error) {
	args, ok := argsMap(request)
	if !ok {
		return mcpgo.NewToolResultError("invalid arguments format"), nil
	}

	name, err := parseStringArg(args, argKey, true)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	found, record, message, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if !found {
		return notFoundResult(message), nil
	}
	return toolResultJSON(record)
}

// resolveCurrentFunction turns file+line tool arguments into the function
// record the caller is talking about. Several tools share this shape.
func resolveCurrentFunction(srv *Server, args map[string]interface{}) (*codeql.FunctionRow, *mcpgo.CallToolResult, error) {
	file, err := parseStringArg(args, "file", true)
	if err != nil {
		return nil, mcpgo.NewToolResultError(err.Error()), nil
	}
	line, err := requireIntArg(args, "line")
	if err != nil {
		return nil, mcpgo.NewToolResultError(err.Error()), nil
	}

	fn, err := srv.lookup.FunctionByLine(srv.db.FunctionTreePath(), file, line)
	if err != nil {
		return nil, nil, err
	}
	if fn == nil {
		return nil, notFoundResult("No function covers that file and line. Check the file path fragment and line number."), nil
	}
	srv.session.remember(*fn)
	return fn, nil, nil
}

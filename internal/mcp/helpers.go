package mcp

import (
	"encoding/json"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// argsMap pulls the raw arguments map out of a tool request.
func argsMap(request mcpgo.CallToolRequest) (map[string]interface{}, bool) {
	m, ok := request.Params.Arguments.(map[string]interface{})
	return m, ok
}

// toolResultJSON marshals a response payload into a text tool result
// (mcp-go convention).
func toolResultJSON(v interface{}) (*mcpgo.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcpgo.NewToolResultText(string(jsonData)), nil
}

// notFoundResult forwards a lookup miss message to the model verbatim.
// Misses are data, not tool errors: the prose tells the model to pick a
// different tool or fix its arguments.
func notFoundResult(message string) *mcpgo.CallToolResult {
	return mcpgo.NewToolResultText(message)
}

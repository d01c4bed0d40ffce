// Package mcpserver exposes headson's render pipeline as a Model
// Context Protocol tool, so an MCP-speaking agent can ask for a
// budget-constrained preview of a document the same way a human would
// via the CLI. Grounded on the teacher's internal/mcp/server.go: one
// mcp.NewServer, tools registered via AddTool with a jsonschema.Schema
// input shape, stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/kantord/headson/internal/cache"
	"github.com/kantord/headson/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server instance exposing headson's tools. Unlike
// the CLI, a server process lives long enough for repeated render
// requests against the same content to actually benefit from an order
// cache, so one is shared across every render call.
type Server struct {
	server *mcp.Server
	cache  *cache.OrderCache
}

// New constructs a Server with every headson tool registered.
func New() *Server {
	impl := mcp.NewServer(&mcp.Implementation{
		Name:    "headson-mcp-server",
		Version: version.FullInfo(),
	}, nil)
	s := &Server{server: impl, cache: cache.NewOrderCache(cache.DefaultTTL)}
	s.registerTools()
	return s
}

// Run blocks serving over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "render",
		Description: "Render a budget-constrained preview of a JSON, YAML, or text document, dropping the least important nodes first until the output fits within a byte budget.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"content": {
					Type:        "string",
					Description: "Raw document content to preview.",
				},
				"format": {
					Type:        "string",
					Description: "Input format: json, yaml, or text.",
					Enum:        []any{"json", "yaml", "text"},
				},
				"budget": {
					Type:        "integer",
					Description: "Maximum output size in bytes.",
				},
				"template": {
					Type:        "string",
					Description: "Output template.",
					Enum:        []any{"json", "pseudo", "js", "yaml", "text"},
				},
			},
			Required: []string{"content", "format", "budget"},
		},
	}, s.handleRender)

	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Describe the render tool's parameters and defaults.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
		},
	}, s.handleInfo)
}

func createJSONResponse(data any) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(content)}},
	}, nil
}

// createErrorResponse reports a tool-level failure inside the result
// body with IsError set, rather than as an MCP protocol-level error,
// so the calling model can see what went wrong and retry.
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	resp, marshalErr := createJSONResponse(map[string]any{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	resp.IsError = true
	return resp, nil
}

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kantord/headson"
	"github.com/kantord/headson/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type renderParams struct {
	Content  string `json:"content"`
	Format   string `json:"format"`
	Budget   int    `json:"budget"`
	Template string `json:"template"`
}

func (s *Server) handleRender(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params renderParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("render", fmt.Errorf("invalid parameters: %w", err))
	}

	opts := headson.DefaultOptions()
	if params.Budget > 0 {
		opts.Budget = params.Budget
	}
	if params.Template != "" {
		opts.Template = parseTemplate(params.Template)
	}
	opts.Cache = s.cache

	res, err := headson.Render([]byte(params.Content), headson.ParseFormat(params.Format), opts)
	if err != nil {
		return createErrorResponse("render", err)
	}

	return createJSONResponse(map[string]any{
		"output": res.Output,
		"kept":   res.Kept,
		"total":  res.Total,
	})
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hits, misses := s.cache.Stats()
	return createJSONResponse(map[string]any{
		"tool":        "render",
		"description": "Render a budget-constrained preview of a JSON, YAML, or text document.",
		"parameters": map[string]string{
			"content":  "required, raw document text",
			"format":   "required, one of json/yaml/text",
			"budget":   "required, maximum output bytes",
			"template": "optional, one of json/pseudo/js/yaml/text, default json",
		},
		"cache": map[string]int64{
			"hits":   hits,
			"misses": misses,
		},
	})
}

func parseTemplate(s string) render.Template {
	switch s {
	case "pseudo":
		return render.Pseudo
	case "js":
		return render.Js
	case "yaml":
		return render.Yaml
	case "text":
		return render.Text
	default:
		return render.Json
	}
}

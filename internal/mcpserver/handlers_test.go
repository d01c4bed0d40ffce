package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kantord/headson/internal/cache"
	"github.com/kantord/headson/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateDefaultsToJSON(t *testing.T) {
	assert.Equal(t, render.Json, parseTemplate("unknown"))
	assert.Equal(t, render.Yaml, parseTemplate("yaml"))
	assert.Equal(t, render.Pseudo, parseTemplate("pseudo"))
}

func TestHandleRenderReusesServerCacheAcrossCalls(t *testing.T) {
	s := &Server{cache: cache.NewOrderCache(cache.DefaultTTL)}
	args, err := json.Marshal(renderParams{
		Content: `{"a": 1, "b": [1,2,3]}`,
		Format:  "json",
		Budget:  4096,
	})
	require.NoError(t, err)
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: args}}

	_, err = s.handleRender(context.Background(), req)
	require.NoError(t, err)
	_, err = s.handleRender(context.Background(), req)
	require.NoError(t, err)

	hits, misses := s.cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

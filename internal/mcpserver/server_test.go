package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/agentic-research/annotate/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(api.Options{}, quiet()))
}

func TestAnnotateSource(t *testing.T) {
	h := annotateHandler(api.Options{}, quiet())

	res := call(t, h, map[string]any{
		"source":   "const A = () => <div />;\n",
		"filename": "src/A.jsx",
	})
	assert.False(t, res.IsError)
	assert.Equal(t, "const A = () => <div data-component=\"A\" data-source-file=\"A.jsx\" />;\n", text(t, res))
}

func TestAnnotateSource_Errors(t *testing.T) {
	h := annotateHandler(api.Options{}, quiet())

	tests := map[string]map[string]any{
		"missing source":   {"filename": "a.jsx"},
		"missing filename": {"source": "const a = 1;"},
		"unsupported":      {"source": "let a: number = 1;", "filename": "a.ts"},
		"syntax error":     {"source": "const A = () => <div>;", "filename": "a.jsx"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res := call(t, h, args)
			assert.True(t, res.IsError)
		})
	}
}

func TestAttributeNames(t *testing.T) {
	res := call(t, namesHandler(api.Options{Native: true}), nil)
	assert.JSONEq(t, `{"component":"dataComponent","element":"dataElement","source-file":"dataSourceFile"}`, text(t, res))
}

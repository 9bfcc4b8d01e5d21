package agent

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callExtract(t *testing.T, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "take_extract"
	req.Params.Arguments = args

	res, err := handleExtract(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T, want TextContent", res.Content[0])
	return tc.Text
}

func TestExtractTool(t *testing.T) {
	res := callExtract(t, map[string]any{
		"template": "$ h1 | text\n\tsave: title\n",
		"document": "<h1>Hi</h1>",
	})
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"title":"Hi"}`, resultText(t, res))
}

func TestExtractTool_BaseURL(t *testing.T) {
	res := callExtract(t, map[string]any{
		"template": "$ a | 0 [href]\n\tsave: url\n",
		"document": `<a href="/x">x</a>`,
		"base_url": "https://example.com",
	})
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"url":"https://example.com/x"}`, resultText(t, res))
}

func TestExtractTool_CompileError(t *testing.T) {
	res := callExtract(t, map[string]any{
		"template": "save fail",
		"document": "<p></p>",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "scan error at line 1")
}

func TestExtractTool_MissingTemplate(t *testing.T) {
	res := callExtract(t, map[string]any{"document": "<p></p>"})
	assert.True(t, res.IsError)
}

func TestExtractTool_NeitherDocumentNorURL(t *testing.T) {
	res := callExtract(t, map[string]any{"template": "save: value\n"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "document or url")
}

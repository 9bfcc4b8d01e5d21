// Package agent exposes take extraction to MCP clients over stdio. The
// single take_extract tool compiles a template and runs it against
// inline markup or a fetched URL, returning the flattened result as
// JSON text.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/takedsl/take"
	"github.com/takedsl/take/internal/loader"
)

// New builds the MCP server with the take_extract tool registered.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer("take", version, server.WithToolCapabilities(false))

	tool := mcp.NewTool("take_extract",
		mcp.WithDescription("Extract structured data from HTML using a take template. Returns the extracted data as JSON."),
		mcp.WithString("template", mcp.Required(), mcp.Description("take template source")),
		mcp.WithString("document", mcp.Description("HTML to extract from")),
		mcp.WithString("url", mcp.Description("URL to fetch and extract from, used when document is empty")),
		mcp.WithString("base_url", mcp.Description("base URL for resolving relative links in the result")),
	)
	s.AddTool(tool, handleExtract)
	return s
}

// ServeStdio runs the agent over stdio until the client disconnects.
func ServeStdio(version string) error {
	return server.ServeStdio(New(version))
}

func handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := req.RequireString("template")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tmpl, err := take.New(src)
	if err != nil {
		return mcp.NewToolResultError(compileErrorText(err)), nil
	}

	markup := req.GetString("document", "")
	if markup == "" {
		url := req.GetString("url", "")
		if url == "" {
			return mcp.NewToolResultError("either document or url is required"), nil
		}
		markup, err = loader.New().Load(ctx, url)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	var opts []take.ExecOption
	if base := req.GetString("base_url", ""); base != "" {
		opts = append(opts, take.ExecBaseURL(base))
	}
	data, err := tmpl.Exec(markup, opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.Marshal(take.Flatten(data))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// compileErrorText renders a compile fault with its position so the
// client can point at the offending template line.
func compileErrorText(err error) string {
	var cerr take.CompileError
	if !errors.As(err, &cerr) {
		return err.Error()
	}
	line, col := cerr.Position()
	if col > 0 {
		return fmt.Sprintf("%s error at line %d, column %d: %v", cerr.Kind(), line, col, err)
	}
	return fmt.Sprintf("%s error at line %d: %v", cerr.Kind(), line, err)
}

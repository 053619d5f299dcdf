// Package mcpserver exposes the annotation pass to agents as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agentic-research/annotate/api"
	"github.com/agentic-research/annotate/internal/annotate"
	"github.com/agentic-research/annotate/internal/batch"
	"github.com/agentic-research/annotate/internal/ingest"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "annotate"
	serverVersion = "0.1.0"
)

// New returns an MCP server whose tools annotate with opts.
func New(opts api.Options, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("annotate_source",
		mcp.WithDescription("Add component, element and source file attributes to the JSX in a source file. Returns the annotated source."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Full text of the source file")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("File name, used to pick the grammar and the source file attribute")),
	), annotateHandler(opts, logger))

	s.AddTool(mcp.NewTool("attribute_names",
		mcp.WithDescription("List the attribute names the server's configuration emits."),
	), namesHandler(opts))

	return s
}

func annotateHandler(opts api.Options, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := req.RequireString("source")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filename, err := req.RequireString("filename")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := batch.AnnotateSource(ctx, []byte(src), filename, opts)
		switch {
		case errors.Is(err, ingest.ErrUnsupported):
			return mcp.NewToolResultError(fmt.Sprintf("%s: unsupported file type", filename)), nil
		case err != nil:
			return nil, err
		}
		if res.Skipped != "" {
			return mcp.NewToolResultError(fmt.Sprintf("%s left unchanged: %s", filename, res.Skipped)), nil
		}

		logger.Debug("annotated", "path", filename, "attrs", res.Stats.Attrs)
		return mcp.NewToolResultText(string(res.Output)), nil
	}
}

func namesHandler(opts api.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names := annotate.ResolveNames(opts)
		out := map[string]string{
			"component":   names.Component,
			"element":     names.Element,
			"source-file": names.SourceFile,
		}
		if names.EmitSourcePath {
			out["source-path"] = names.SourcePath
		}
		data, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

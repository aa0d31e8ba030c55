package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilesArgs defines the input parameters for the studio_files tool.
type FilesArgs struct {
	Pattern    string `json:"pattern,omitempty" jsonschema:"Glob pattern over project paths (e.g. **/*.tsx or src/**). Default lists everything"`
	NameOnly   bool   `json:"nameOnly,omitempty" jsonschema:"If true return only paths without metadata"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of entries to return"`
}

// FilesHandler lists project entries.
type FilesHandler struct {
	Session    *session.Session
	MaxResults int
	Logger     *slog.Logger
}

// Handle processes a studio_files request.
func (h *FilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FilesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	pattern := args.Pattern
	if pattern == "" {
		pattern = "**"
	}
	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.MaxResults
	}

	nodes, err := h.Session.Tree().Glob(pattern, maxResults)
	metrics.RecordToolCall("studio_files", err == nil)
	if err != nil {
		h.Logger.Error("studio_files failed", "pattern", pattern, "error", err)
		return errorResult("%v", err), nil, nil
	}

	h.Logger.Info("studio_files", "pattern", pattern, "results", len(nodes), "elapsed", time.Since(start))
	return textResult(FormatNodes(nodes, args.NameOnly)), nil, nil
}

package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/lexandro/codestudio-mcp/language"
	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/vfs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadArgs defines the input parameters for the studio_read tool.
type ReadArgs struct {
	Path string `json:"path,omitempty" jsonschema:"File to read (e.g. /src/App.tsx). Defaults to the active file"`
}

// ReadHandler returns file contents with line numbers.
type ReadHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_read request.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Path == "" {
		view, ok := h.Session.ActiveView()
		metrics.RecordToolCall("studio_read", ok)
		if !ok {
			return errorResult("no file is selected; pass a path or use studio_select"), nil, nil
		}
		h.Logger.Info("studio_read", "path", view.Path, "active", true, "elapsed", time.Since(start))
		return textResult(FormatFileContent(view.Path, view.Language, view.Content)), nil, nil
	}

	path, err := vfs.NormalizePath(args.Path)
	if err != nil {
		metrics.RecordToolCall("studio_read", false)
		return errorResult("%v", err), nil, nil
	}
	content, ok := h.Session.Tree().Read(path)
	metrics.RecordToolCall("studio_read", ok)
	if !ok {
		h.Logger.Info("studio_read file not found", "path", path)
		return errorResult("file not found: %s", path), nil, nil
	}

	h.Logger.Info("studio_read", "path", path, "elapsed", time.Since(start))
	return textResult(FormatFileContent(path, language.EditorHint(path), content)), nil, nil
}

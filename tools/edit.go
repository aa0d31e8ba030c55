package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SelectArgs defines the input parameters for the studio_select tool.
type SelectArgs struct {
	Path string `json:"path" jsonschema:"File to make active (e.g. /App.tsx)"`
}

// SelectHandler changes the active file.
type SelectHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_select request.
func (h *SelectHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SelectArgs) (*mcp.CallToolResult, any, error) {
	if args.Path == "" {
		return errorResult("path parameter is required"), nil, nil
	}

	path, err := h.Session.SelectFile(args.Path)
	metrics.RecordToolCall("studio_select", err == nil)
	if err != nil {
		h.Logger.Info("studio_select rejected", "path", args.Path, "error", err)
		return errorResult("%v", err), nil, nil
	}

	h.Logger.Info("studio_select", "path", path)
	view, _ := h.Session.ActiveView()
	return textResult(fmt.Sprintf("Active file: %s (%s)", path, view.Language)), nil, nil
}

// EditArgs defines the input parameters for the studio_edit tool.
type EditArgs struct {
	Content string `json:"content" jsonschema:"New full content of the file"`
	Path    string `json:"path,omitempty" jsonschema:"File to edit; it becomes the active file. Defaults to the active file"`
}

// EditHandler replaces the content of the active file.
type EditHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_edit request.
func (h *EditHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args EditArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	var (
		active string
		err    error
	)
	if args.Path != "" {
		active, err = h.Session.EditFile(args.Path, args.Content)
	} else {
		err = h.Session.ApplyEdit(args.Content)
		active, _ = h.Session.ActiveFile()
	}
	metrics.RecordToolCall("studio_edit", err == nil)
	if err != nil {
		h.Logger.Info("studio_edit rejected", "path", args.Path, "error", err)
		return errorResult("%v", err), nil, nil
	}

	h.Logger.Info("studio_edit", "path", active, "bytes", len(args.Content), "elapsed", time.Since(start))
	return textResult(fmt.Sprintf("Updated %s (%s)", active, formatFileSize(int64(len(args.Content))))), nil, nil
}

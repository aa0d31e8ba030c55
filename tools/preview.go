package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/preview"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PreviewArgs defines the input parameters for the studio_preview tool.
type PreviewArgs struct {
	IncludeContent bool `json:"includeContent,omitempty" jsonschema:"If true include the content of every file"`
}

// PreviewHandler shows what the preview renderer last received.
type PreviewHandler struct {
	Projector *preview.Projector
	Logger    *slog.Logger
}

// Handle processes a studio_preview request.
func (h *PreviewHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args PreviewArgs) (*mcp.CallToolResult, any, error) {
	files, theme, version := h.Projector.Latest()
	metrics.RecordToolCall("studio_preview", true)
	h.Logger.Info("studio_preview", "files", len(files), "version", version)

	header := fmt.Sprintf("Preview v%d, theme %s, %d files:\n", version, theme, len(files))
	return textResult(header + FormatPreview(files, args.IncludeContent)), nil, nil
}

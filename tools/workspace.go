package tools

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/lexandro/codestudio-mcp/ignore"
	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/workspace"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ImportArgs defines the input parameters for the studio_import tool.
type ImportArgs struct {
	Dir string `json:"dir" jsonschema:"Directory on disk whose files are merged into the project"`
}

// ExportArgs defines the input parameters for the studio_export tool.
type ExportArgs struct {
	Dir string `json:"dir" jsonschema:"Directory on disk to write the project files into"`
}

// WorkspaceHandler copies files between the project and disk.
type WorkspaceHandler struct {
	Session     *session.Session
	Exclude     []string
	MaxFileSize int64
	Logger      *slog.Logger
}

// HandleImport processes a studio_import request.
func (h *WorkspaceHandler) HandleImport(ctx context.Context, req *mcp.CallToolRequest, args ImportArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Dir == "" {
		return errorResult("dir parameter is required"), nil, nil
	}
	root, err := filepath.Abs(args.Dir)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}

	matcher := ignore.NewMatcher(ignore.Options{Root: root, Exclude: h.Exclude, MaxFileSize: h.MaxFileSize})
	stats, err := workspace.Import(ctx, root, h.Session, matcher, h.Logger)
	metrics.RecordToolCall("studio_import", err == nil)
	if err != nil {
		h.Logger.Error("studio_import failed", "dir", root, "error", err)
		return errorResult("import failed: %v", err), nil, nil
	}

	h.Logger.Info("studio_import", "dir", root, "imported", stats.Imported, "elapsed", time.Since(start))
	return textResult(fmt.Sprintf("Imported %d files from %s (ignored %d, too large %d, binary %d, failed %d)",
		stats.Imported, root, stats.Ignored, stats.TooLarge, stats.Binary, stats.Failed)), nil, nil
}

// HandleExport processes a studio_export request.
func (h *WorkspaceHandler) HandleExport(ctx context.Context, req *mcp.CallToolRequest, args ExportArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Dir == "" {
		return errorResult("dir parameter is required"), nil, nil
	}
	root, err := filepath.Abs(args.Dir)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}

	written, err := workspace.Export(root, h.Session.Tree().Nodes())
	metrics.RecordToolCall("studio_export", err == nil)
	if err != nil {
		h.Logger.Error("studio_export failed", "dir", root, "error", err)
		return errorResult("export failed after %d files: %v", written, err), nil, nil
	}

	h.Logger.Info("studio_export", "dir", root, "files", written, "elapsed", time.Since(start))
	return textResult(fmt.Sprintf("Exported %d files to %s", written, root)), nil, nil
}

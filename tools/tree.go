package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/vfs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateArgs defines the input parameters for the studio_create tool.
type CreateArgs struct {
	Path string `json:"path" jsonschema:"Path of the new entry (e.g. /src/Button.tsx)"`
	Type string `json:"type,omitempty" jsonschema:"file or folder (default file)"`
}

// CreateHandler adds a file or folder.
type CreateHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_create request.
func (h *CreateHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CreateArgs) (*mcp.CallToolResult, any, error) {
	if args.Path == "" {
		return errorResult("path parameter is required"), nil, nil
	}
	nodeType := vfs.TypeFile
	if args.Type != "" {
		parsed, err := vfs.ParseNodeType(args.Type)
		if err != nil {
			return errorResult("%v", err), nil, nil
		}
		nodeType = parsed
	}

	path, err := h.Session.CreateFile(args.Path, nodeType)
	metrics.RecordToolCall("studio_create", err == nil)
	if err != nil {
		h.Logger.Info("studio_create rejected", "path", args.Path, "error", err)
		return errorResult("%v", err), nil, nil
	}

	h.Logger.Info("studio_create", "path", path, "type", nodeType)
	return textResult(fmt.Sprintf("Created %s %s", nodeType, path)), nil, nil
}

// DeleteArgs defines the input parameters for the studio_delete tool.
type DeleteArgs struct {
	Path string `json:"path" jsonschema:"Path to delete. Folder contents are not deleted"`
}

// DeleteHandler removes one entry.
type DeleteHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_delete request.
func (h *DeleteHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args DeleteArgs) (*mcp.CallToolResult, any, error) {
	if args.Path == "" {
		return errorResult("path parameter is required"), nil, nil
	}

	removed, err := h.Session.DeleteFile(args.Path)
	metrics.RecordToolCall("studio_delete", err == nil)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}
	if !removed {
		h.Logger.Debug("studio_delete of missing path", "path", args.Path)
		return textResult(fmt.Sprintf("Nothing to delete at %s", args.Path)), nil, nil
	}

	h.Logger.Info("studio_delete", "path", args.Path)
	return textResult(fmt.Sprintf("Deleted %s%s", args.Path, activeSuffix(h.Session))), nil, nil
}

// RenameArgs defines the input parameters for the studio_rename tool.
type RenameArgs struct {
	OldPath string `json:"oldPath" jsonschema:"Current path"`
	NewPath string `json:"newPath" jsonschema:"New path. An existing entry there is replaced"`
}

// RenameHandler moves one entry.
type RenameHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_rename request.
func (h *RenameHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args RenameArgs) (*mcp.CallToolResult, any, error) {
	if args.OldPath == "" || args.NewPath == "" {
		return errorResult("oldPath and newPath parameters are required"), nil, nil
	}

	moved, err := h.Session.RenameFile(args.OldPath, args.NewPath)
	metrics.RecordToolCall("studio_rename", err == nil)
	if err != nil {
		return errorResult("%v", err), nil, nil
	}
	if !moved {
		return textResult(fmt.Sprintf("Nothing to rename at %s", args.OldPath)), nil, nil
	}

	h.Logger.Info("studio_rename", "from", args.OldPath, "to", args.NewPath)
	return textResult(fmt.Sprintf("Renamed %s to %s%s", args.OldPath, args.NewPath, activeSuffix(h.Session))), nil, nil
}

func activeSuffix(s *session.Session) string {
	if active, ok := s.ActiveFile(); ok {
		return fmt.Sprintf(" (active file: %s)", active)
	}
	return " (no file selected)"
}

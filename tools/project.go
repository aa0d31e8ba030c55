package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/project"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SaveArgs defines the input parameters for the studio_save tool (none required).
type SaveArgs struct{}

// SaveHandler persists the current project.
type SaveHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_save request.
func (h *SaveHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SaveArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	err := h.Session.Save()
	metrics.RecordToolCall("studio_save", err == nil)
	st := h.Session.Status()
	if err != nil {
		h.Logger.Error("studio_save failed", "project", st.ProjectID, "error", err)
		return errorResult("save failed, project is still in memory: %v", err), nil, nil
	}

	h.Logger.Info("studio_save", "project", st.ProjectID, "elapsed", time.Since(start))
	return textResult(fmt.Sprintf("Saved project %q (%s)", st.ProjectName, st.ProjectID)), nil, nil
}

// LoadArgs defines the input parameters for the studio_load tool.
type LoadArgs struct {
	ID string `json:"id" jsonschema:"Id of the project to load"`
}

// LoadHandler replaces the current project with a stored one.
type LoadHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_load request.
func (h *LoadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args LoadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.ID == "" {
		return errorResult("id parameter is required"), nil, nil
	}

	err := h.Session.Load(args.ID)
	metrics.RecordToolCall("studio_load", err == nil)
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		h.Logger.Info("studio_load project not found", "project", args.ID)
		return errorResult("project %s not found", args.ID), nil, nil
	case err != nil:
		h.Logger.Error("studio_load failed", "project", args.ID, "error", err)
		return errorResult("load failed, current project kept: %v", err), nil, nil
	}

	st := h.Session.Status()
	h.Logger.Info("studio_load", "project", st.ProjectID, "files", st.Files, "elapsed", time.Since(start))
	return textResult(fmt.Sprintf("Loaded project %q (%s): %d files, %d folders%s",
		st.ProjectName, st.ProjectID, st.Files, st.Folders, activeSuffix(h.Session))), nil, nil
}

// NewProjectArgs defines the input parameters for the studio_new tool.
type NewProjectArgs struct {
	Name string `json:"name,omitempty" jsonschema:"Project name (default My React App)"`
}

// NewProjectHandler starts a fresh starter project.
type NewProjectHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_new request.
func (h *NewProjectHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args NewProjectArgs) (*mcp.CallToolResult, any, error) {
	id, err := h.Session.NewProject(args.Name)
	metrics.RecordToolCall("studio_new", err == nil)
	if err != nil {
		h.Logger.Error("studio_new failed", "error", err)
		return errorResult("%v", err), nil, nil
	}

	st := h.Session.Status()
	h.Logger.Info("studio_new", "project", id, "name", st.ProjectName)
	return textResult(fmt.Sprintf("Created project %q (%s)%s", st.ProjectName, id, activeSuffix(h.Session))), nil, nil
}

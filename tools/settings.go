package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/settings"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SettingsArgs defines the input parameters for the studio_settings tool.
// Omitted fields are left unchanged.
type SettingsArgs struct {
	AutoSave *bool  `json:"autosave,omitempty" jsonschema:"Enable or disable autosave"`
	Theme    string `json:"theme,omitempty" jsonschema:"dark or light"`
}

// SettingsHandler reads and updates user preferences.
type SettingsHandler struct {
	Session *session.Session
	Logger  *slog.Logger
}

// Handle processes a studio_settings request.
func (h *SettingsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SettingsArgs) (*mcp.CallToolResult, any, error) {
	if args.Theme != "" {
		theme, err := settings.ParseTheme(args.Theme)
		if err != nil {
			metrics.RecordToolCall("studio_settings", false)
			return errorResult("%v", err), nil, nil
		}
		h.Session.SetTheme(theme)
	}
	if args.AutoSave != nil {
		if err := h.Session.SetAutoSave(*args.AutoSave); err != nil {
			metrics.RecordToolCall("studio_settings", false)
			h.Logger.Error("studio_settings failed", "error", err)
			return errorResult("could not store autosave preference: %v", err), nil, nil
		}
	}
	metrics.RecordToolCall("studio_settings", true)

	st := h.Session.Status()
	h.Logger.Info("studio_settings", "autosave", st.AutoSave, "theme", st.Theme)
	return textResult(fmt.Sprintf("Autosave: %s (delay %s)\nTheme: %s", onOff(st.AutoSave), st.AutoSaveDelay, st.Theme)), nil, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

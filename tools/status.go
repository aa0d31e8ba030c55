package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/lexandro/codestudio-mcp/account"
	"github.com/lexandro/codestudio-mcp/index"
	"github.com/lexandro/codestudio-mcp/language"
	"github.com/lexandro/codestudio-mcp/session"
	"github.com/lexandro/codestudio-mcp/vfs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs defines the input parameters for the studio_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Session      *session.Session
	ContentIndex *index.ContentIndex
	Accounts     *account.Service
	StartTime    time.Time
	Logger       *slog.Logger
}

// Handle processes a studio_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	st := h.Session.Status()
	docCount := h.ContentIndex.DocumentCount()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("studio_status",
		"project", st.ProjectID,
		"files", st.Files,
		"dirty", st.Dirty,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== codestudio-mcp Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Project: %s (%s)\n", st.ProjectName, st.ProjectID))
	builder.WriteString(fmt.Sprintf("Created: %s, updated: %s\n", st.CreatedAt.Format(time.RFC3339), st.UpdatedAt.Format(time.RFC3339)))
	if st.ActiveFile != "" {
		builder.WriteString(fmt.Sprintf("Active file: %s\n", st.ActiveFile))
	} else {
		builder.WriteString("Active file: none\n")
	}
	builder.WriteString(fmt.Sprintf("Entries: %d files, %d folders\n", st.Files, st.Folders))
	builder.WriteString(fmt.Sprintf("Content-indexed documents: %d\n", docCount))
	builder.WriteString(fmt.Sprintf("Unsaved changes: %s\n", yesNo(st.Dirty)))
	if !st.LastSave.IsZero() {
		builder.WriteString(fmt.Sprintf("Last save: %s\n", st.LastSave.Format(time.RFC3339)))
	}
	if st.LastSaveError != "" {
		builder.WriteString(fmt.Sprintf("Last save error: %s\n", st.LastSaveError))
	}
	builder.WriteString(fmt.Sprintf("Autosave: %s (delay %s)\n", onOff(st.AutoSave), st.AutoSaveDelay))
	builder.WriteString(fmt.Sprintf("Theme: %s\n", st.Theme))

	if h.Accounts != nil {
		current, ok, err := h.Accounts.Current()
		switch {
		case err != nil:
			builder.WriteString(fmt.Sprintf("Account: unavailable (%v)\n", err))
		case ok:
			builder.WriteString(fmt.Sprintf("Account: %s <%s>\n", current.Username, current.Email))
		default:
			builder.WriteString("Account: not logged in\n")
		}
	}

	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatFileSize(int64(memStats.Alloc)),
		formatFileSize(int64(memStats.HeapAlloc)),
	))

	langCounts := languageCounts(h.Session.Tree().Nodes())
	if len(langCounts) > 0 {
		builder.WriteString("\nLanguages:\n")

		type langEntry struct {
			lang  string
			count int
		}
		entries := make([]langEntry, 0, len(langCounts))
		for lang, count := range langCounts {
			entries = append(entries, langEntry{lang, count})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].count != entries[j].count {
				return entries[i].count > entries[j].count
			}
			return entries[i].lang < entries[j].lang
		})

		for _, entry := range entries {
			builder.WriteString(fmt.Sprintf("  %-20s %d files\n", entry.lang, entry.count))
		}
	}

	return textResult(builder.String()), nil, nil
}

func languageCounts(nodes []vfs.FileNode) map[string]int {
	counts := make(map[string]int)
	for _, node := range nodes {
		if node.IsFile() {
			counts[language.DetectLanguage(node.Path)]++
		}
	}
	return counts
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

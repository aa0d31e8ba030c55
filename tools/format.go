package tools

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lexandro/codestudio-mcp/index"
	"github.com/lexandro/codestudio-mcp/language"
	"github.com/lexandro/codestudio-mcp/vfs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// FormatSearchResults groups matches by file, with line numbers and context.
func FormatSearchResults(results []index.FileMatches, totalMatches int) string {
	if len(results) == 0 {
		return "No matches found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matches in %d files:\n", totalMatches, len(results))
	for _, result := range results {
		fmt.Fprintf(&b, "\n── %s ──\n", result.Path)
		for _, match := range result.Matches {
			for _, line := range match.ContextBefore {
				fmt.Fprintf(&b, "  %s\n", line)
			}
			fmt.Fprintf(&b, "  %d: %s\n", match.LineNumber, match.LineText)
			for _, line := range match.ContextAfter {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return b.String()
}

// FormatNodes lists tree nodes. Files show language, size and line count.
func FormatNodes(nodes []vfs.FileNode, nameOnly bool) string {
	if len(nodes) == 0 {
		return "No files matched."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d entries:\n\n", len(nodes))
	for _, node := range nodes {
		switch {
		case nameOnly:
			b.WriteString(node.Path)
		case node.Type == vfs.TypeFolder:
			fmt.Fprintf(&b, "  %s/  (folder)", node.Path)
		default:
			fmt.Fprintf(&b, "  %s  (%s, %s, %d lines)",
				node.Path,
				language.DetectLanguage(node.Path),
				formatFileSize(int64(len(node.Content))),
				lineCount(node.Content),
			)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatFileContent renders content with right-aligned line numbers.
func FormatFileContent(path string, hint language.Hint, content string) string {
	lines := strings.Split(content, "\n")
	width := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	fmt.Fprintf(&b, "── %s (%s, %d lines) ──\n", path, hint, len(lines))
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d│ %s\n", width, i+1, line)
	}
	return b.String()
}

// FormatPreview lists the files handed to the preview renderer.
func FormatPreview(files map[string]string, includeContent bool) string {
	if len(files) == 0 {
		return "Preview is empty."
	}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, p := range paths {
		if includeContent {
			fmt.Fprintf(&b, "── %s ──\n%s\n", p, files[p])
		} else {
			fmt.Fprintf(&b, "  %s  (%s)\n", p, formatFileSize(int64(len(files[p]))))
		}
	}
	return b.String()
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func formatDuration(d time.Duration) string {
	s := int(d.Seconds())
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm%ds", s/60, s%60)
	default:
		return fmt.Sprintf("%dh%dm", s/3600, (s%3600)/60)
	}
}

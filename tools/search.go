package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/codestudio-mcp/index"
	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgs defines the input parameters for the studio_search tool.
type SearchArgs struct {
	Query        string `json:"query" jsonschema:"Search query. Plain text for word match, quoted for exact phrase, /regex/ for regular expression"`
	FilePath     string `json:"filePath,omitempty" jsonschema:"Exact project path to search in (overrides fileGlob), e.g. /App.tsx"`
	FileGlob     string `json:"fileGlob,omitempty" jsonschema:"Optional glob pattern to filter files (e.g. **/*.tsx)"`
	MaxResults   int    `json:"maxResults,omitempty" jsonschema:"Maximum number of file results to return (default 50)"`
	ContextLines int    `json:"contextLines,omitempty" jsonschema:"Number of context lines before and after each match (default 2)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	ContentIndex *index.ContentIndex
	MaxResults   int
	Logger       *slog.Logger
}

// Handle processes a studio_search request.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("studio_search called with empty query")
		return errorResult("query parameter is required"), nil, nil
	}

	contextLines := args.ContextLines
	if contextLines == 0 {
		contextLines = 2
	}
	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.MaxResults
	}

	results, totalMatches, err := h.ContentIndex.Search(index.SearchOptions{
		Query:        args.Query,
		FilePath:     args.FilePath,
		FileGlob:     args.FileGlob,
		MaxResults:   maxResults,
		ContextLines: contextLines,
	})
	metrics.RecordToolCall("studio_search", err == nil)
	if err != nil {
		h.Logger.Error("studio_search failed", "query", args.Query, "error", err)
		return errorResult("search failed: %v", err), nil, nil
	}

	h.Logger.Info("studio_search",
		"query", args.Query,
		"files", len(results),
		"matches", totalMatches,
		"elapsed", time.Since(start),
	)

	output := FormatSearchResults(results, totalMatches)
	output += fmt.Sprintf("\n(search took %s)", time.Since(start).Round(time.Microsecond))
	return textResult(output), nil, nil
}

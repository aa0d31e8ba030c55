package index

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
)

// SearchOptions configures a content search.
//
// Query syntax: plain words match any word, "quoted text" matches the exact
// phrase and /pattern/ is a regular expression.
type SearchOptions struct {
	Query        string
	FilePath     string // restrict to one file; overrides FileGlob
	FileGlob     string // doublestar pattern against the path without leading "/"
	MaxResults   int    // maximum number of files, default 50
	ContextLines int
}

// FileMatches are the matching lines of one file.
type FileMatches struct {
	Path    string
	Matches []LineMatch
}

// LineMatch is one matching line, 1-based, with optional context.
type LineMatch struct {
	LineNumber    int
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

type parsedQuery struct {
	bleve query.Query
	line  func(string) bool
}

func parseQuery(raw string) (parsedQuery, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return parsedQuery{}, fmt.Errorf("empty query")
	}

	if len(raw) > 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		pattern := raw[1 : len(raw)-1]
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return parsedQuery{}, fmt.Errorf("invalid regex %q: %w", pattern, err)
		}
		return parsedQuery{bleve: bleve.NewRegexpQuery(strings.ToLower(pattern)), line: re.MatchString}, nil
	}

	if len(raw) > 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		phrase := raw[1 : len(raw)-1]
		needle := strings.ToLower(phrase)
		return parsedQuery{
			bleve: bleve.NewMatchPhraseQuery(phrase),
			line:  func(l string) bool { return strings.Contains(strings.ToLower(l), needle) },
		}, nil
	}

	terms := strings.Fields(strings.ToLower(raw))
	return parsedQuery{
		bleve: bleve.NewMatchQuery(raw),
		line: func(l string) bool {
			lower := strings.ToLower(l)
			for _, term := range terms {
				if strings.Contains(lower, term) {
					return true
				}
			}
			return false
		},
	}, nil
}

// Search runs a query and returns matching files in relevance order together
// with the total number of matching lines.
func (ci *ContentIndex) Search(opts SearchOptions) ([]FileMatches, int, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	q, err := parseQuery(opts.Query)
	if err != nil {
		return nil, 0, err
	}
	glob := strings.TrimPrefix(strings.ReplaceAll(opts.FileGlob, "\\", "/"), "/")
	if glob != "" && !doublestar.ValidatePattern(glob) {
		return nil, 0, fmt.Errorf("invalid glob pattern: %s", opts.FileGlob)
	}

	ci.mu.RLock()
	defer ci.mu.RUnlock()

	req := bleve.NewSearchRequest(q.bleve)
	// Over-fetch since hits are filtered afterwards.
	req.Size = opts.MaxResults * 5
	hits, err := ci.index.Search(req)
	if err != nil {
		return nil, 0, fmt.Errorf("searching index: %w", err)
	}

	var results []FileMatches
	total := 0
	for _, hit := range hits.Hits {
		path := hit.ID
		content, ok := ci.contents[path]
		if !ok || !acceptPath(path, opts.FilePath, glob) {
			continue
		}
		lines := matchLines(content, q.line, opts.ContextLines)
		if len(lines) == 0 {
			continue
		}
		total += len(lines)
		results = append(results, FileMatches{Path: path, Matches: lines})
		if len(results) >= opts.MaxResults {
			break
		}
	}
	return results, total, nil
}

func acceptPath(path, only, glob string) bool {
	if only != "" {
		return path == only
	}
	if glob == "" {
		return true
	}
	matched, err := doublestar.Match(glob, strings.TrimPrefix(path, "/"))
	return err == nil && matched
}

func matchLines(content string, match func(string) bool, context int) []LineMatch {
	lines := strings.Split(content, "\n")
	var out []LineMatch
	for i, line := range lines {
		if !match(line) {
			continue
		}
		m := LineMatch{LineNumber: i + 1, LineText: line}
		if context > 0 {
			m.ContextBefore = append([]string(nil), lines[max(0, i-context):i]...)
			m.ContextAfter = append([]string(nil), lines[i+1:min(len(lines), i+context+1)]...)
		}
		out = append(out, m)
	}
	return out
}

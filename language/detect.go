// Package language maps file paths to editor language hints and display names.
package language

import (
	"path"
	"strings"
)

// Hint is the language identifier handed to the text editor.
type Hint string

const (
	HintTypeScript Hint = "typescript"
	HintJavaScript Hint = "javascript"
	HintCSS        Hint = "css"
	HintHTML       Hint = "html"
	HintJSON       Hint = "json"
	HintPlaintext  Hint = "plaintext"
)

// editorHints covers what the editor highlights; anything else is plaintext.
// JSX is edited in TypeScript mode like TSX.
var editorHints = map[string]Hint{
	"tsx":  HintTypeScript,
	"jsx":  HintTypeScript,
	"ts":   HintTypeScript,
	"js":   HintJavaScript,
	"css":  HintCSS,
	"html": HintHTML,
	"json": HintJSON,
}

// EditorHint returns the editor language for a file path.
func EditorHint(filePath string) Hint {
	if hint, ok := editorHints[extension(filePath)]; ok {
		return hint
	}
	return HintPlaintext
}

// displayNames maps extensions to human-readable names for listings and status.
var displayNames = map[string]string{
	"js": "JavaScript", "jsx": "JavaScript", "mjs": "JavaScript", "cjs": "JavaScript",
	"ts": "TypeScript", "tsx": "TypeScript", "mts": "TypeScript", "cts": "TypeScript",
	"html": "HTML", "htm": "HTML",
	"css": "CSS", "scss": "SCSS", "sass": "Sass", "less": "Less",
	"json": "JSON", "jsonc": "JSON",
	"md": "Markdown", "mdx": "Markdown",
	"svg": "SVG",
	"vue": "Vue", "svelte": "Svelte",
	"yaml": "YAML", "yml": "YAML",
	"txt": "Text",
	"go":  "Go",
	"py":  "Python",
}

// DetectLanguage returns a display name for filePath, or "Unknown".
func DetectLanguage(filePath string) string {
	ext := extension(filePath)
	if ext == "" {
		switch strings.ToLower(path.Base(filePath)) {
		case ".gitignore":
			return "Git Config"
		case ".env", ".env.local":
			return "Env"
		}
		return "Unknown"
	}
	if name, ok := displayNames[ext]; ok {
		return name
	}
	return "Unknown"
}

func extension(filePath string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filePath), "."))
}

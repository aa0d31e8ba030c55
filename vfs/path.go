package vfs

import (
	"fmt"
	"path"
	"strings"
)

// Separator is the path separator used by every node path.
const Separator = "/"

// ValidatePath checks that p is absolute, clean, not the root and has no trailing separator.
func ValidatePath(p string) error {
	if p == "" || p == Separator {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	if !strings.HasPrefix(p, Separator) {
		return fmt.Errorf("%w: %q must start with %s", ErrInvalidPath, p, Separator)
	}
	if path.Clean(p) != p {
		return fmt.Errorf("%w: %q is not clean", ErrInvalidPath, p)
	}
	return nil
}

// NormalizePath turns user input such as "src/App.tsx" or "/src//App.tsx/"
// into a valid node path.
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", Separator))
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if !strings.HasPrefix(p, Separator) {
		p = Separator + p
	}
	p = path.Clean(p)
	if err := ValidatePath(p); err != nil {
		return "", err
	}
	return p, nil
}

// LastSegment returns the part of p after the final separator.
func LastSegment(p string) string {
	return p[strings.LastIndex(p, Separator)+1:]
}

package organize

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Filter decides whether a path should be processed at all. Checks run at
// fire time rather than notification time since a file may grow or vanish
// during the quiet window.
type Filter struct {
	patterns []string
	maxBytes int64
}

// NewFilter builds a Filter from ignore patterns and a size ceiling in bytes.
// A non-positive ceiling disables the size check.
func NewFilter(patterns []string, maxBytes int64) *Filter {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			cleaned = append(cleaned, strings.ToLower(trimmed))
		}
	}
	return &Filter{patterns: cleaned, maxBytes: maxBytes}
}

// MatchesIgnore reports whether the filename matches any ignore pattern.
// Patterns are prefix-globs (*suffix), suffix-globs (prefix*), or plain
// substrings; matching is case-insensitive.
func (f *Filter) MatchesIgnore(name string) bool {
	name = strings.ToLower(name)
	for _, pattern := range f.patterns {
		switch {
		case strings.HasPrefix(pattern, "*"):
			if strings.HasSuffix(name, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, "*"):
			if strings.HasPrefix(name, pattern[:len(pattern)-1]) {
				return true
			}
		default:
			if strings.Contains(name, pattern) {
				return true
			}
		}
	}
	return false
}

// Check stats path and applies the ignore and size rules. It returns
// ErrSourceVanished when the file no longer exists, ErrIgnored when a rule
// excludes it, and nil when the file should be processed.
func (f *Filter) Check(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrSourceVanished
		}
		return Wrap(ErrDestinationUnwritable, "filter", "stat source", err)
	}
	if !info.Mode().IsRegular() {
		return Wrap(ErrIgnored, "filter", "not a regular file", nil)
	}
	if f.MatchesIgnore(filepath.Base(path)) {
		return Wrap(ErrIgnored, "filter", "matched ignore pattern", nil)
	}
	if f.maxBytes > 0 && info.Size() > f.maxBytes {
		return Wrap(ErrIgnored, "filter", "exceeds size ceiling", nil)
	}
	return nil
}

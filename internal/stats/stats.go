// Package stats aggregates organization metrics from the destination tree.
package stats

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fileninja/internal/logging"
)

// CategoryStats accumulates file count and total size for one folder.
type CategoryStats struct {
	Count int64 `json:"count"`
	Size  int64 `json:"size"`
}

// Summary is a point-in-time snapshot of the organized tree.
type Summary struct {
	TotalFiles int64                    `json:"total_files"`
	TotalSize  int64                    `json:"total_size"`
	ByCategory map[string]CategoryStats `json:"by_category"`
}

// Categories returns the folder names in the summary, sorted.
func (s Summary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aggregator walks the destination tree on demand. Read-only; files that
// disappear mid-walk are skipped, never fatal.
type Aggregator struct {
	root   string
	logger *slog.Logger
}

// NewAggregator builds an Aggregator over the organized folder.
func NewAggregator(root string, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		root:   root,
		logger: logging.NewComponentLogger(logger, "stats"),
	}
}

// Collect walks the tree and attributes each file to the category folder it
// resides in. A missing or empty root yields an empty summary.
func (a *Aggregator) Collect(ctx context.Context) Summary {
	summary := Summary{ByCategory: make(map[string]CategoryStats)}

	if info, err := os.Stat(a.root); err != nil || !info.IsDir() {
		return summary
	}

	_ = filepath.WalkDir(a.root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fs.SkipAll
		}
		if err != nil {
			// Permission failure or a file vanishing mid-walk; keep going.
			return nil
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}

		category := a.categoryFor(path)
		current := summary.ByCategory[category]
		current.Count++
		current.Size += info.Size()
		summary.ByCategory[category] = current
		summary.TotalFiles++
		summary.TotalSize += info.Size()
		return nil
	})

	return summary
}

// categoryFor derives the category from the first path element under the
// root; files sitting directly in the root fall under "Unsorted".
func (a *Aggregator) categoryFor(path string) string {
	rel, err := filepath.Rel(a.root, path)
	if err != nil {
		return "Unsorted"
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return "Unsorted"
	}
	return parts[0]
}

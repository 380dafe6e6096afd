package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"fileninja/internal/logging"
)

// ScanSummary reports the outcome of an existing-file scan.
type ScanSummary struct {
	Organized int `json:"organized"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Scanner walks directories and feeds every regular file through the
// coordinator's filter-and-relocate path synchronously, without debouncing.
// Used for one-shot "organize what's already there" runs.
type Scanner struct {
	coordinator *Coordinator
	logger      *slog.Logger
}

// NewScanner builds a Scanner sharing the coordinator's processing rules.
func NewScanner(coordinator *Coordinator, logger *slog.Logger) *Scanner {
	return &Scanner{
		coordinator: coordinator,
		logger:      logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan processes every regular file under the given roots. Missing roots are
// skipped with a warning; per-file failures are counted and the walk
// continues.
func (s *Scanner) Scan(ctx context.Context, roots []string) ScanSummary {
	var summary ScanSummary
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return summary
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			s.logger.Warn("skipping missing scan root", logging.String(logging.FieldPath, root))
			continue
		}
		s.scanRoot(ctx, root, &summary)
	}
	s.logger.Info("scan complete",
		logging.Int("organized", summary.Organized),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary
}

func (s *Scanner) scanRoot(ctx context.Context, root string, summary *ScanSummary) {
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fs.SkipAll
		}
		if err != nil {
			summary.Failed++
			return nil
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		moved, procErr := s.coordinator.Process(ctx, path, KindExisting)
		switch {
		case procErr != nil:
			summary.Failed++
		case moved:
			summary.Organized++
		default:
			summary.Skipped++
		}
		return nil
	})
}

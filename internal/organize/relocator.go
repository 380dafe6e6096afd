package organize

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fileninja/internal/classify"
	"fileninja/internal/fileutil"
	"fileninja/internal/logging"
)

// MoveRecord describes one successful relocation, handed to the audit
// recorder. Produced exactly once per move.
type MoveRecord struct {
	OriginalName string
	NewPath      string
	Category     string
	SizeBytes    int64
	Tags         []string
	MovedAt      time.Time
}

// AuditRecorder persists move records. Failures are logged and swallowed;
// they never undo a completed move.
type AuditRecorder interface {
	Record(ctx context.Context, record MoveRecord) error
}

// Result reports where a file ended up and how it was classified.
type Result struct {
	Destination    string
	Classification classify.Classification
	SizeBytes      int64
}

// Relocator moves a single file into the organized tree: classify, pick the
// destination folder, resolve naming conflicts, move, record.
type Relocator struct {
	root       string
	classifier *classify.Classifier
	resolver   *ConflictResolver
	audit      AuditRecorder
	logger     *slog.Logger
}

// NewRelocator builds a Relocator rooted at destRoot. The audit recorder may
// be nil when no history should be kept.
func NewRelocator(destRoot string, classifier *classify.Classifier, audit AuditRecorder, logger *slog.Logger) *Relocator {
	return &Relocator{
		root:       destRoot,
		classifier: classifier,
		resolver:   NewConflictResolver(),
		audit:      audit,
		logger:     logging.NewComponentLogger(logger, "relocator"),
	}
}

// DestinationFolder returns the folder name a classification routes to: a
// `<Tag>_Files` folder when a priority tag matched, the category otherwise.
func (r *Relocator) DestinationFolder(result classify.Classification) string {
	if tag, ok := r.classifier.PriorityTag(result); ok {
		return cases.Title(language.English).String(tag) + "_Files"
	}
	return result.Category
}

// Relocate moves source into the organized tree and returns the final
// destination. The source must still exist as a regular file; vanished
// sources return ErrSourceVanished, which callers treat as a silent skip.
func (r *Relocator) Relocate(ctx context.Context, source string) (Result, error) {
	info, err := os.Lstat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, ErrSourceVanished
		}
		return Result{}, Wrap(ErrDestinationUnwritable, "relocate", "stat source", err)
	}
	if !info.Mode().IsRegular() {
		return Result{}, ErrSourceVanished
	}

	classification := r.classifier.Classify(source)
	folder := r.DestinationFolder(classification)
	destDir := filepath.Join(r.root, folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Result{}, Wrap(ErrDestinationUnwritable, "relocate", "create destination folder", err)
	}

	desired := filepath.Join(destDir, filepath.Base(source))
	destination, err := r.resolver.Resolve(desired)
	if err != nil {
		return Result{}, err
	}

	if err := fileutil.MoveFile(source, destination); err != nil {
		return Result{}, Wrap(ErrDestinationUnwritable, "relocate", "move file", err)
	}

	result := Result{
		Destination:    destination,
		Classification: classification,
		SizeBytes:      info.Size(),
	}

	if r.audit != nil {
		record := MoveRecord{
			OriginalName: filepath.Base(source),
			NewPath:      destination,
			Category:     classification.Category,
			SizeBytes:    info.Size(),
			Tags:         classification.Tags,
			MovedAt:      time.Now().UTC(),
		}
		if err := r.audit.Record(ctx, record); err != nil {
			r.logger.Warn("audit record failed",
				logging.String(logging.FieldPath, destination),
				logging.Error(err),
			)
		}
	}

	r.logger.Info("file organized",
		logging.String(logging.FieldPath, source),
		logging.String("destination", destination),
		logging.String(logging.FieldCategory, classification.Category),
		logging.Int64("size_bytes", info.Size()),
	)
	return result, nil
}

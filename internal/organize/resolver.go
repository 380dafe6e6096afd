package organize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxConflictAttempts = 1000

// ConflictResolver turns a desired destination path into one that does not
// collide with an existing filesystem entry. The existence checks are
// best-effort; a concurrent creator can still win the race (see MoveFile's
// caller for the accepted TOCTOU window).
type ConflictResolver struct {
	now func() time.Time
}

// NewConflictResolver returns a resolver using the wall clock for the
// timestamp fallback.
func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{now: time.Now}
}

// Resolve returns desired unchanged when it is free, otherwise the first
// available `<stem>_<n><ext>` variant. After 1000 occupied variants it falls
// back to `<stem>_<timestamp><ext>`; if even that name is taken the resolver
// gives up with ErrConflictExhausted.
func (r *ConflictResolver) Resolve(desired string) (string, error) {
	if !exists(desired) {
		return desired, nil
	}

	dir := filepath.Dir(desired)
	base := filepath.Base(desired)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; n <= maxConflictAttempts; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if !exists(candidate) {
			return candidate, nil
		}
	}

	stamp := r.now().Format("20060102_150405")
	fallback := filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))
	if exists(fallback) {
		return "", Wrap(ErrConflictExhausted, "resolve", fmt.Sprintf("timestamp fallback %q already exists", filepath.Base(fallback)), nil)
	}
	return fallback, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

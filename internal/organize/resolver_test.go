package organize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveFreePathUnchanged(t *testing.T) {
	resolver := NewConflictResolver()
	desired := filepath.Join(t.TempDir(), "report.docx")

	got, err := resolver.Resolve(desired)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != desired {
		t.Fatalf("Resolve = %q, want %q", got, desired)
	}
}

func TestResolveAppendsCounter(t *testing.T) {
	dir := t.TempDir()
	resolver := NewConflictResolver()
	desired := filepath.Join(dir, "report.docx")
	touch(t, desired)

	got, err := resolver.Resolve(desired)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != filepath.Join(dir, "report_1.docx") {
		t.Fatalf("Resolve = %q, want report_1.docx", got)
	}

	touch(t, got)
	got, err = resolver.Resolve(desired)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != filepath.Join(dir, "report_2.docx") {
		t.Fatalf("Resolve = %q, want report_2.docx", got)
	}
}

func TestResolveNeverReturnsExisting(t *testing.T) {
	dir := t.TempDir()
	resolver := NewConflictResolver()
	desired := filepath.Join(dir, "note.txt")
	touch(t, desired)

	seen := map[string]struct{}{desired: {}}
	for i := 0; i < 50; i++ {
		got, err := resolver.Resolve(desired)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("Resolve returned an occupied path %q", got)
		}
		seen[got] = struct{}{}
		touch(t, got)
	}
}

func TestResolveExhaustsIntoTimestampFallback(t *testing.T) {
	dir := t.TempDir()
	resolver := NewConflictResolver()
	desired := filepath.Join(dir, "doc.pdf")
	touch(t, desired)
	for n := 1; n <= maxConflictAttempts; n++ {
		touch(t, filepath.Join(dir, fmt.Sprintf("doc_%d.pdf", n)))
	}

	got, err := resolver.Resolve(desired)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	pattern := regexp.MustCompile(`^doc_\d{8}_\d{6}\.pdf$`)
	if !pattern.MatchString(filepath.Base(got)) {
		t.Fatalf("fallback name = %q, want timestamp suffix", filepath.Base(got))
	}
}

func TestResolveFallbackCollisionIsFatal(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)
	resolver := &ConflictResolver{now: func() time.Time { return fixed }}

	desired := filepath.Join(dir, "doc.pdf")
	touch(t, desired)
	for n := 1; n <= maxConflictAttempts; n++ {
		touch(t, filepath.Join(dir, fmt.Sprintf("doc_%d.pdf", n)))
	}
	touch(t, filepath.Join(dir, "doc_20240309_143005.pdf"))

	if _, err := resolver.Resolve(desired); !errors.Is(err, ErrConflictExhausted) {
		t.Fatalf("err = %v, want ErrConflictExhausted", err)
	}
}

package stats_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fileninja/internal/logging"
	"fileninja/internal/stats"
)

func write(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectAggregatesByFolder(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "PDFs", "a.pdf"), 100)
	write(t, filepath.Join(root, "PDFs", "b.pdf"), 50)
	write(t, filepath.Join(root, "Finance_Files", "invoice.pdf"), 10)
	write(t, filepath.Join(root, "Finance_Files", "deep", "old.pdf"), 5)
	write(t, filepath.Join(root, "loose.txt"), 1)

	aggregator := stats.NewAggregator(root, logging.NewNop())
	summary := aggregator.Collect(context.Background())

	if summary.TotalFiles != 5 {
		t.Fatalf("total files = %d, want 5", summary.TotalFiles)
	}
	if summary.TotalSize != 166 {
		t.Fatalf("total size = %d, want 166", summary.TotalSize)
	}
	if got := summary.ByCategory["PDFs"]; got.Count != 2 || got.Size != 150 {
		t.Fatalf("PDFs = %+v", got)
	}
	if got := summary.ByCategory["Finance_Files"]; got.Count != 2 || got.Size != 15 {
		t.Fatalf("Finance_Files = %+v", got)
	}
	if got := summary.ByCategory["Unsorted"]; got.Count != 1 {
		t.Fatalf("Unsorted = %+v", got)
	}

	want := []string{"Finance_Files", "PDFs", "Unsorted"}
	if !reflect.DeepEqual(summary.Categories(), want) {
		t.Fatalf("categories = %v, want %v", summary.Categories(), want)
	}
}

func TestCollectMissingRoot(t *testing.T) {
	aggregator := stats.NewAggregator(filepath.Join(t.TempDir(), "missing"), logging.NewNop())
	summary := aggregator.Collect(context.Background())
	if summary.TotalFiles != 0 || len(summary.ByCategory) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

package organize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fileninja/internal/classify"
	"fileninja/internal/config"
	"fileninja/internal/logging"
)

type stubAudit struct {
	records []MoveRecord
	err     error
}

func (s *stubAudit) Record(_ context.Context, record MoveRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func newRelocator(t *testing.T, audit AuditRecorder) (*Relocator, string, string) {
	t.Helper()
	base := t.TempDir()
	source := filepath.Join(base, "incoming")
	dest := filepath.Join(base, "organized")
	for _, dir := range []string{source, dest} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	classifier := classify.New(config.DefaultRules())
	return NewRelocator(dest, classifier, audit, logging.NewNop()), source, dest
}

func TestRelocatePriorityTagRouting(t *testing.T) {
	audit := &stubAudit{}
	relocator, source, dest := newRelocator(t, audit)

	path := filepath.Join(source, "invoice_2023.pdf")
	if err := os.WriteFile(path, []byte("pdf body"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := relocator.Relocate(context.Background(), path)
	if err != nil {
		t.Fatalf("Relocate returned error: %v", err)
	}

	want := filepath.Join(dest, "Finance_Files", "invoice_2023.pdf")
	if result.Destination != want {
		t.Fatalf("destination = %q, want %q", result.Destination, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}

	wantTags := []string{"dated", "finance", "type_pdf"}
	if !reflect.DeepEqual(result.Classification.Tags, wantTags) {
		t.Fatalf("tags = %v, want %v", result.Classification.Tags, wantTags)
	}

	if len(audit.records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(audit.records))
	}
	record := audit.records[0]
	if record.OriginalName != "invoice_2023.pdf" || record.NewPath != want {
		t.Fatalf("unexpected audit record: %+v", record)
	}
	// History keeps the extension category even when priority routing picked
	// the folder; the folder is recoverable from NewPath.
	if record.Category != "PDFs" {
		t.Fatalf("record category = %q, want PDFs", record.Category)
	}
	if record.SizeBytes != int64(len("pdf body")) {
		t.Fatalf("record size = %d", record.SizeBytes)
	}
}

func TestRelocateCategoryRouting(t *testing.T) {
	relocator, source, dest := newRelocator(t, nil)

	path := filepath.Join(source, "diagram.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := relocator.Relocate(context.Background(), path)
	if err != nil {
		t.Fatalf("Relocate returned error: %v", err)
	}
	if want := filepath.Join(dest, "Images", "diagram.png"); result.Destination != want {
		t.Fatalf("destination = %q, want %q", result.Destination, want)
	}
}

func TestRelocateConflictSuffix(t *testing.T) {
	relocator, source, dest := newRelocator(t, nil)

	// Two same-named files arriving in sequence must both survive, the second
	// under a numbered suffix. "summary" carries no tag keyword, so both route
	// to the plain extension category.
	path := filepath.Join(source, "summary.docx")
	if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	first, err := relocator.Relocate(context.Background(), path)
	if err != nil {
		t.Fatalf("Relocate returned error: %v", err)
	}
	if want := filepath.Join(dest, "Documents", "summary.docx"); first.Destination != want {
		t.Fatalf("destination = %q, want %q", first.Destination, want)
	}

	if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := relocator.Relocate(context.Background(), path)
	if err != nil {
		t.Fatalf("Relocate returned error: %v", err)
	}
	if want := filepath.Join(dest, "Documents", "summary_1.docx"); second.Destination != want {
		t.Fatalf("destination = %q, want %q", second.Destination, want)
	}

	got, err := os.ReadFile(filepath.Join(dest, "Documents", "summary.docx"))
	if err != nil || string(got) != "first" {
		t.Fatalf("original occupant changed: %q, %v", got, err)
	}
}

func TestRelocateVanishedSource(t *testing.T) {
	relocator, source, _ := newRelocator(t, nil)

	_, err := relocator.Relocate(context.Background(), filepath.Join(source, "gone.txt"))
	if !errors.Is(err, ErrSourceVanished) {
		t.Fatalf("err = %v, want ErrSourceVanished", err)
	}
}

func TestRelocateAuditFailureDoesNotUndoMove(t *testing.T) {
	audit := &stubAudit{err: errors.New("db offline")}
	relocator, source, dest := newRelocator(t, audit)

	path := filepath.Join(source, "notes.txt")
	if err := os.WriteFile(path, []byte("n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := relocator.Relocate(context.Background(), path)
	if err != nil {
		t.Fatalf("Relocate returned error despite audit-only failure: %v", err)
	}
	want := filepath.Join(dest, "Education_Files", "notes.txt")
	if result.Destination != want {
		t.Fatalf("destination = %q, want %q", result.Destination, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
}

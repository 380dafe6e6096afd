package testsupport

import (
	"context"
	"testing"
	"time"

	"fileninja/internal/config"
	"fileninja/internal/history"
	"fileninja/internal/organize"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordMove inserts a movement log entry for tests using the provided store.
func RecordMove(t testing.TB, store *history.Store, name, newPath, category string, tags ...string) {
	t.Helper()

	record := organize.MoveRecord{
		OriginalName: name,
		NewPath:      newPath,
		Category:     category,
		SizeBytes:    1,
		Tags:         tags,
		MovedAt:      time.Now().UTC(),
	}
	if err := store.Record(context.Background(), record); err != nil {
		t.Fatalf("store.Record: %v", err)
	}
}

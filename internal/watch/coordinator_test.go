package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fileninja/internal/logging"
	"fileninja/internal/organize"
)

type recordingRelocator struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *recordingRelocator) Relocate(_ context.Context, path string) (organize.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, path)
	if r.err != nil {
		return organize.Result{}, r.err
	}
	return organize.Result{Destination: path + ".moved"}, nil
}

func (r *recordingRelocator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestCoordinator(quiet time.Duration, relocator Relocator) *Coordinator {
	return NewCoordinator(quiet, organize.NewFilter(nil, 0), relocator, logging.NewNop())
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func existingFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNotifyDebouncesBurst(t *testing.T) {
	relocator := &recordingRelocator{}
	coordinator := newTestCoordinator(50*time.Millisecond, relocator)
	path := existingFile(t)

	for i := 0; i < 10; i++ {
		coordinator.Notify(path, KindCreated)
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, time.Second, func() bool { return relocator.count() > 0 })
	// Allow any stray timers to fire.
	time.Sleep(100 * time.Millisecond)

	if got := relocator.count(); got != 1 {
		t.Fatalf("relocations = %d, want exactly 1", got)
	}
	if coordinator.PendingCount() != 0 {
		t.Fatalf("pending = %d after settle", coordinator.PendingCount())
	}
}

func TestNotifyReplacementKeepsLatestKind(t *testing.T) {
	relocator := &recordingRelocator{}
	coordinator := newTestCoordinator(40*time.Millisecond, relocator)
	path := existingFile(t)

	coordinator.Notify(path, KindCreated)
	coordinator.Notify(path, KindMoved)

	coordinator.mu.Lock()
	entry, ok := coordinator.pending[path]
	var kind EventKind
	if ok {
		kind = entry.kind
	}
	coordinator.mu.Unlock()

	if !ok {
		t.Fatal("expected a pending entry")
	}
	if kind != KindMoved {
		t.Fatalf("pending kind = %v, want KindMoved", kind)
	}

	waitFor(t, time.Second, func() bool { return relocator.count() == 1 })
}

func TestNotifyAfterProcessingStartsFreshCycle(t *testing.T) {
	relocator := &recordingRelocator{}
	coordinator := newTestCoordinator(30*time.Millisecond, relocator)
	path := existingFile(t)

	coordinator.Notify(path, KindCreated)
	waitFor(t, time.Second, func() bool { return relocator.count() == 1 })

	// A file re-created at the same path right after the first settle must be
	// organized again, not swallowed.
	if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	coordinator.Notify(path, KindCreated)

	waitFor(t, time.Second, func() bool { return relocator.count() == 2 })
	if got := relocator.count(); got != 2 {
		t.Fatalf("relocations = %d, want 2", got)
	}
}

func TestCancelAllStopsPendingTimers(t *testing.T) {
	relocator := &recordingRelocator{}
	coordinator := newTestCoordinator(50*time.Millisecond, relocator)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		coordinator.Notify(filepath.Join(t.TempDir(), name), KindCreated)
	}
	if coordinator.PendingCount() != 3 {
		t.Fatalf("pending = %d, want 3", coordinator.PendingCount())
	}

	coordinator.CancelAll()

	if coordinator.PendingCount() != 0 {
		t.Fatalf("pending = %d after cancel, want 0", coordinator.PendingCount())
	}
	time.Sleep(120 * time.Millisecond)
	if got := relocator.count(); got != 0 {
		t.Fatalf("relocations after cancel = %d, want 0", got)
	}
}

func TestProcessSkipsVanishedAndIgnored(t *testing.T) {
	relocator := &recordingRelocator{}
	coordinator := NewCoordinator(time.Millisecond, organize.NewFilter([]string{"*.tmp"}, 0), relocator, logging.NewNop())

	moved, err := coordinator.Process(context.Background(), filepath.Join(t.TempDir(), "gone.txt"), KindExisting)
	if err != nil || moved {
		t.Fatalf("vanished source: moved=%v err=%v", moved, err)
	}

	dir := t.TempDir()
	ignored := filepath.Join(dir, "x.tmp")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	moved, err = coordinator.Process(context.Background(), ignored, KindExisting)
	if err != nil || moved {
		t.Fatalf("ignored file: moved=%v err=%v", moved, err)
	}
	if relocator.count() != 0 {
		t.Fatalf("relocator invoked %d times for skipped files", relocator.count())
	}
}

func TestConcurrentNotifyDistinctPaths(t *testing.T) {
	relocator := &recordingRelocator{}
	coordinator := newTestCoordinator(20*time.Millisecond, relocator)

	var wg sync.WaitGroup
	paths := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		paths = append(paths, existingFile(t))
	}
	for _, path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				coordinator.Notify(p, KindCreated)
			}
		}(path)
	}
	wg.Wait()

	waitFor(t, 2*time.Second, func() bool { return relocator.count() == len(paths) })
	time.Sleep(60 * time.Millisecond)
	if got := relocator.count(); got != len(paths) {
		t.Fatalf("relocations = %d, want %d", got, len(paths))
	}
}

package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fileninja/internal/logging"
	"fileninja/internal/organize"
)

// Relocator is the downstream consumer of settled events.
type Relocator interface {
	Relocate(ctx context.Context, path string) (organize.Result, error)
}

type pendingEvent struct {
	timer *time.Timer
	kind  EventKind
}

// Coordinator collapses bursts of notifications for the same path into one
// relocation after a quiet period. It owns the only map mutated from multiple
// goroutines: the notification goroutine inserts and replaces entries while
// timer goroutines remove themselves. The lock is held for map mutation only,
// never across a relocation.
type Coordinator struct {
	quiet     time.Duration
	filter    *organize.Filter
	relocator Relocator
	logger    *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingEvent
}

// NewCoordinator builds a Coordinator with the given quiet period.
func NewCoordinator(quiet time.Duration, filter *organize.Filter, relocator Relocator, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		quiet:     quiet,
		filter:    filter,
		relocator: relocator,
		logger:    logging.NewComponentLogger(logger, "coordinator"),
		pending:   make(map[string]*pendingEvent),
	}
}

// Notify schedules path for processing after the quiet period. A notification
// for an already-scheduled path cancels the prior timer and restarts the
// window; the latest event kind wins. A notification for a path processed
// earlier starts a fresh cycle; stale events for a path that was just moved
// away settle harmlessly as vanished sources.
func (c *Coordinator) Notify(path string, kind EventKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.pending[path]; ok {
		existing.timer.Stop()
	}
	entry := &pendingEvent{kind: kind}
	entry.timer = time.AfterFunc(c.quiet, func() {
		c.fire(path, entry)
	})
	c.pending[path] = entry
}

// fire runs on the timer goroutine once the quiet period elapses uncancelled.
func (c *Coordinator) fire(path string, entry *pendingEvent) {
	c.mu.Lock()
	current, ok := c.pending[path]
	if !ok || current != entry {
		// Cancelled or replaced between the timer firing and acquiring the lock.
		c.mu.Unlock()
		return
	}
	delete(c.pending, path)
	kind := entry.kind
	c.mu.Unlock()

	_, _ = c.Process(context.Background(), path, kind)
}

// Process applies filtering and relocation for a single settled path. Shared
// by timer callbacks and the synchronous existing-file scan so both follow
// the same rules. moved reports whether the file was actually relocated; the
// error is nil for skips (vanished or ignored).
func (c *Coordinator) Process(ctx context.Context, path string, kind EventKind) (moved bool, err error) {
	if err := c.filter.Check(path); err != nil {
		switch {
		case errors.Is(err, organize.ErrSourceVanished):
			c.logger.Debug("source vanished before processing", logging.String(logging.FieldPath, path))
			return false, nil
		case errors.Is(err, organize.ErrIgnored):
			c.logger.Debug("file ignored",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			return false, nil
		default:
			c.logger.Warn("filter check failed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			return false, err
		}
	}

	if _, err := c.relocator.Relocate(ctx, path); err != nil {
		if errors.Is(err, organize.ErrSourceVanished) {
			c.logger.Debug("source vanished during relocation", logging.String(logging.FieldPath, path))
			return false, nil
		}
		c.logger.Error("relocation failed",
			logging.String(logging.FieldPath, path),
			logging.String("event_kind", kind.String()),
			logging.Error(err),
		)
		return false, err
	}
	return true, nil
}

// PendingCount returns the number of paths currently awaiting their quiet
// period.
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// CancelAll stops every pending timer. No callbacks fire for cancelled
// entries; relocations already in flight run to completion.
func (c *Coordinator) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, entry := range c.pending {
		entry.timer.Stop()
		delete(c.pending, path)
	}
}

package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"fileninja/internal/logging"
)

// ErrNoWatchRoots is returned by Start when not a single configured root
// could be registered with the notification source.
var ErrNoWatchRoots = errors.New("no valid watch roots")

// Session owns the monitored roots, the notification source, and the
// coordinator. It is the only component with start/stop lifecycle; per-file
// failures inside the stream never terminate it.
type Session struct {
	source      EventSource
	coordinator *Coordinator
	logger      *slog.Logger

	mu      sync.Mutex
	running bool
	roots   []string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSession wires a notification source to a coordinator.
func NewSession(source EventSource, coordinator *Coordinator, logger *slog.Logger) *Session {
	return &Session{
		source:      source,
		coordinator: coordinator,
		logger:      logging.NewComponentLogger(logger, "watcher"),
	}
}

// Start registers every root that exists and begins consuming events. Roots
// that do not exist are skipped with a warning. Start fails only when zero
// roots could be registered.
func (s *Session) Start(ctx context.Context, roots []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("watch session already running")
	}

	sessionID := uuid.NewString()
	registered := make([]string, 0, len(roots))
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			s.logger.Warn("skipping missing watch root",
				logging.String(logging.FieldPath, root),
				logging.String(logging.FieldSessionID, sessionID),
			)
			continue
		}
		if err := s.source.Watch(root); err != nil {
			s.logger.Warn("failed to register watch root",
				logging.String(logging.FieldPath, root),
				logging.Error(err),
			)
			continue
		}
		registered = append(registered, root)
	}
	if len(registered) == 0 {
		return ErrNoWatchRoots
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.roots = registered
	s.running = true

	s.wg.Add(1)
	go s.loop(runCtx)

	s.logger.Info("watch session started",
		logging.String(logging.FieldSessionID, sessionID),
		logging.Int("roots", len(registered)),
	)
	return nil
}

// Stop shuts down the notification source and cancels every pending timer.
// Relocations already past their quiet period complete; nothing new fires
// after Stop returns.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.cancel = nil
	s.roots = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	_ = s.source.Close()
	s.wg.Wait()
	s.coordinator.CancelAll()
	s.logger.Info("watch session stopped")
}

// Running reports whether the session is consuming events.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Roots returns the registered watch roots.
func (s *Session) Roots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.roots))
	copy(out, s.roots)
	return out
}

// PendingCount returns the coordinator's count of unsettled paths.
func (s *Session) PendingCount() int {
	return s.coordinator.PendingCount()
}

func (s *Session) loop(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.source.Events():
			if !ok {
				return
			}
			s.coordinator.Notify(event.Path, event.Kind)
		case err, ok := <-s.source.Errors():
			if !ok {
				return
			}
			s.logger.Warn("notification source error", logging.Error(err))
		}
	}
}

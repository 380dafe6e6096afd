package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"

	"fileninja/internal/api"
	"fileninja/internal/config"
	"fileninja/internal/history"
	"fileninja/internal/logging"
	"fileninja/internal/stats"
	"fileninja/internal/watch"
)

// Daemon owns the long-running fileninja process: the watch session, the
// history store, the stats aggregator, and the HTTP API, with flock-based
// locking to prevent multiple instances.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *history.Store
	session    *watch.Session
	scanner    *watch.Scanner
	aggregator *stats.Aggregator

	lockPath string
	lock     *flock.Flock

	running    atomic.Bool
	organizing atomic.Bool
	ctx        context.Context
	cancel     context.CancelFunc

	api *apiServer
}

// New assembles a Daemon. The store may be nil when history is disabled.
func New(cfg *config.Config, store *history.Store, session *watch.Session, scanner *watch.Scanner, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if session == nil || scanner == nil {
		return nil, errors.New("watch session and scanner are required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		session:    session,
		scanner:    scanner,
		aggregator: stats.NewAggregator(cfg.OrganizedFolder, logger),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock, starts the watch session when auto-organize
// is enabled, and brings up the HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another fileninja daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if d.cfg.AutoOrganize {
		if err := d.session.Start(d.ctx, d.cfg.WatchedFolders); err != nil {
			_ = d.lock.Unlock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return fmt.Errorf("start watch session: %w", err)
		}
	} else {
		d.logger.Info("auto-organize disabled, watch session not started")
	}

	if d.api != nil {
		if err := d.api.start(d.ctx); err != nil {
			d.session.Stop()
			_ = d.lock.Unlock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("fileninja daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API, the watch session, and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.api != nil {
		d.api.stop()
	}
	d.session.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("fileninja daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports the daemon runtime state.
func (d *Daemon) Status() api.StatusResponse {
	return api.StatusResponse{
		Running:         d.running.Load(),
		PID:             os.Getpid(),
		AutoOrganize:    d.cfg.AutoOrganize,
		WatchedRoots:    d.session.Roots(),
		PendingCount:    d.session.PendingCount(),
		OrganizedFolder: d.cfg.OrganizedFolder,
		DatabasePath:    d.cfg.DatabasePath(),
	}
}

// OrganizationStats walks the destination tree for a fresh snapshot.
func (d *Daemon) OrganizationStats(ctx context.Context) stats.Summary {
	return d.aggregator.Collect(ctx)
}

// History exposes the movement log store; nil when history is disabled.
func (d *Daemon) History() *history.Store {
	return d.store
}

// OrganizeExisting runs a background scan of folder, or of all configured
// watch roots when folder is empty. Only one manual scan runs at a time.
func (d *Daemon) OrganizeExisting(folder string) error {
	roots := d.cfg.WatchedFolders
	if folder != "" {
		expanded, err := config.ExpandPath(folder)
		if err != nil {
			return fmt.Errorf("resolve folder: %w", err)
		}
		roots = []string{expanded}
	}

	if !d.organizing.CompareAndSwap(false, true) {
		return errors.New("an organize run is already in progress")
	}

	ctx := d.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		defer d.organizing.Store(false)
		d.scanner.Scan(ctx, roots)
	}()
	return nil
}

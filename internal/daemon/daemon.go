package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"

	"clipscout/internal/api"
	"clipscout/internal/config"
	"clipscout/internal/deps"
	"clipscout/internal/logging"
	"clipscout/internal/preflight"
	"clipscout/internal/store"
)

// Daemon serves the API and enforces single-instance execution per data dir.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	service *api.CandidateService
	locator *deps.Locator
	server  *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, service *api.CandidateService, locator *deps.Locator, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || service == nil {
		return nil, errors.New("daemon requires config, store, and candidate service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		service:  service,
		locator:  locator,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.server = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the lock and begins serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(d.cfg.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another clipscout server is already using %s", d.cfg.Paths.DataDir)
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.server.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("clipscout server started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.Addr()),
	)
	return nil
}

// Stop stops serving and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release server lock", "lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next start may report the data dir as busy"),
		)
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("clipscout server stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Running reports whether the API is being served.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Addr returns the bound listener address once started.
func (d *Daemon) Addr() string {
	return d.server.addr()
}

// Handler exposes the router for in-process use.
func (d *Daemon) Handler() http.Handler {
	return d.server.router
}

// Status returns runtime information.
func (d *Daemon) Status(ctx context.Context) api.StatusResponse {
	count, err := d.service.Count(ctx)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, d.logger), "candidate count failed", "status_count_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "status reports zero candidates"),
		)
	}
	return api.StatusResponse{
		PID:           os.Getpid(),
		Hosted:        d.cfg.Presentation.Hosted,
		DeployAllowed: !d.cfg.Presentation.Hosted,
		StorageDriver: d.store.Driver(),
		StoragePath:   d.store.Location(),
		LockFilePath:  d.lockPath,
		AssetsDir:     d.cfg.Paths.AssetsDir,
		Timezone:      d.cfg.Location().String(),
		Candidates:    count,
		Dependencies:  api.FromDependencies(preflight.CheckSystemDeps(ctx, d.cfg, d.locator)),
	}
}

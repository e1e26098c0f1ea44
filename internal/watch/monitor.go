package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"

	"tripagent-icongen/internal/logging"
)

const (
	defaultRescanPeriod = 5 * time.Second
	defaultDebounce     = 250 * time.Millisecond

	recoverDelay    = time.Second
	recoverMaxDelay = 30 * time.Second
)

type Options struct {
	// Dir is the directory whose contents are kept under watch. It must
	// exist before the monitor starts and is never created here.
	Dir string

	// Files are the base names inside Dir that matter. Events on anything
	// else are ignored.
	Files []string

	RescanPeriod time.Duration
	Debounce     time.Duration
}

type Callbacks struct {
	// OnSweep fires after debounced file events, on every rescan tick, and
	// once at startup. The reason string is for logs only.
	OnSweep       func(reason string)
	OnDirLost     func(err error)
	OnDirRestored func()
	OnError       func(err error)
}

type Monitor struct {
	opts      Options
	logger    *logging.Logger
	callbacks Callbacks
	watched   map[string]struct{}
	prepared  bool
}

func NewMonitor(opts Options, logger *logging.Logger, callbacks Callbacks) *Monitor {
	if logger == nil {
		panic("watch.NewMonitor: logger must not be nil")
	}
	if opts.RescanPeriod <= 0 {
		opts.RescanPeriod = defaultRescanPeriod
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	return &Monitor{opts: opts, logger: logger, callbacks: callbacks}
}

// RunContext watches the directory until the context ends. Filesystem events
// are debounced into sweeps; the rescan ticker is the safety net for events
// the platform watcher misses. Values received on requests trigger an
// immediate sweep with that reason.
func (m *Monitor) RunContext(ctx context.Context, requests <-chan string) error {
	if err := m.Prepare(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(m.opts.Dir); err != nil {
		return fmt.Errorf("failed to watch output directory %s: %w", m.opts.Dir, err)
	}
	m.logger.Debugf("watching directory: %s", m.opts.Dir)

	rescanTicker := time.NewTicker(m.opts.RescanPeriod)
	defer rescanTicker.Stop()

	debounce := time.NewTimer(m.opts.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	m.sweep("startup")

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("stopping output monitor: context canceled")
			return nil
		case reason, ok := <-requests:
			if !ok {
				m.logger.Debug("sweep request stream closed")
				requests = nil
				continue
			}
			m.sweep(reason)
		case event := <-watcher.Events:
			m.logger.Debugf("fsnotify event: op=%s path=%s", event.Op.String(), event.Name)
			if m.relevantEvent(event) {
				debounce.Reset(m.opts.Debounce)
			}
		case err := <-watcher.Errors:
			m.handleWatcherError(err)
		case <-debounce.C:
			if err := m.ensureDirectory(ctx, watcher); err != nil {
				if ctx.Err() != nil {
					m.logger.Debug("stopping output monitor: context canceled")
					return nil
				}
				return err
			}
			m.sweep("change detected")
		case <-rescanTicker.C:
			if err := m.ensureDirectory(ctx, watcher); err != nil {
				if ctx.Err() != nil {
					m.logger.Debug("stopping output monitor: context canceled")
					return nil
				}
				return err
			}
			m.sweep("rescan")
		}
	}
}

func (m *Monitor) Prepare() error {
	if m.prepared {
		return nil
	}
	if err := m.initialize(); err != nil {
		return err
	}
	m.prepared = true
	return nil
}

func (m *Monitor) initialize() error {
	dir := strings.TrimSpace(m.opts.Dir)
	if dir == "" {
		return fmt.Errorf("missing output directory")
	}
	m.opts.Dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory is not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", dir)
	}

	m.watched = make(map[string]struct{}, len(m.opts.Files))
	for _, name := range m.opts.Files {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m.watched[name] = struct{}{}
	}
	if len(m.watched) == 0 {
		m.logger.Warn("no file names configured to watch")
	}

	m.logger.Info("watching output directory",
		logging.Field("directory", dir),
		logging.Field("files", len(m.watched)),
	)
	return nil
}

// relevantEvent reports whether the event touches a watched file name or the
// watched directory itself.
func (m *Monitor) relevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	clean := filepath.Clean(event.Name)
	if clean == filepath.Clean(m.opts.Dir) {
		return true
	}
	_, ok := m.watched[filepath.Base(clean)]
	return ok
}

func (m *Monitor) handleWatcherError(err error) {
	if err == nil {
		return
	}
	m.logger.Warn("watcher error", logging.Field("error", err))
	if m.callbacks.OnError != nil {
		m.callbacks.OnError(err)
	}
}

// ensureDirectory blocks until the watched directory exists again, re-arming
// the platform watcher after a recovery. Returns nil immediately when the
// directory is still present.
func (m *Monitor) ensureDirectory(ctx context.Context, watcher *fsnotify.Watcher) error {
	_, statErr := os.Stat(m.opts.Dir)
	if statErr == nil {
		return nil
	}

	m.logger.Warn("output directory missing",
		logging.Field("directory", m.opts.Dir),
		logging.Field("error", statErr),
	)
	if m.callbacks.OnDirLost != nil {
		m.callbacks.OnDirLost(statErr)
	}
	_ = watcher.Remove(m.opts.Dir)

	if err := m.awaitDirectory(ctx); err != nil {
		return err
	}
	if err := watcher.Add(m.opts.Dir); err != nil {
		return fmt.Errorf("failed to rewatch output directory %s: %w", m.opts.Dir, err)
	}

	m.logger.Info("output directory restored", logging.Field("directory", m.opts.Dir))
	if m.callbacks.OnDirRestored != nil {
		m.callbacks.OnDirRestored()
	}
	return nil
}

// awaitDirectory retries until the directory reappears, with exponential
// backoff between attempts. Only context cancellation ends the wait early.
func (m *Monitor) awaitDirectory(ctx context.Context) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = recoverDelay
	retry.MaxInterval = recoverMaxDelay
	retry.Reset()

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		info, statErr := os.Stat(m.opts.Dir)
		if statErr != nil {
			return struct{}{}, statErr
		}
		if !info.IsDir() {
			return struct{}{}, fmt.Errorf("output path is not a directory: %s", m.opts.Dir)
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(retry),
		backoff.WithNotify(func(err error, next time.Duration) {
			m.logger.Debug("waiting for output directory",
				logging.Field("error", err),
				logging.Field("next_retry", next.String()),
			)
		}),
	)
	return err
}

func (m *Monitor) sweep(reason string) {
	if m.callbacks.OnSweep == nil {
		return
	}
	m.callbacks.OnSweep(reason)
}

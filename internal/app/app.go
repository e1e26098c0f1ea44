package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/ico"
	"tripagent-icongen/internal/icon"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runstatus"
	"tripagent-icongen/internal/watch"
)

const faviconICOName = "favicon.ico"

// faviconICOSizes are the embedded resolutions of the optional favicon.ico,
// largest first so browsers pick the sharpest entry.
var faviconICOSizes = []int{48, 32, 16}

type Generator struct {
	opts     config.Options
	logger   *logging.Logger
	hooks    Callbacks
	status   runtimeStatusState
	genMu    sync.Mutex
	requests chan string
}

type Callbacks struct {
	OnTargetsUpdate func([]TargetStatus)
	OnStatusChange  func(string)
}

func New(opts config.Options, logger *logging.Logger, hooks Callbacks) *Generator {
	if logger == nil {
		panic("app.New: logger must not be nil")
	}
	return &Generator{
		opts:     opts,
		logger:   logger,
		hooks:    hooks,
		requests: make(chan string, 1),
	}
}

// GenerateOnce renders and writes the full output set sequentially. The
// first write failure aborts the remaining files so a broken destination is
// reported once instead of once per file.
func (g *Generator) GenerateOnce(ctx context.Context) error {
	g.setRuntimeStatus(runstatus.Generating)
	if err := g.generateAll(ctx); err != nil {
		g.setRuntimeStatus(runstatus.Failed)
		return err
	}
	g.setRuntimeStatus(runstatus.Idle)
	return nil
}

func (g *Generator) Run() error {
	return g.RunContext(context.Background())
}

// RunContext runs the watch service: bring the output set fresh, then keep
// it fresh until the context ends.
func (g *Generator) RunContext(ctx context.Context) error {
	g.logger.Info("icon watch service starting", logging.Field("directory", g.outDir()))

	g.setRuntimeStatus(runstatus.Generating)
	if err := g.generateAll(ctx); err != nil {
		g.setRuntimeStatus(runstatus.Failed)
		return err
	}

	watched := make([]string, 0, len(icon.Targets)+1)
	for _, target := range icon.Targets {
		watched = append(watched, target.Name)
	}
	if g.opts.Ico {
		watched = append(watched, faviconICOName)
	}

	monitor := watch.NewMonitor(watch.Options{
		Dir:   g.outDir(),
		Files: watched,
	}, g.logger, watch.Callbacks{
		OnSweep: func(reason string) {
			g.sweep(ctx, reason)
		},
		OnDirLost: func(err error) {
			g.setRuntimeStatus(runstatus.Recovering)
		},
		OnDirRestored: func() {
			g.setRuntimeStatus(runstatus.Watching)
		},
	})
	if err := monitor.Prepare(); err != nil {
		g.setRuntimeStatus(runstatus.Failed)
		return err
	}

	g.setRuntimeStatus(runstatus.Watching)
	runErr := monitor.RunContext(ctx, g.requests)
	if runErr != nil {
		g.setRuntimeStatus(runstatus.Failed)
		g.logger.Warn("icon watch service stopped with error", logging.Field("error", runErr))
		return runErr
	}
	g.setRuntimeStatus(runstatus.Idle)
	g.logger.Info("icon watch service stopped")
	return nil
}

// RequestSweep nudges a running watch service to verify and regenerate now.
// Requests coalesce while one is already pending.
func (g *Generator) RequestSweep(reason string) {
	select {
	case g.requests <- reason:
	default:
	}
}

// Check verifies the on-disk set without writing anything. Returns
// ErrIconsNotFresh when any target needs regeneration.
func (g *Generator) Check() ([]TargetStatus, error) {
	if err := g.validateOutputDirectory(); err != nil {
		return nil, err
	}

	dir := g.outDir()
	statuses := VerifyAll(dir)
	stale := 0
	for _, status := range statuses {
		if status.Fresh() {
			g.logger.Info("checked "+status.Target.Name, logging.Field("state", string(status.State)))
			continue
		}
		stale++
		if status.Detail != "" {
			g.logger.Warn("checked "+status.Target.Name,
				logging.Field("state", string(status.State)),
				logging.Field("detail", status.Detail),
			)
			continue
		}
		g.logger.Warn("checked "+status.Target.Name, logging.Field("state", string(status.State)))
	}
	g.notifyTargets(statuses)

	if stale > 0 {
		g.logger.Warn("icons need regeneration",
			logging.Field("directory", dir),
			logging.Field("stale", stale),
		)
		return statuses, ErrIconsNotFresh
	}
	g.logger.Info("all icons fresh", logging.Field("directory", dir))
	return statuses, nil
}

func (g *Generator) generateAll(ctx context.Context) error {
	g.genMu.Lock()
	defer g.genMu.Unlock()

	dir := g.outDir()
	g.logger.Info("generating icons", logging.Field("directory", dir))

	if err := g.validateOutputDirectory(); err != nil {
		return err
	}

	for _, target := range icon.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := icon.WriteFile(dir, target); err != nil {
			return err
		}
		g.logger.Info("created "+target.Name, logging.Field("dimensions", target.Dimensions()))
	}

	if g.opts.Ico {
		if err := g.writeFaviconICO(dir); err != nil {
			return err
		}
		g.logger.Info("created "+faviconICOName, logging.Field("entries", len(faviconICOSizes)))
	}

	g.logger.Info("all icons generated", logging.Field("directory", dir))
	g.notifyTargets(VerifyAll(dir))
	return nil
}

// sweep verifies the set and rewrites only what is not fresh. Runs under the
// same mutex as full generation so watch sweeps and manual runs never
// interleave writes.
func (g *Generator) sweep(ctx context.Context, reason string) {
	g.genMu.Lock()
	defer g.genMu.Unlock()

	dir := g.outDir()
	statuses := VerifyAll(dir)
	stale := 0
	for _, status := range statuses {
		if !status.Fresh() {
			stale++
		}
	}

	icoMissing := false
	if g.opts.Ico {
		if _, err := os.Stat(filepath.Join(dir, faviconICOName)); err != nil {
			icoMissing = true
		}
	}

	if stale == 0 && !icoMissing {
		g.logger.Debug("sweep found all icons fresh", logging.Field("reason", reason))
		g.notifyTargets(statuses)
		return
	}

	g.logger.Info("regenerating icons",
		logging.Field("reason", reason),
		logging.Field("stale", stale),
	)
	for _, status := range statuses {
		if status.Fresh() {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		if err := icon.WriteFile(dir, status.Target); err != nil {
			g.logger.Warn("failed to regenerate "+status.Target.Name, logging.Field("error", err))
			return
		}
		g.logger.Info("created "+status.Target.Name, logging.Field("dimensions", status.Target.Dimensions()))
	}
	if g.opts.Ico {
		if err := g.writeFaviconICO(dir); err != nil {
			g.logger.Warn("failed to regenerate "+faviconICOName, logging.Field("error", err))
			return
		}
		g.logger.Info("created "+faviconICOName, logging.Field("entries", len(faviconICOSizes)))
	}
	g.notifyTargets(VerifyAll(dir))
}

func (g *Generator) writeFaviconICO(dir string) error {
	entries := make([]ico.Entry, 0, len(faviconICOSizes))
	for _, size := range faviconICOSizes {
		data, err := icon.EncodePNG(icon.Render(size))
		if err != nil {
			return fmt.Errorf("encode %dpx entry of %s: %w", size, faviconICOName, err)
		}
		entries = append(entries, ico.Entry{Width: size, Height: size, Data: data})
	}

	path := filepath.Join(dir, faviconICOName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", faviconICOName, err)
	}
	if err := ico.Encode(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", faviconICOName, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", faviconICOName, err)
	}
	return nil
}

type runtimeStatusState struct {
	mu      sync.Mutex
	current string
}

func (s *runtimeStatusState) update(status string) (string, string, bool) {
	trimmed := strings.TrimSpace(status)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == trimmed {
		return s.current, trimmed, false
	}
	previous := s.current
	s.current = trimmed
	return previous, trimmed, true
}

func (g *Generator) outDir() string {
	return strings.TrimSpace(g.opts.OutDir)
}

func (g *Generator) validateOutputDirectory() error {
	dir := g.outDir()
	if dir == "" {
		return fmt.Errorf("output directory is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory is not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputNotDirectory, dir)
	}
	return nil
}

func (g *Generator) notifyTargets(statuses []TargetStatus) {
	if g.hooks.OnTargetsUpdate == nil {
		return
	}
	copied := append([]TargetStatus(nil), statuses...)
	g.hooks.OnTargetsUpdate(copied)
}

func (g *Generator) notifyStatus(status string) {
	if g.hooks.OnStatusChange == nil {
		return
	}
	g.hooks.OnStatusChange(status)
}

func (g *Generator) setRuntimeStatus(status string) {
	previous, next, changed := g.status.update(status)
	if !changed {
		return
	}
	g.logger.Debug("runtime status transition",
		logging.Field("from", previous),
		logging.Field("to", next),
	)
	g.notifyStatus(status)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"tripagent-icongen/internal/logging"
)

func newTestLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func TestNewMonitor_AppliesDefaults(t *testing.T) {
	m := NewMonitor(Options{Dir: "assets"}, newTestLogger(), Callbacks{})
	if m.opts.RescanPeriod != defaultRescanPeriod {
		t.Fatalf("RescanPeriod = %v, want %v", m.opts.RescanPeriod, defaultRescanPeriod)
	}
	if m.opts.Debounce != defaultDebounce {
		t.Fatalf("Debounce = %v, want %v", m.opts.Debounce, defaultDebounce)
	}
}

func TestPrepare_RejectsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	m := NewMonitor(Options{Dir: dir, Files: []string{"icon.png"}}, newTestLogger(), Callbacks{})
	if err := m.Prepare(); err == nil {
		t.Fatal("Prepare() = nil, want error for missing directory")
	}
}

func TestPrepare_RejectsFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	m := NewMonitor(Options{Dir: path, Files: []string{"icon.png"}}, newTestLogger(), Callbacks{})
	if err := m.Prepare(); err == nil {
		t.Fatal("Prepare() = nil, want error for non-directory path")
	}
}

func TestRelevantEvent_FiltersByNameAndOp(t *testing.T) {
	dir := t.TempDir()
	m := NewMonitor(Options{Dir: dir, Files: []string{"icon.png", "favicon.png"}}, newTestLogger(), Callbacks{})
	if err := m.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"watched write", fsnotify.Event{Name: filepath.Join(dir, "icon.png"), Op: fsnotify.Write}, true},
		{"watched remove", fsnotify.Event{Name: filepath.Join(dir, "favicon.png"), Op: fsnotify.Remove}, true},
		{"unwatched file", fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: filepath.Join(dir, "icon.png"), Op: fsnotify.Chmod}, false},
		{"directory itself", fsnotify.Event{Name: dir, Op: fsnotify.Remove}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.relevantEvent(tc.event); got != tc.want {
				t.Fatalf("relevantEvent(op=%s, path=%s) = %v, want %v", tc.event.Op, tc.event.Name, got, tc.want)
			}
		})
	}
}

func TestRunContext_SweepsOnStartupAndRequest(t *testing.T) {
	dir := t.TempDir()
	reasons := make(chan string, 8)
	m := NewMonitor(
		Options{Dir: dir, Files: []string{"icon.png"}, RescanPeriod: time.Hour},
		newTestLogger(),
		Callbacks{OnSweep: func(reason string) { reasons <- reason }},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	requests := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- m.RunContext(ctx, requests) }()

	waitReason := func(want string) {
		t.Helper()
		select {
		case got := <-reasons:
			if got != want {
				t.Fatalf("sweep reason = %q, want %q", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for sweep %q", want)
		}
	}

	waitReason("startup")
	requests <- "manual"
	waitReason("manual")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunContext() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for RunContext to stop")
	}
}

func TestEnsureDirectory_NoopWhenPresent(t *testing.T) {
	dir := t.TempDir()
	lost := 0
	m := NewMonitor(Options{Dir: dir, Files: []string{"icon.png"}}, newTestLogger(), Callbacks{
		OnDirLost: func(error) { lost++ },
	})
	if err := m.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("fsnotify.NewWatcher() error = %v", err)
	}
	defer watcher.Close()

	if err := m.ensureDirectory(context.Background(), watcher); err != nil {
		t.Fatalf("ensureDirectory() error = %v", err)
	}
	if lost != 0 {
		t.Fatalf("OnDirLost fired %d times, want 0", lost)
	}
}

func TestEnsureDirectory_WaitsForRecreation(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "assets")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	var lostErr error
	restored := 0
	m := NewMonitor(Options{Dir: dir, Files: []string{"icon.png"}}, newTestLogger(), Callbacks{
		OnDirLost:     func(err error) { lostErr = err },
		OnDirRestored: func() { restored++ },
	})
	if err := m.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("fsnotify.NewWatcher() error = %v", err)
	}
	defer watcher.Close()

	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove %s: %v", dir, err)
	}
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.Mkdir(dir, 0o755)
	}()

	if err := m.ensureDirectory(context.Background(), watcher); err != nil {
		t.Fatalf("ensureDirectory() error = %v", err)
	}
	if lostErr == nil {
		t.Fatal("OnDirLost did not fire")
	}
	if restored != 1 {
		t.Fatalf("OnDirRestored fired %d times, want 1", restored)
	}
}

func TestEnsureDirectory_StopsOnContextCancel(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "assets")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	m := NewMonitor(Options{Dir: dir, Files: []string{"icon.png"}}, newTestLogger(), Callbacks{})
	if err := m.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("fsnotify.NewWatcher() error = %v", err)
	}
	defer watcher.Close()

	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove %s: %v", dir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := m.ensureDirectory(ctx, watcher); err == nil {
		t.Fatal("ensureDirectory() = nil, want error after context timeout")
	}
}

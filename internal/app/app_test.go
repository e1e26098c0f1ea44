package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/icon"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/runstatus"
)

func newTestLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func writeSizedPNG(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode %dpx png: %v", size, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNew_PanicsOnNilLogger(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New() with nil logger did not panic")
		}
	}()
	New(config.Options{OutDir: "assets"}, nil, Callbacks{})
}

func TestGenerateOnce_WritesAllTargets(t *testing.T) {
	dir := t.TempDir()

	var statuses []string
	var lastTargets []TargetStatus
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{
		OnStatusChange:  func(status string) { statuses = append(statuses, status) },
		OnTargetsUpdate: func(targets []TargetStatus) { lastTargets = targets },
	})

	if err := gen.GenerateOnce(context.Background()); err != nil {
		t.Fatalf("GenerateOnce() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != len(icon.Targets) {
		t.Fatalf("output file count = %d, want exactly %d", len(entries), len(icon.Targets))
	}
	for _, target := range icon.Targets {
		if status := VerifyTarget(dir, target); !status.Fresh() {
			t.Fatalf("%s state = %q, want %q", target.Name, status.State, StateFresh)
		}
	}

	if len(statuses) != 2 || statuses[0] != runstatus.Generating || statuses[1] != runstatus.Idle {
		t.Fatalf("status transitions = %v, want [%s %s]", statuses, runstatus.Generating, runstatus.Idle)
	}
	if !AllFresh(lastTargets) {
		t.Fatalf("last targets update not all fresh: %+v", lastTargets)
	}
}

func TestGenerateOnce_MissingDirectoryIsControlledError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{})

	err := gen.GenerateOnce(context.Background())
	if err == nil {
		t.Fatal("GenerateOnce() = nil, want error for missing directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("GenerateOnce() error = %v, want wrapped fs.ErrNotExist", err)
	}
	if _, statErr := os.Stat(dir); !errors.Is(statErr, fs.ErrNotExist) {
		t.Fatalf("missing directory was created behind the caller's back: stat = %v", statErr)
	}
}

func TestGenerateOnce_RejectsFileAsOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	gen := New(config.Options{OutDir: path}, newTestLogger(), Callbacks{})
	err := gen.GenerateOnce(context.Background())
	if !errors.Is(err, ErrOutputNotDirectory) {
		t.Fatalf("GenerateOnce() error = %v, want ErrOutputNotDirectory", err)
	}
}

func TestGenerateOnce_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory squatting on the second target's name makes its os.Create
	// fail after the first file already succeeded.
	if err := os.Mkdir(filepath.Join(dir, "adaptive-icon.png"), 0o755); err != nil {
		t.Fatalf("mkdir blocker: %v", err)
	}

	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{})
	if err := gen.GenerateOnce(context.Background()); err == nil {
		t.Fatal("GenerateOnce() = nil, want error")
	}

	if _, err := os.Stat(filepath.Join(dir, "icon.png")); err != nil {
		t.Fatalf("icon.png should exist from before the failure: %v", err)
	}
	for _, name := range []string{"splash-icon.png", "favicon.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("%s written after the failure, want sequence aborted (stat = %v)", name, err)
		}
	}
}

func TestGenerateOnce_WritesFaviconICOWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	gen := New(config.Options{OutDir: dir, Ico: true}, newTestLogger(), Callbacks{})
	if err := gen.GenerateOnce(context.Background()); err != nil {
		t.Fatalf("GenerateOnce() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, faviconICOName))
	if err != nil {
		t.Fatalf("read %s: %v", faviconICOName, err)
	}
	if len(data) < 6 {
		t.Fatalf("%s length = %d, want at least the ICONDIR header", faviconICOName, len(data))
	}
	if data[0] != 0 || data[1] != 0 || data[2] != 1 || data[3] != 0 {
		t.Fatalf("%s header = % x, want icon ICONDIR", faviconICOName, data[:4])
	}
	if count := int(data[4]) | int(data[5])<<8; count != len(faviconICOSizes) {
		t.Fatalf("%s entry count = %d, want %d", faviconICOName, count, len(faviconICOSizes))
	}
}

func TestCheck_AllFreshAfterGenerate(t *testing.T) {
	dir := t.TempDir()
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{})
	if err := gen.GenerateOnce(context.Background()); err != nil {
		t.Fatalf("GenerateOnce() error = %v", err)
	}

	statuses, err := gen.Check()
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !AllFresh(statuses) {
		t.Fatalf("Check() statuses not all fresh: %+v", statuses)
	}
}

func TestCheck_ReportsStaleStates(t *testing.T) {
	dir := t.TempDir()
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{})
	if err := gen.GenerateOnce(context.Background()); err != nil {
		t.Fatalf("GenerateOnce() error = %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "splash-icon.png")); err != nil {
		t.Fatalf("remove splash-icon.png: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "favicon.png"), []byte("junk"), 0o644); err != nil {
		t.Fatalf("corrupt favicon.png: %v", err)
	}
	writeSizedPNG(t, filepath.Join(dir, "adaptive-icon.png"), 16)

	statuses, err := gen.Check()
	if !errors.Is(err, ErrIconsNotFresh) {
		t.Fatalf("Check() error = %v, want ErrIconsNotFresh", err)
	}

	want := map[string]TargetState{
		"icon.png":          StateFresh,
		"adaptive-icon.png": StateWrongSize,
		"splash-icon.png":   StateMissing,
		"favicon.png":       StateInvalid,
	}
	for _, status := range statuses {
		if status.State != want[status.Target.Name] {
			t.Fatalf("%s state = %q, want %q", status.Target.Name, status.State, want[status.Target.Name])
		}
	}
}

func TestCheck_MissingDirectoryFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{})

	if _, err := gen.Check(); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Check() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestRunContext_SweepRestoresDeletedTarget(t *testing.T) {
	dir := t.TempDir()
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- gen.RunContext(ctx) }()

	waitFor := func(desc string, cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if cond() {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("timed out waiting for %s", desc)
	}

	splash, _ := icon.TargetByName("splash-icon.png")
	path := filepath.Join(dir, splash.Name)
	waitFor("initial generation", func() bool {
		_, err := os.Stat(path)
		return err == nil
	})

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove %s: %v", path, err)
	}
	gen.RequestSweep("test trigger")
	waitFor("regeneration", func() bool {
		return VerifyTarget(dir, splash).Fresh()
	})

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

func TestRunContext_MissingDirectoryFailsFast(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	var statuses []string
	gen := New(config.Options{OutDir: dir}, newTestLogger(), Callbacks{
		OnStatusChange: func(status string) { statuses = append(statuses, status) },
	})

	err := gen.RunContext(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("RunContext() error = %v, want wrapped fs.ErrNotExist", err)
	}
	if len(statuses) == 0 || statuses[len(statuses)-1] != runstatus.Failed {
		t.Fatalf("status transitions = %v, want trailing %s", statuses, runstatus.Failed)
	}
}

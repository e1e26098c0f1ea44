package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/config"
	"tripagent-icongen/internal/logging"
	"tripagent-icongen/internal/ui/gui"
	"tripagent-icongen/internal/ui/headless"

	flags "github.com/jessevdk/go-flags"
)

var BuildVersion = "dev"

func main() {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions()
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lock, lockedByOther, lockErr := acquireInstanceLock()
	if lockErr != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize single-instance lock:", lockErr)
		os.Exit(2)
	}
	if lockedByOther {
		if opts.GUI && gui.Available() && !opts.Headless {
			hideAndDetachConsoleForGUI()
			showAlreadyRunningDialog()
		} else {
			fmt.Fprintln(os.Stderr, "TripAgent Icongen is already running.")
		}
		os.Exit(1)
	}

	code := dispatch(rootCtx, opts)
	_ = lock.Release()
	os.Exit(code)
}

func dispatch(rootCtx context.Context, opts config.Options) int {
	switch {
	case opts.Check:
		return runCheck(consoleOptions(opts))
	case opts.Headless:
		headless.Run(rootCtx, BuildVersion, opts)
		return 0
	case opts.GUI:
		if !gui.Available() {
			fmt.Fprintln(os.Stderr, "this build has no desktop dashboard; use --headless or the console modes")
			return 2
		}
		hideAndDetachConsoleForGUI()
		if err := gui.Run(rootCtx, BuildVersion, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return 0
	case opts.Watch:
		return runWatch(rootCtx, consoleOptions(opts))
	default:
		return runOnce(rootCtx, consoleOptions(opts))
	}
}

// consoleOptions applies saved interactive settings underneath explicit
// flags for the plain console modes.
func consoleOptions(opts config.Options) config.Options {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load saved settings:", err)
	}
	return config.MergeOptionsWithSettings(opts, settings)
}

func newConsoleLogger(opts config.Options) *logging.Logger {
	logger := logging.New(opts.Debug)
	if !opts.NoFileLog {
		if err := logger.EnableFilePersistence(opts.LogDir, 0); err != nil {
			logger.Warn("session log file disabled", logging.Field("error", err.Error()))
		}
	}
	return logger
}

// runOnce is the default mode: render and write the full set once. A
// generation failure is reported with a hint but never fails the exit
// status; the tool is usually a build step that should not break builds
// over a fixable local problem.
func runOnce(ctx context.Context, opts config.Options) int {
	logger := newConsoleLogger(opts)
	defer logger.Close()

	gen := app.New(opts, logger, app.Callbacks{})
	if err := gen.GenerateOnce(ctx); err != nil {
		logger.Error("icon generation failed", logging.Field("error", err.Error()))
		logger.Info(remediationHint(err))
	}
	return 0
}

func runCheck(opts config.Options) int {
	logger := newConsoleLogger(opts)
	defer logger.Close()

	gen := app.New(opts, logger, app.Callbacks{})
	_, err := gen.Check()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrIconsNotFresh):
		return 1
	default:
		logger.Error("check failed", logging.Field("error", err.Error()))
		logger.Info(remediationHint(err))
		return 1
	}
}

func runWatch(ctx context.Context, opts config.Options) int {
	logger := newConsoleLogger(opts)
	defer logger.Close()

	gen := app.New(opts, logger, app.Callbacks{})
	if err := gen.RunContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch service stopped", logging.Field("error", err.Error()))
		logger.Info(remediationHint(err))
		return 1
	}
	logger.Info("watch service stopped")
	return 0
}

func remediationHint(err error) string {
	switch {
	case errors.Is(err, app.ErrOutputNotDirectory):
		return "The output path exists but is not a directory. Point --out-dir at a folder."
	case errors.Is(err, fs.ErrNotExist):
		return "Create the output directory first (it will not be created for you), or pass --out-dir."
	case errors.Is(err, fs.ErrPermission):
		return "Check write permissions on the output directory, then rerun."
	default:
		return "Check that the output directory exists and is writable, then rerun."
	}
}

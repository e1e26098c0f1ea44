//go:build headless

// Package gui hosts the desktop dashboard. Headless builds compile this
// stub instead so the rest of the program links without the toolkit.
package gui

import (
	"context"
	"errors"

	"tripagent-icongen/internal/config"
)

// Available reports whether this binary was built with the desktop UI.
func Available() bool { return false }

// Run refuses to start in a headless build.
func Run(ctx context.Context, buildVersion string, opts config.Options) error {
	return errors.New("desktop dashboard not compiled in, rerun with --headless or rebuild without the headless tag")
}

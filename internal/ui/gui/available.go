//go:build !headless

package gui

// Available reports whether this binary was built with the desktop UI.
func Available() bool { return true }

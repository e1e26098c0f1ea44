//go:build !windows

package main

// Console detachment only matters on windows, where GUI subsystem
// binaries otherwise keep a console window open.
func hideAndDetachConsoleForGUI() {}

// Package health summarizes the on-disk state of every render target into
// rows the dashboard can paint as colored dots.
package health

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tripagent-icongen/internal/app"
)

// RefreshRate is how often the dashboard re-verifies the output directory
// while no generation is running.
const RefreshRate = 30 * time.Second

type Kind int

const (
	Missing Kind = iota
	Fresh
	Outdated
	Broken
)

type Row struct {
	Name   string
	Kind   Kind
	Reason string
}

// Compute verifies the output directory and returns one row per target plus
// a detail string describing any directory-level problem. Rows are empty
// when the directory itself cannot be inspected.
func Compute(outDir string, now time.Time) ([]Row, string) {
	rows := make([]Row, 0, 4)
	outDir = strings.TrimSpace(outDir)
	if outDir == "" {
		return rows, "Output directory is not configured."
	}
	info, err := os.Stat(outDir)
	if err != nil {
		return rows, "Output directory is not accessible: " + err.Error()
	}
	if !info.IsDir() {
		return rows, "Output path is not a directory."
	}
	return FromStatuses(app.VerifyAll(outDir), now), ""
}

// FromStatuses converts verification results into display rows.
func FromStatuses(statuses []app.TargetStatus, now time.Time) []Row {
	rows := make([]Row, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, Row{
			Name:   status.Target.Name,
			Kind:   kindFor(status.State),
			Reason: reasonFor(status, now),
		})
	}
	return rows
}

func kindFor(state app.TargetState) Kind {
	switch state {
	case app.StateFresh:
		return Fresh
	case app.StateMissing:
		return Missing
	case app.StateInvalid:
		return Broken
	default:
		return Outdated
	}
}

func reasonFor(status app.TargetStatus, now time.Time) string {
	switch status.State {
	case app.StateFresh:
		age := now.Sub(status.ModTime).Round(time.Second)
		if age < 0 {
			age = 0
		}
		return fmt.Sprintf("%s, %d bytes, written %s ago.", status.Target.Dimensions(), status.Bytes, age)
	case app.StateMissing:
		return "File not found."
	case app.StateInvalid:
		return "Not a readable PNG."
	case app.StateWrongSize:
		detail := strings.TrimSpace(status.Detail)
		if detail == "" {
			return "Wrong dimensions."
		}
		return "Wrong dimensions: " + detail + "."
	default:
		return "Content differs from a fresh render."
	}
}

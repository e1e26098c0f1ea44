package app

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"tripagent-icongen/internal/icon"
)

type TargetState string

const (
	StateFresh     TargetState = "fresh"
	StateMissing   TargetState = "missing"
	StateInvalid   TargetState = "invalid"
	StateWrongSize TargetState = "wrong size"
	StateModified  TargetState = "modified"
)

type TargetStatus struct {
	Target  icon.Target
	State   TargetState
	Bytes   int64
	ModTime time.Time
	Detail  string
}

func (s TargetStatus) Fresh() bool {
	return s.State == StateFresh
}

// VerifyTarget compares the on-disk file against a fresh render byte for
// byte. Byte equality implies correct dimensions and palette, so the cheaper
// checks exist only to produce a more specific state for reporting.
func VerifyTarget(dir string, target icon.Target) TargetStatus {
	status := TargetStatus{Target: target, State: StateMissing}

	path := filepath.Join(dir, target.Name)
	info, err := os.Stat(path)
	if err != nil {
		return status
	}
	status.Bytes = info.Size()
	status.ModTime = info.ModTime()

	data, err := os.ReadFile(path)
	if err != nil {
		status.State = StateInvalid
		status.Detail = err.Error()
		return status
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		status.State = StateInvalid
		status.Detail = err.Error()
		return status
	}
	if cfg.Width != target.Size || cfg.Height != target.Size {
		status.State = StateWrongSize
		status.Detail = fmt.Sprintf("%dx%d on disk", cfg.Width, cfg.Height)
		return status
	}

	want, err := icon.EncodePNG(icon.Render(target.Size))
	if err != nil {
		status.State = StateInvalid
		status.Detail = err.Error()
		return status
	}
	if !bytes.Equal(data, want) {
		status.State = StateModified
		status.Detail = "content differs from a fresh render"
		return status
	}

	status.State = StateFresh
	return status
}

func VerifyAll(dir string) []TargetStatus {
	statuses := make([]TargetStatus, 0, len(icon.Targets))
	for _, target := range icon.Targets {
		statuses = append(statuses, VerifyTarget(dir, target))
	}
	return statuses
}

func AllFresh(statuses []TargetStatus) bool {
	for _, status := range statuses {
		if !status.Fresh() {
			return false
		}
	}
	return true
}

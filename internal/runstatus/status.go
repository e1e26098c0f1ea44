package runstatus

import "strings"

const (
	Idle       = "Idle"
	Generating = "Generating"
	Watching   = "Watching"
	Recovering = "Recovering"
	Stopping   = "Stopping"
	Failed     = "Failed"
)

const (
	KeyIdle       = "idle"
	KeyGenerating = "generating"
	KeyWatching   = "watching"
	KeyRecovering = "recovering"
	KeyStopping   = "stopping"
	KeyFailed     = "failed"
)

func Key(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

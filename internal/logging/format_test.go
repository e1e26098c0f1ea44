package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFormatEventLine(t *testing.T) {
	event := Event{
		Time:    time.Date(2026, 8, 20, 9, 30, 15, 0, time.UTC),
		Level:   slog.LevelInfo,
		Message: "created icon.png",
		Fields: map[string]any{
			"dimensions": "1024x1024",
			"file":       "icon.png",
		},
	}
	got := FormatEventLine(event)
	want := "09:30:15 [INFO] created icon.png dimensions=1024x1024 file=icon.png\n"
	if got != want {
		t.Fatalf("FormatEventLine() = %q, want %q", got, want)
	}
}

func TestOrderedFieldKeysPutsErrorLast(t *testing.T) {
	keys := orderedFieldKeys(map[string]any{
		"error":  errors.New("no such directory"),
		"dir":    "assets",
		"target": "icon.png",
	})
	if len(keys) != 3 {
		t.Fatalf("keys = %v", keys)
	}
	if keys[0] != "dir" || keys[1] != "target" || keys[2] != "error" {
		t.Fatalf("unexpected key order: %v", keys)
	}
}

func TestFormatFieldValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "<nil>"},
		{name: "string", value: "assets", want: "assets"},
		{name: "error", value: errors.New("boom"), want: "boom"},
		{name: "duration", value: 1500 * time.Millisecond, want: "1.5s"},
		{name: "int", value: 432, want: "432"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatFieldValue(tc.value); got != tc.want {
				t.Fatalf("formatFieldValue(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestTruncateFlattensAndClips(t *testing.T) {
	if got := Truncate("  line one\nline two  "); got != "line one line two" {
		t.Fatalf("Truncate() = %q", got)
	}
	if got := Truncate(""); got != "<empty>" {
		t.Fatalf("Truncate(empty) = %q", got)
	}
	long := strings.Repeat("x", clipLimit+10)
	if got := Truncate(long); len(got) != clipLimit+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("Truncate(long) length = %d", len(got))
	}
}

package health

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tripagent-icongen/internal/app"
	"tripagent-icongen/internal/icon"
)

func TestCompute_UnusableDirectories(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		outDir string
		detail string
	}{
		{name: "empty", outDir: "   ", detail: "not configured"},
		{name: "missing", outDir: filepath.Join(t.TempDir(), "absent"), detail: "not accessible"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, detail := Compute(tc.outDir, now)
			if len(rows) != 0 {
				t.Fatalf("expected no rows, got %d", len(rows))
			}
			if !strings.Contains(detail, tc.detail) {
				t.Fatalf("detail %q does not mention %q", detail, tc.detail)
			}
		})
	}
}

func TestCompute_RejectsFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, detail := Compute(path, time.Now())
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if !strings.Contains(detail, "not a directory") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestCompute_RowPerTarget(t *testing.T) {
	dir := t.TempDir()
	if err := icon.WriteFile(dir, icon.Targets[2]); err != nil {
		t.Fatal(err)
	}

	rows, detail := Compute(dir, time.Now())
	if detail != "" {
		t.Fatalf("unexpected detail %q", detail)
	}
	if len(rows) != len(icon.Targets) {
		t.Fatalf("expected %d rows, got %d", len(icon.Targets), len(rows))
	}
	for i, row := range rows {
		if row.Name != icon.Targets[i].Name {
			t.Fatalf("row %d is %q, want %q", i, row.Name, icon.Targets[i].Name)
		}
	}
	if rows[2].Kind != Fresh {
		t.Fatalf("splash row kind = %d, want Fresh", rows[2].Kind)
	}
	if !strings.Contains(rows[2].Reason, "written") {
		t.Fatalf("fresh reason %q should carry the file age", rows[2].Reason)
	}
	if rows[0].Kind != Missing || rows[0].Reason != "File not found." {
		t.Fatalf("unexpected missing row %+v", rows[0])
	}
}

func TestFromStatuses_KindMapping(t *testing.T) {
	now := time.Now()

	cases := []struct {
		state  app.TargetState
		kind   Kind
		reason string
	}{
		{state: app.StateFresh, kind: Fresh, reason: "written"},
		{state: app.StateMissing, kind: Missing, reason: "File not found."},
		{state: app.StateInvalid, kind: Broken, reason: "Not a readable PNG."},
		{state: app.StateWrongSize, kind: Outdated, reason: "Wrong dimensions"},
		{state: app.StateModified, kind: Outdated, reason: "differs from a fresh render"},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			status := app.TargetStatus{
				Target:  icon.Targets[0],
				State:   tc.state,
				ModTime: now.Add(-time.Minute),
				Detail:  "16x16 on disk",
			}
			rows := FromStatuses([]app.TargetStatus{status}, now)
			if len(rows) != 1 {
				t.Fatalf("expected one row, got %d", len(rows))
			}
			if rows[0].Kind != tc.kind {
				t.Fatalf("kind = %d, want %d", rows[0].Kind, tc.kind)
			}
			if !strings.Contains(rows[0].Reason, tc.reason) {
				t.Fatalf("reason %q does not mention %q", rows[0].Reason, tc.reason)
			}
		})
	}
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"tripagent-icongen/internal/icon"
)

func TestVerifyTarget_States(t *testing.T) {
	target, ok := icon.TargetByName("splash-icon.png")
	if !ok {
		t.Fatal("splash-icon.png missing from target set")
	}

	cases := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  TargetState
	}{
		{
			name:  "missing",
			setup: func(*testing.T, string) {},
			want:  StateMissing,
		},
		{
			name: "invalid",
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, target.Name), []byte("not a png"), 0o644); err != nil {
					t.Fatalf("write corrupt file: %v", err)
				}
			},
			want: StateInvalid,
		},
		{
			name: "wrong size",
			setup: func(t *testing.T, dir string) {
				writeSizedPNG(t, filepath.Join(dir, target.Name), 16)
			},
			want: StateWrongSize,
		},
		{
			name: "modified",
			setup: func(t *testing.T, dir string) {
				if err := icon.WriteFile(dir, target); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
				f, err := os.OpenFile(filepath.Join(dir, target.Name), os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					t.Fatalf("open append: %v", err)
				}
				if _, err := f.Write([]byte{0x00}); err != nil {
					_ = f.Close()
					t.Fatalf("append byte: %v", err)
				}
				_ = f.Close()
			},
			want: StateModified,
		},
		{
			name: "fresh",
			setup: func(t *testing.T, dir string) {
				if err := icon.WriteFile(dir, target); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
			},
			want: StateFresh,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			tc.setup(t, dir)
			status := VerifyTarget(dir, target)
			if status.State != tc.want {
				t.Fatalf("State = %q, want %q (detail=%q)", status.State, tc.want, status.Detail)
			}
		})
	}
}

func TestVerifyTarget_FreshCarriesFileInfo(t *testing.T) {
	dir := t.TempDir()
	target, _ := icon.TargetByName("favicon.png")
	if err := icon.WriteFile(dir, target); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	status := VerifyTarget(dir, target)
	if !status.Fresh() {
		t.Fatalf("State = %q, want %q", status.State, StateFresh)
	}
	if status.Bytes <= 0 {
		t.Fatalf("Bytes = %d, want > 0", status.Bytes)
	}
	if status.ModTime.IsZero() {
		t.Fatal("ModTime is zero for an existing file")
	}
}

func TestVerifyAll_CoversEveryTargetInOrder(t *testing.T) {
	dir := t.TempDir()
	statuses := VerifyAll(dir)
	if len(statuses) != len(icon.Targets) {
		t.Fatalf("len(statuses) = %d, want %d", len(statuses), len(icon.Targets))
	}
	for i, status := range statuses {
		if status.Target != icon.Targets[i] {
			t.Fatalf("statuses[%d].Target = %+v, want %+v", i, status.Target, icon.Targets[i])
		}
		if status.State != StateMissing {
			t.Fatalf("statuses[%d].State = %q, want %q", i, status.State, StateMissing)
		}
	}
	if AllFresh(statuses) {
		t.Fatal("AllFresh() = true for an empty directory")
	}
}

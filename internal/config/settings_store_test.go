package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestSettingsSaveLoadAndPath(t *testing.T) {
	root := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", root)
	} else {
		t.Setenv("XDG_CONFIG_HOME", root)
	}

	path, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath() error = %v", err)
	}
	wantPath := filepath.Join(root, "tripagent", "icongen-settings.json")
	if path != wantPath {
		t.Fatalf("SettingsPath() = %q, want %q", path, wantPath)
	}

	in := GeneratorSettings{
		OutDir:       "/tmp/mobile/assets",
		Ico:          true,
		WatchOnStart: true,
		Debug:        true,
	}
	if err := SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	out, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if out != in {
		t.Fatalf("loaded settings = %#v, want %#v", out, in)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	root := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", root)
	} else {
		t.Setenv("XDG_CONFIG_HOME", root)
	}
	if _, err := LoadSettings(); err == nil {
		t.Fatalf("LoadSettings() with no file should error")
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// GeneratorSettings persists preferences from interactive sessions. They
// apply underneath explicit flags in every mode; a flag on the command line
// always wins.
type GeneratorSettings struct {
	OutDir       string `json:"out_dir"`
	Ico          bool   `json:"ico"`
	WatchOnStart bool   `json:"watch_on_start"`
	Debug        bool   `json:"debug"`
}

func SettingsPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "tripagent", "icongen-settings.json"), nil
}

func LoadSettings() (GeneratorSettings, error) {
	path, err := SettingsPath()
	if err != nil {
		return GeneratorSettings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return GeneratorSettings{}, err
	}
	var settings GeneratorSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return GeneratorSettings{}, err
	}
	return settings, nil
}

func SaveSettings(settings GeneratorSettings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// MergeOptionsWithSettings applies saved preferences underneath explicit CLI
// flags. The stock out dir counts as unset so a saved choice survives plain
// invocations of the dashboard.
func MergeOptionsWithSettings(cli Options, saved GeneratorSettings) Options {
	outDir := strings.TrimSpace(cli.OutDir)
	if (outDir == "" || outDir == DefaultOutDir) && strings.TrimSpace(saved.OutDir) != "" {
		cli.OutDir = saved.OutDir
	}
	if !cli.Ico {
		cli.Ico = saved.Ico
	}
	if !cli.Watch {
		cli.Watch = saved.WatchOnStart
	}
	if !cli.Debug {
		cli.Debug = saved.Debug
	}
	return cli
}

func SettingsFromOptions(opts Options) GeneratorSettings {
	return GeneratorSettings{
		OutDir:       strings.TrimSpace(opts.OutDir),
		Ico:          opts.Ico,
		WatchOnStart: opts.Watch,
		Debug:        opts.Debug,
	}
}

package config

import (
	"testing"
)

func TestMergeOptionsWithSettings(t *testing.T) {
	tests := []struct {
		name  string
		cli   Options
		saved GeneratorSettings
		want  Options
	}{
		{
			name:  "saved out dir fills stock value",
			cli:   Options{OutDir: DefaultOutDir},
			saved: GeneratorSettings{OutDir: "/tmp/mobile/assets"},
			want:  Options{OutDir: "/tmp/mobile/assets"},
		},
		{
			name:  "explicit out dir wins",
			cli:   Options{OutDir: "/explicit"},
			saved: GeneratorSettings{OutDir: "/saved"},
			want:  Options{OutDir: "/explicit"},
		},
		{
			name:  "empty saved out dir keeps stock value",
			cli:   Options{OutDir: DefaultOutDir},
			saved: GeneratorSettings{},
			want:  Options{OutDir: DefaultOutDir},
		},
		{
			name:  "bool preferences merge when flags are off",
			cli:   Options{OutDir: DefaultOutDir},
			saved: GeneratorSettings{Ico: true, WatchOnStart: true, Debug: true},
			want:  Options{OutDir: DefaultOutDir, Ico: true, Watch: true, Debug: true},
		},
		{
			name:  "bool flags stay on regardless of saved",
			cli:   Options{OutDir: DefaultOutDir, Ico: true, Watch: true, Debug: true},
			saved: GeneratorSettings{},
			want:  Options{OutDir: DefaultOutDir, Ico: true, Watch: true, Debug: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeOptionsWithSettings(tt.cli, tt.saved)
			if got != tt.want {
				t.Fatalf("MergeOptionsWithSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettingsFromOptionsTrimsOutDir(t *testing.T) {
	settings := SettingsFromOptions(Options{
		OutDir: "  /tmp/assets  ",
		Ico:    true,
		Watch:  true,
		Debug:  true,
	})
	want := GeneratorSettings{
		OutDir:       "/tmp/assets",
		Ico:          true,
		WatchOnStart: true,
		Debug:        true,
	}
	if settings != want {
		t.Fatalf("SettingsFromOptions() = %+v, want %+v", settings, want)
	}
}

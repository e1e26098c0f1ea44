package config

import (
	"errors"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// DefaultOutDir is the fixed assets directory next to wherever the tool is
// invoked, matching the mobile project layout the icons belong to.
const DefaultOutDir = "assets"

type Options struct {
	OutDir    string `long:"out-dir" env:"ICONGEN_OUT_DIR" description:"Directory the icon files are written into (default: ./assets)"`
	Ico       bool   `long:"ico" env:"ICONGEN_ICO" description:"Also write favicon.ico alongside the PNG set"`
	Check     bool   `long:"check" description:"Verify the generated assets and exit"`
	Watch     bool   `long:"watch" env:"ICONGEN_WATCH" description:"Keep running and regenerate assets that go missing or stale"`
	Headless  bool   `long:"headless" env:"ICONGEN_HEADLESS" description:"Run the interactive terminal dashboard"`
	GUI       bool   `long:"gui" description:"Open the preview window (GUI builds only)"`
	Debug     bool   `long:"debug" env:"ICONGEN_DEBUG" description:"Enable verbose debug output"`
	LogDir    string `long:"log-dir" env:"ICONGEN_LOG_DIR" description:"Directory for session log files (default: user cache dir)"`
	NoFileLog bool   `long:"no-file-log" env:"ICONGEN_NO_FILE_LOG" description:"Disable session log files"`
}

func ParseOptions() (Options, error) {
	_ = godotenv.Load()
	opts := Options{}
	if _, err := flags.Parse(&opts); err != nil {
		return Options{}, err
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		opts.OutDir = DefaultOutDir
	}
	return opts, nil
}

func ValidateRequired(opts Options) error {
	if strings.TrimSpace(opts.OutDir) == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

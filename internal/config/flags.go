package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Image width")
	flagHeight = flag.Int("height", 0, "Image height")
	flagZoom   = flag.Int("zoom", 0, "Initial zoom (2-20)")
	flagOut    = flag.String("out", "", "Output PNG path")
	flagSave   = flag.Bool("save-config", false, "Write the effective config and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// ModelPath returns the first positional argument.
func ModelPath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagZoom > 0 {
		cfg.Render.Zoom = *flagZoom
	}
	if *flagOut != "" {
		cfg.Render.Output = *flagOut
	}
}

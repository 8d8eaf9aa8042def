package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagSides    = flag.Int("sides", 0, "Cylinder sides")
	flagStacks   = flag.Int("stacks", 0, "Cylinder stacks")
	flagHeadless = flag.Bool("headless", false, "Render one frame with the software rasterizer and exit")
	flagOutput   = flag.String("output", "", "Screenshot output directory")
	flagLogFile  = flag.String("log-file", "", "Log file path")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Headless reports whether --headless was given.
func Headless() bool {
	return *flagHeadless
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSides > 0 {
		cfg.Mesh.Sides = *flagSides
	}
	if *flagStacks > 0 {
		cfg.Mesh.Stacks = *flagStacks
	}
	if *flagOutput != "" {
		cfg.Screenshot.OutputDir = *flagOutput
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

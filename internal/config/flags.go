package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagAsset      = flag.String("asset", "", "Path to .hgl guide asset")
	flagWorkers    = flag.Int("workers", -1, "Goroutines per simulation stage (0 = GOMAXPROCS)")
	flagIterations = flag.Int("iterations", 0, "Solver iterations per tick")
	flagDensity    = flag.Float64("density", 0, "Render strands per unit growth-mesh area")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAsset != "" {
		cfg.Asset.Path = *flagAsset
	}
	if *flagWorkers >= 0 {
		cfg.Runtime.Workers = *flagWorkers
	}
	if *flagIterations > 0 {
		cfg.Runtime.Iterations = *flagIterations
	}
	if *flagDensity > 0 {
		cfg.Hair.Visualization.Density = float32(*flagDensity)
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}

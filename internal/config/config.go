// Package config handles hairgl configuration loading and management.
package config

import (
	"fmt"

	"github.com/VincentWang001/hairgl/internal/hair"
	"github.com/VincentWang001/hairgl/pkg/formats"
)

// Config holds all tool settings.
type Config struct {
	Runtime  RuntimeConfig         `yaml:"runtime"`
	Hair     hair.InstanceSettings `yaml:"hair"`
	Asset    AssetConfig           `yaml:"asset"`
	Window   WindowConfig          `yaml:"window"`
	Snapshot SnapshotConfig        `yaml:"snapshot"`
	Logging  LoggingConfig         `yaml:"logging"`
}

// RuntimeConfig holds the simulation loop settings.
type RuntimeConfig struct {
	TimeStep   float32 `yaml:"time_step"`  // seconds per tick
	Iterations int     `yaml:"iterations"` // solver iterations per tick
	Workers    int     `yaml:"workers"`    // 0 = GOMAXPROCS
	Ticks      int     `yaml:"ticks"`      // offline runs only
}

// AssetConfig selects the guide asset. An empty Path means a generated grid.
type AssetConfig struct {
	Path string     `yaml:"path"`
	Grid GridConfig `yaml:"grid"`
}

// GridConfig describes the generated guide grid.
type GridConfig struct {
	Columns  int     `yaml:"columns"`
	Rows     int     `yaml:"rows"`
	Vertices int     `yaml:"vertices"` // control points per guide
	Spacing  float32 `yaml:"spacing"`
	Length   float32 `yaml:"length"`
}

// Spec converts the grid settings for formats.NewGridHGL.
func (g GridConfig) Spec() formats.GridSpec {
	return formats.GridSpec{
		Columns:  g.Columns,
		Rows:     g.Rows,
		Vertices: g.Vertices,
		Spacing:  g.Spacing,
		Length:   g.Length,
	}
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SnapshotConfig holds offline PNG rendering settings.
type SnapshotConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Scale       float32 `yaml:"scale"`        // pixels per world unit
	StrokeScale float32 `yaml:"stroke_scale"` // pixels per unit of strand width
	Output      string  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			TimeStep:   hair.DefaultTimeStep,
			Iterations: hair.DefaultIterations,
			Workers:    0,
			Ticks:      120,
		},
		Hair: hair.DefaultInstanceSettings(),
		Asset: AssetConfig{
			Grid: GridConfig{
				Columns:  8,
				Rows:     8,
				Vertices: 16,
				Spacing:  0.1,
				Length:   1.0,
			},
		},
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Snapshot: SnapshotConfig{
			Width:       800,
			Height:      800,
			Scale:       300,
			StrokeScale: 1000,
			Output:      "hair.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings no run can start with.
func (c *Config) Validate() error {
	if err := c.Hair.Validate(); err != nil {
		return err
	}

	r := c.Runtime
	if !(r.TimeStep > 0) {
		return fmt.Errorf("%w: runtime.time_step must be > 0, got %v", hair.ErrInvalidSettings, r.TimeStep)
	}
	if r.Iterations < 0 || r.Workers < 0 || r.Ticks < 0 {
		return fmt.Errorf("%w: runtime iterations, workers and ticks must be >= 0", hair.ErrInvalidSettings)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", hair.ErrInvalidSettings, c.Window.Width, c.Window.Height)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 || !(c.Snapshot.Scale > 0) {
		return fmt.Errorf("%w: snapshot %dx%d at scale %v", hair.ErrInvalidSettings,
			c.Snapshot.Width, c.Snapshot.Height, c.Snapshot.Scale)
	}
	return nil
}

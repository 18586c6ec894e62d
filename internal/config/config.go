// Package config handles fairingkit configuration loading and management.
package config

import (
	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

// Config holds all fairingkit settings.
type Config struct {
	Shell    ShellConfig    `yaml:"shell"`
	Jettison JettisonConfig `yaml:"jettison"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ShellConfig holds the default tessellation used when a definition leaves
// a field unset, and by the editor's free-form profile.
type ShellConfig struct {
	RadialSegments int     `yaml:"radial_segments"`
	PanelCount     int     `yaml:"panel_count"`
	WallThickness  float32 `yaml:"wall_thickness"`
	StrictPanels   bool    `yaml:"strict_panels"`
}

// JettisonConfig holds the default separation parameters.
type JettisonConfig struct {
	Force             float32    `yaml:"force"`
	Direction         [3]float32 `yaml:"direction"`
	Mass              float32    `yaml:"mass"`
	InheritedVelocity [3]float32 `yaml:"inherited_velocity"`
}

// ViewerConfig holds editor window and playback settings.
type ViewerConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Sound     bool    `yaml:"sound"`
	SFXVolume float32 `yaml:"sfx_volume"`
	Gravity   float32 `yaml:"gravity"` // m/s^2 along -Y
	Texture   string  `yaml:"texture"` // atlas image; empty uses a checker
	SoundFile string  `yaml:"sound_file"`
}

// CatalogConfig holds definition catalog settings.
type CatalogConfig struct {
	Path    string `yaml:"path"`    // .yaml or .toml catalog
	Default string `yaml:"default"` // definition shown on start
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	jet := fairing.DefaultJettisonSpec()
	return &Config{
		Shell: ShellConfig{
			RadialSegments: fairing.DefaultRadialSegments,
			PanelCount:     fairing.DefaultPanelCount,
			WallThickness:  fairing.DefaultWallThickness,
		},
		Jettison: JettisonConfig{
			Force:     jet.Force,
			Direction: jet.Direction.Array(),
			Mass:      jet.Mass,
		},
		Viewer: ViewerConfig{
			Width:     1280,
			Height:    720,
			Sound:     true,
			SFXVolume: 0.8,
			Gravity:   9.81,
			SoundFile: "jettison.wav",
		},
		Catalog: CatalogConfig{
			Path: "catalogs/stock.yaml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the shell section into generator options.
func (c *Config) Options() fairing.Options {
	opts := fairing.DefaultOptions()
	opts.RadialSegments = c.Shell.RadialSegments
	opts.PanelCount = c.Shell.PanelCount
	opts.WallThickness = c.Shell.WallThickness
	opts.StrictPanels = c.Shell.StrictPanels
	return opts
}

// JettisonSpec converts the jettison section.
func (c *Config) JettisonSpec() fairing.JettisonSpec {
	return fairing.JettisonSpec{
		Force:     c.Jettison.Force,
		Direction: math.V3(c.Jettison.Direction),
		Mass:      c.Jettison.Mass,
	}
}

// InheritedVelocity returns the velocity handed to jettisoned panels.
func (c *Config) InheritedVelocity() math.Vec3 {
	return math.V3(c.Jettison.InheritedVelocity)
}

package config

import "flag"

// Overrides holds command-line values that take priority over the config
// file. Zero values leave the file setting alone.
type Overrides struct {
	ConfigPath string
	Debug      bool
	Sides      int
	Panels     int
	Thickness  float64
	Catalog    string
	Width      int
	Height     int
	Mute       bool
}

// Register binds the override flags to fs. Pass flag.CommandLine from a
// plain main, or a fresh set that cobra imports with AddGoFlagSet.
func (o *Overrides) Register(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&o.Sides, "sides", 0, "Radial segments")
	fs.IntVar(&o.Panels, "panels", 0, "Panel count")
	fs.Float64Var(&o.Thickness, "thickness", 0, "Wall thickness")
	fs.StringVar(&o.Catalog, "catalog", "", "Definition catalog (.yaml or .toml)")
	fs.IntVar(&o.Width, "width", 0, "Window width")
	fs.IntVar(&o.Height, "height", 0, "Window height")
	fs.BoolVar(&o.Mute, "mute", false, "Disable sound effects")
}

// apply applies CLI overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.Sides > 0 {
		cfg.Shell.RadialSegments = o.Sides
	}
	if o.Panels > 0 {
		cfg.Shell.PanelCount = o.Panels
	}
	if o.Thickness > 0 {
		cfg.Shell.WallThickness = float32(o.Thickness)
	}
	if o.Catalog != "" {
		cfg.Catalog.Path = o.Catalog
	}
	if o.Width > 0 {
		cfg.Viewer.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Viewer.Height = o.Height
	}
	if o.Mute {
		cfg.Viewer.Sound = false
	}
}

package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config     string
	Debug      bool
	Model      string
	Mode       string
	ShaderDir  string
	DumpConfig string
	Width      int
	Height     int
	Samples    int
	Fullscreen bool
	Windowed   bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Model, "model", "", "Path to the OBJ model")
	fs.StringVar(&f.Mode, "mode", "", "Start mode: phong, raytrace or pathtrace")
	fs.StringVar(&f.ShaderDir, "shader-dir", "", "Load and hot-reload shaders from this directory")
	fs.StringVar(&f.DumpConfig, "dump-config", "", "Write the effective config to this path and exit")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.Samples, "samples", 0, "Path tracer samples per pixel")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
}

var cli Flags

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	cli.Register(flag.CommandLine)
	flag.Parse()
}

// CommandLine returns the parsed command-line flags.
func CommandLine() *Flags {
	return &cli
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Model != "" {
		cfg.Scene.Model = f.Model
	}
	if f.Mode != "" {
		cfg.Scene.StartMode = f.Mode
	}
	if f.ShaderDir != "" {
		cfg.Shaders.WatchDir = f.ShaderDir
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.Samples > 0 {
		cfg.Scene.Samples = f.Samples
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
}

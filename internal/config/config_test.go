package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 960 {
		t.Errorf("expected 1280x960, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Scene.Samples != 5 {
		t.Errorf("expected 5 samples, got %d", cfg.Scene.Samples)
	}
	if cfg.Scene.WorkgroupSize != 16 {
		t.Errorf("expected workgroup size 16, got %d", cfg.Scene.WorkgroupSize)
	}
	if cfg.Light.SpotAngle != 45 {
		t.Errorf("expected spot angle 45, got %f", cfg.Light.SpotAngle)
	}
	if cfg.Camera.Pitch != 22 || cfg.Camera.Yaw != 116 || cfg.Camera.Distance != 120 {
		t.Errorf("unexpected camera pose %+v", cfg.Camera)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
graphics:
  width: 1920
  height: 1080
  vsync: false
scene:
  model: "assets/sponza.obj"
  samples: 12
  start_mode: "pathtrace"
light:
  spot_angle: 30
  position: [1, 2, 3]
shaders:
  watch_dir: "shaders"
logging:
  level: "debug"
  log_file: "litscene.log"
`)

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.VSync {
		t.Errorf("graphics = %+v", cfg.Graphics)
	}
	if cfg.Scene.Model != "assets/sponza.obj" || cfg.Scene.Samples != 12 || cfg.Scene.StartMode != "pathtrace" {
		t.Errorf("scene = %+v", cfg.Scene)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Scene.WorkgroupSize != 16 {
		t.Errorf("expected default workgroup size, got %d", cfg.Scene.WorkgroupSize)
	}
	if cfg.Light.SpotAngle != 30 || cfg.Light.Position != [3]float32{1, 2, 3} {
		t.Errorf("light = %+v", cfg.Light)
	}
	if cfg.Shaders.WatchDir != "shaders" {
		t.Errorf("expected watch dir 'shaders', got %q", cfg.Shaders.WatchDir)
	}
	if cfg.Logging.LogFile != "litscene.log" {
		t.Errorf("expected log file 'litscene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := writeConfig(t, `
graphics:
  width: not a number
  invalid syntax here
`)
	if err := loadFromFile(Default(), path); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/litscene.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "scene:\n  samples: 3\ngraphics:\n  fullscreen: true\n")

	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Register(fs)
	args := []string{"-config", path, "-samples", "9", "-mode", "raytrace", "-windowed", "-debug", "-model", "x.obj"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := LoadWith(&f)
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.Scene.Samples != 9 {
		t.Errorf("expected flag samples 9, got %d", cfg.Scene.Samples)
	}
	if cfg.Scene.StartMode != "raytrace" || cfg.Scene.Model != "x.obj" {
		t.Errorf("scene = %+v", cfg.Scene)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("-windowed should override the file")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"width", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"samples", func(c *Config) { c.Scene.Samples = 0 }, "scene.samples"},
		{"mode", func(c *Config) { c.Scene.StartMode = "wireframe" }, "start_mode"},
		{"layers", func(c *Config) { c.Scene.MaxTextureLayers = 300 }, "max_texture_layers"},
		{"spot", func(c *Config) { c.Light.SpotAngle = 180 }, "spot_angle"},
		{"model", func(c *Config) { c.Scene.Model = "" }, "scene.model"},
		{"workgroup zero", func(c *Config) { c.Scene.WorkgroupSize = 0 }, "workgroup_size"},
		{"workgroup invocations", func(c *Config) { c.Scene.WorkgroupSize = 64 }, "invocations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateLargestPortableWorkgroup(t *testing.T) {
	cfg := Default()
	cfg.Scene.WorkgroupSize = 32
	if err := cfg.Validate(); err != nil {
		t.Errorf("32x32 groups should be accepted: %v", err)
	}
}

func TestLoadWithRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "scene:\n  samples: -1\n")
	if _, err := LoadWith(&Flags{Config: path}); err == nil {
		t.Error("expected invalid config error")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Scene.Samples = 42

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Scene.Samples != 42 {
		t.Errorf("expected 42 samples after reload, got %d", loaded.Scene.Samples)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if got := findConfigFile(); got != "" {
		t.Errorf("expected no config file, got %s", got)
	}

	if err := os.WriteFile(FileName, []byte("scene:\n  samples: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got == "" {
		t.Error("expected to find config in working directory")
	}
}

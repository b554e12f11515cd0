// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/litscene/internal/scene"
)

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Light    LightConfig    `yaml:"light"`
	Camera   CameraConfig   `yaml:"camera"`
	Shaders  ShaderConfig   `yaml:"shaders"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures go here
}

// SceneConfig holds the model and render mode settings.
type SceneConfig struct {
	Model            string `yaml:"model"`
	Samples          int    `yaml:"samples"`            // Path tracer samples per pixel per frame
	WorkgroupSize    int    `yaml:"workgroup_size"`     // Compute tile edge, must match the shaders
	MaxTextureLayers int    `yaml:"max_texture_layers"` // Upper bound on distinct diffuse textures
	StartMode        string `yaml:"start_mode"`
}

// LightConfig holds the light controller settings.
type LightConfig struct {
	SpotAngle float32    `yaml:"spot_angle"` // Cone used when the spot is toggled on (degrees)
	MoveSpeed float32    `yaml:"move_speed"`
	TurnSpeed float32    `yaml:"turn_speed"`
	Position  [3]float32 `yaml:"position"`
}

// CameraConfig holds the initial orbit pose. Angles are in degrees.
type CameraConfig struct {
	Pitch     float32 `yaml:"pitch"`
	Yaw       float32 `yaml:"yaw"`
	Distance  float32 `yaml:"distance"`
	TurnSpeed float32 `yaml:"turn_speed"`
}

// ShaderConfig holds shader source settings.
type ShaderConfig struct {
	WatchDir string `yaml:"watch_dir"` // Load and hot-reload shaders from here; empty uses embedded sources
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MaxPortableInvocations is the compute work group size OpenGL 4.3
// guarantees. Drivers may allow more; the GPU layer checks the real limit.
const MaxPortableInvocations = 1024

// Default returns a Config with the demo's default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 960,
			VSync:  true,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Model:            "media/blocks.obj",
			Samples:          5,
			WorkgroupSize:    16,
			MaxTextureLayers: 254,
			StartMode:        "phong",
		},
		Light: LightConfig{
			SpotAngle: 45,
			MoveSpeed: 0.001,
			TurnSpeed: 0.005,
			Position:  [3]float32{0, 30, 0},
		},
		Camera: CameraConfig{
			Pitch:     22,
			Yaw:       116,
			Distance:  120,
			TurnSpeed: 0.25,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside startup.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Scene.Model == "" {
		errs = append(errs, errors.New("scene.model is required"))
	}
	if c.Scene.Samples < 1 {
		errs = append(errs, fmt.Errorf("scene.samples %d must be at least 1", c.Scene.Samples))
	}
	if gs := c.Scene.WorkgroupSize; gs < 1 {
		errs = append(errs, fmt.Errorf("scene.workgroup_size %d must be at least 1", gs))
	} else if gs*gs > MaxPortableInvocations {
		errs = append(errs, fmt.Errorf("scene.workgroup_size %d: a %dx%d group exceeds the %d invocations OpenGL 4.3 guarantees",
			gs, gs, gs, MaxPortableInvocations))
	}
	if c.Scene.MaxTextureLayers < 1 || c.Scene.MaxTextureLayers > 254 {
		errs = append(errs, fmt.Errorf("scene.max_texture_layers %d must be in [1, 254]", c.Scene.MaxTextureLayers))
	}
	if _, err := scene.ParseMode(c.Scene.StartMode); err != nil {
		errs = append(errs, fmt.Errorf("scene.start_mode: %w", err))
	}
	if c.Light.SpotAngle <= 0 || c.Light.SpotAngle >= scene.PointLightAngle {
		errs = append(errs, fmt.Errorf("light.spot_angle %g must be in (0, 180)", c.Light.SpotAngle))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera.distance %g must be positive", c.Camera.Distance))
	}
	return errors.Join(errs...)
}

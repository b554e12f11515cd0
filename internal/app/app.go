// Package app wires the scene compiler, controllers and render modes into
// the interactive demo loop.
package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/assets"
	"github.com/Faultbox/litscene/internal/config"
	"github.com/Faultbox/litscene/internal/engine/camera"
	"github.com/Faultbox/litscene/internal/engine/capture"
	"github.com/Faultbox/litscene/internal/engine/gpu"
	"github.com/Faultbox/litscene/internal/engine/input"
	"github.com/Faultbox/litscene/internal/engine/render"
	"github.com/Faultbox/litscene/internal/engine/shaders"
	"github.com/Faultbox/litscene/internal/engine/texture"
	"github.com/Faultbox/litscene/internal/engine/window"
	"github.com/Faultbox/litscene/internal/geometry"
	"github.com/Faultbox/litscene/internal/logger"
	"github.com/Faultbox/litscene/internal/scene"
	"github.com/Faultbox/litscene/pkg/math"
)

// Title is the window title prefix.
const Title = "LitScene"

// App is the demo instance. All fields are owned by the main thread.
type App struct {
	cfg        *config.Config
	log        *zap.Logger
	window     *window.Window
	input      *input.Input
	translator *input.Translator
	library    *shaders.Library
	watcher    *shaders.Watcher
	gpuScene   *gpu.Scene
	renderer   *render.Renderer
	state      *scene.State
	controls   scene.Chain
	dispatcher *scene.Dispatcher
	screenshot *capture.Screenshot
	running    bool
}

// New opens the window, compiles the scene and uploads it. Any failure
// releases what was created and is returned to the caller.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}
	ready := false
	defer func() {
		if !ready {
			a.Close()
		}
	}()

	startMode, err := scene.ParseMode(cfg.Scene.StartMode)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	limits, err := gpu.Init()
	if err != nil {
		return nil, err
	}
	if err := gpu.CheckWorkGroupSize(limits, cfg.Scene.WorkgroupSize); err != nil {
		return nil, fmt.Errorf("scene.workgroup_size: %w", err)
	}

	a.library, err = shaders.NewLibrary(shaders.Reader{
		Dir:     cfg.Shaders.WatchDir,
		Defines: map[string]string{"WORKGROUP_SIZE": strconv.Itoa(cfg.Scene.WorkgroupSize)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile shaders: %w", err)
	}

	if cfg.Shaders.WatchDir != "" {
		a.watcher, err = shaders.Watch(cfg.Shaders.WatchDir)
		if err != nil {
			return nil, err
		}
	}

	model, err := assets.LoadModel(cfg.Scene.Model)
	if err != nil {
		return nil, err
	}

	textures := gpu.NewTextureArray(limits)
	compiler := geometry.NewCompiler(texture.FileLoader{BaseDir: model.Dir}, cfg.Scene.MaxTextureLayers)
	bt, err := compiler.Compile(ctx, model.Meshes, textures)
	if err != nil {
		textures.Delete()
		return nil, fmt.Errorf("failed to compile scene: %w", err)
	}

	a.gpuScene, err = gpu.UploadScene(bt, textures, limits)
	if err != nil {
		textures.Delete()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = render.New(a.library, a.gpuScene, limits, width, height, cfg.Scene.WorkgroupSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.state = newState(cfg, width, height)
	a.state.Mode = startMode

	light := scene.NewLightControl(cfg.Light.MoveSpeed, cfg.Light.TurnSpeed)
	light.SetOrientation(a.state.Camera.Orientation().Conjugate(), a.state)
	a.controls = scene.Chain{light, &scene.CameraControl{TurnSpeed: cfg.Camera.TurnSpeed}}

	a.dispatcher = scene.NewDispatcher(a.renderer.Phong, a.renderer.RayTrace, a.renderer.PathTrace)

	a.screenshot = capture.NewScreenshot(cfg.Graphics.ScreenshotDir, "litscene")
	a.input = input.New()
	a.translator = input.NewTranslator()

	a.log.Info("Scene ready",
		zap.String("model", cfg.Scene.Model),
		zap.Int("triangles", bt.TriangleCount()),
		zap.Int("uniqueVertices", len(bt.Vertices)),
		zap.Int("textures", len(bt.Layers)),
		zap.Stringer("mode", a.state.Mode),
	)
	ready = true
	return a, nil
}

func newState(cfg *config.Config, width, height int) *scene.State {
	cam := camera.NewOrbit(cfg.Camera.Pitch, cfg.Camera.Yaw, cfg.Camera.Distance)
	st := scene.NewState(cam, cfg.Light.SpotAngle)
	p := cfg.Light.Position
	st.Light.Position = math.Vec4{X: p[0], Y: p[1], Z: p[2], W: 1}
	st.Samples = cfg.Scene.Samples
	st.Resize(width, height)
	return st
}

// Run drives the frame loop until quit or a render error.
func (a *App) Run(ctx context.Context) error {
	a.running = true
	start := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	a.updateTitle()

	a.log.Info("Starting frame loop")

	for a.running {
		if ctx.Err() != nil {
			break
		}
		if a.input.Update() {
			break
		}

		cmds, motions := a.translator.Translate(a.input.Events())
		wantCapture := false
		for _, c := range cmds {
			if c.Type == input.CmdScreenshot {
				wantCapture = true
				continue
			}
			if err := a.handle(c); err != nil {
				return err
			}
		}
		if len(motions) == 0 {
			a.controls.OnNoMotion(a.state)
		}
		for _, m := range motions {
			a.controls.OnMotion(m, a.state)
		}

		if a.watcher != nil {
			a.library.Drain(a.watcher.Changes())
		}

		a.state.Elapsed = time.Since(start).Seconds()
		if err := a.dispatcher.Frame(a.state); err != nil {
			return fmt.Errorf("render error in %s: %w", a.state.Mode, err)
		}
		if wantCapture {
			a.capture()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Stringer("mode", a.state.Mode))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("Frame loop stopped")
	return nil
}

func (a *App) handle(c input.Command) error {
	switch c.Type {
	case input.CmdQuit:
		a.running = false
	case input.CmdCycleMode:
		m := a.dispatcher.Cycle(a.state)
		a.log.Info("Render mode changed", zap.Stringer("mode", m))
		a.updateTitle()
	case input.CmdToggleSpot:
		a.state.ToggleSpot()
		a.log.Info("Spot toggled", zap.Float32("angle", a.state.Light.SpotAngle))
	case input.CmdToggleLight:
		a.state.Light.On = !a.state.Light.On
	case input.CmdResize:
		// Drawable size can differ from the event's window size on high-DPI.
		w, h := a.window.DrawableSize()
		if w <= 0 || h <= 0 {
			return nil
		}
		if err := a.renderer.Resize(w, h); err != nil {
			return fmt.Errorf("resize to %dx%d: %w", w, h, err)
		}
		a.state.Resize(w, h)
		a.log.Debug("Resized", zap.Int("width", w), zap.Int("height", h))
	}
	return nil
}

// capture saves the frame just rendered, before the swap.
func (a *App) capture() {
	w, h := a.state.Width, a.state.Height
	path, err := a.screenshot.SaveFramebuffer(a.renderer.ReadPixels(w, h), w, h, a.state.Mode.String())
	if err != nil {
		a.log.Warn("Screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("Screenshot saved", zap.String("path", path))
}

func (a *App) updateTitle() {
	a.window.SetTitle(fmt.Sprintf("%s - %s", Title, a.state.Mode))
}

// Close releases GPU objects, the watcher and the window in reverse order
// of creation. It is safe on a partially constructed App.
func (a *App) Close() {
	a.log.Info("Closing")

	if a.renderer != nil {
		a.renderer.Delete()
	}
	if a.gpuScene != nil {
		a.gpuScene.Delete()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("Failed to close shader watcher", zap.Error(err))
		}
	}
	if a.library != nil {
		a.library.Delete()
	}
	if a.window != nil {
		a.window.Close()
	}
}

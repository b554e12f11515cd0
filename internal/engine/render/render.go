// Package render implements the three lighting modes over an uploaded scene.
package render

import (
	gomath "math"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/Faultbox/litscene/internal/engine/gpu"
	"github.com/Faultbox/litscene/internal/engine/shader"
	"github.com/Faultbox/litscene/internal/engine/shaders"
	"github.com/Faultbox/litscene/internal/scene"
	"github.com/Faultbox/litscene/pkg/math"
)

const (
	// Crosshair arm length as a fraction of the scene diagonal, with a
	// floor for empty or flat scenes.
	crosshairScale   float32 = 0.01
	minCrosshairSize float32 = 0.5
	// Seed period keeps float precision once the app has run for hours.
	seedPeriod = 4096.0
)

var crosshairColor = math.Vec3{X: 1, Y: 1, Z: 0}

// Renderer draws frames. Passes read the scene buffers and write only the
// output image and the framebuffer.
type Renderer struct {
	lib       *shaders.Library
	scene     *gpu.Scene
	output    *gpu.OutputImage
	proc      *gpu.Procedural
	limits    gpu.Limits
	groupSize int
	crosshair float32
}

// New creates a renderer with an output image sized to the viewport. The
// viewport must be coverable by one dispatch of groupSize tiles.
func New(lib *shaders.Library, sc *gpu.Scene, limits gpu.Limits, width, height, groupSize int) (*Renderer, error) {
	if err := gpu.CheckDispatch(limits, width, height, groupSize); err != nil {
		return nil, err
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	return &Renderer{
		lib:       lib,
		scene:     sc,
		output:    gpu.NewOutputImage(width, height),
		proc:      gpu.NewProcedural(),
		limits:    limits,
		groupSize: groupSize,
		crosshair: CrosshairSize(sc.Bounds()),
	}, nil
}

// Resize reallocates the output image only; scene buffers are untouched.
// A size that needs more work groups than the driver allows is rejected
// and the previous image is kept.
func (r *Renderer) Resize(width, height int) error {
	if err := gpu.CheckDispatch(r.limits, width, height, r.groupSize); err != nil {
		return err
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	r.output.Resize(width, height)
	return nil
}

// Phong rasterizes the scene and marks the light with a crosshair.
func (r *Renderer) Phong(st *scene.State) error {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	vp := st.Camera.ViewProjection()

	p := r.lib.Program(shaders.Phong)
	p.Use()
	p.SetMat4("viewProjection", vp)
	p.SetVec3("eyePosition", st.Camera.Eye())
	setLight(p, st)
	r.scene.Textures.Bind(gpu.UnitTextures)

	r.scene.Mesh.Bind()
	for _, g := range r.scene.Mesh.Groups {
		p.SetVec3("diffuseColor", g.Diffuse)
		p.SetUint("textureId", g.Slot)
		r.scene.Mesh.DrawGroup(g)
	}
	gl.BindVertexArray(0)

	f := r.lib.Program(shaders.Flat)
	f.Use()
	f.SetMat4("viewProjection", vp)
	f.SetVec3("center", st.Light.Position.Vec3())
	f.SetFloat("size", r.crosshair)
	f.SetVec3("color", crosshairColor)
	r.proc.Draw(gl.LINES, 6)

	return gpu.CheckError("phong pass")
}

// RayTrace casts one primary ray per pixel with a shadow ray to the light.
func (r *Renderer) RayTrace(st *scene.State) error {
	p := r.lib.Program(shaders.RayTrace)
	r.beginCompute(p, st)
	return r.finishCompute(p, "ray trace pass")
}

// PathTrace renders numSamples paths per pixel with a fresh seed. Each
// frame is an independent estimate.
func (r *Renderer) PathTrace(st *scene.State) error {
	p := r.lib.Program(shaders.PathTrace)
	r.beginCompute(p, st)
	p.SetInt("numSamples", int32(st.Samples))
	p.SetFloat("seed", Seed(st.Elapsed))
	return r.finishCompute(p, "path trace pass")
}

func (r *Renderer) beginCompute(p *shader.Program, st *scene.State) {
	p.Use()
	r.scene.Bind()
	r.output.BindImage(gpu.ImageUnitOutput)

	ivp := st.Camera.InverseViewProjection()
	p.SetMat4("inverseViewProjection", ivp)
	p.SetVec3("eyePosition", st.Camera.Eye())
	setLight(p, st)
}

func (r *Renderer) finishCompute(p *shader.Program, op string) error {
	p.Dispatch(r.output.Width, r.output.Height, r.groupSize)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)

	gl.Disable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	q := r.lib.Program(shaders.Quad)
	q.Use()
	r.output.BindTexture(gpu.UnitOutput)
	q.SetInt("image", int32(gpu.UnitOutput))
	r.proc.Draw(gl.TRIANGLE_STRIP, 4)

	return gpu.CheckError(op)
}

// ReadPixels reads back the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Delete releases the renderer's own objects. The scene and library are
// owned by the caller.
func (r *Renderer) Delete() {
	r.output.Delete()
	r.proc.Delete()
}

func setLight(p *shader.Program, st *scene.State) {
	p.SetVec4("lightPosition", st.Light.Position)
	p.SetVec4("spotDirection", st.Light.SpotDirection)
	p.SetFloat("spotAngle", st.Light.SpotAngle)
	p.SetBool("lightOn", st.Light.On)
}

// CrosshairSize scales the light marker to the scene bounds.
func CrosshairSize(lo, hi math.Vec3) float32 {
	return max(hi.Sub(lo).Length()*crosshairScale, minCrosshairSize)
}

// Seed derives the per-frame path tracer seed from elapsed seconds.
func Seed(elapsed float64) float32 {
	return float32(gomath.Mod(elapsed, seedPeriod)) + 1
}

// Package camera provides the orbit camera used by every render mode.
package camera

import (
	"github.com/Faultbox/litscene/pkg/math"
)

// Orbit looks at the origin from a fixed distance, rotated by pitch and yaw.
// Angles are in degrees.
type Orbit struct {
	Pitch    float32
	Yaw      float32
	Distance float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Projection
	FovY   float32 // degrees
	Near   float32
	Far    float32
	Aspect float32
}

// NewOrbit creates an orbit camera with the given pose and default limits.
func NewOrbit(pitch, yaw, distance float32) *Orbit {
	return &Orbit{
		Pitch:       pitch,
		Yaw:         yaw,
		Distance:    distance,
		MinDistance: 1,
		MaxDistance: 1000,
		MinPitch:    -89,
		MaxPitch:    89,
		FovY:        60,
		Near:        0.1,
		Far:         1000,
		Aspect:      4.0 / 3.0,
	}
}

// View returns the view matrix: translate back by Distance, then pitch
// around X, then yaw around Y.
func (c *Orbit) View() math.Mat4 {
	v := math.Translate(math.Vec3{Z: -c.Distance})
	v = v.Mul(math.RotateAxis(math.Vec3{X: 1}, math.Radians(c.Pitch)))
	return v.Mul(math.RotateAxis(math.Vec3{Y: 1}, math.Radians(c.Yaw)))
}

// Projection returns the perspective projection for the current aspect.
func (c *Orbit) Projection() math.Mat4 {
	return math.Perspective(math.Radians(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Orbit) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.View())
}

// InverseViewProjection maps clip space back to world space for ray generation.
func (c *Orbit) InverseViewProjection() math.Mat4 {
	inv, _ := c.ViewProjection().Inverse()
	return inv
}

// Eye returns the camera position in world space.
func (c *Orbit) Eye() math.Vec3 {
	inv, _ := c.View().Inverse()
	return inv.Translation()
}

// Orientation returns the rotation part of the view.
func (c *Orbit) Orientation() math.Quat {
	return math.QuatFromMat4(c.View())
}

// Resize refits the projection to a new viewport.
func (c *Orbit) Resize(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// HandleDrag rotates the camera by a drag delta in degrees.
func (c *Orbit) HandleDrag(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch = clamp(c.Pitch+deltaPitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom scales the distance by a wheel delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*0.1, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

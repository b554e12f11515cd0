package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/logger"
	"github.com/Faultbox/litscene/pkg/math"
)

// Target selects which controller a motion event is meant for.
type Target int

const (
	TargetLight Target = iota
	TargetCamera
)

// MotionEvent is one sample of 3D motion input: a translation and a
// rotation (x = pitch, y = yaw, z = roll) in device units.
type MotionEvent struct {
	Target      Target
	Translation math.Vec3
	Rotation    math.Vec3
}

// StateDelta reports which parts of the state a handler changed.
type StateDelta uint8

const (
	LightMoved StateDelta = 1 << iota
	LightTurned
	CameraMoved
)

// Has reports whether all bits of f are set.
func (d StateDelta) Has(f StateDelta) bool {
	return d&f == f
}

// MotionHandler turns motion input into state changes.
type MotionHandler interface {
	OnMotion(ev MotionEvent, st *State) StateDelta
	OnNoMotion(st *State)
}

// Chain forwards every event to each handler in order.
type Chain []MotionHandler

// OnMotion implements MotionHandler.
func (c Chain) OnMotion(ev MotionEvent, st *State) StateDelta {
	var d StateDelta
	for _, h := range c {
		d |= h.OnMotion(ev, st)
	}
	return d
}

// OnNoMotion implements MotionHandler.
func (c Chain) OnNoMotion(st *State) {
	for _, h := range c {
		h.OnNoMotion(st)
	}
}

// LightControl moves the light in the controller's frame and, when the
// light is a spot, steers its cone.
type LightControl struct {
	MoveSpeed float32 // world units per device unit
	TurnSpeed float32 // degrees per device unit

	orientation math.Quat
	direction   math.Quat
	log         *zap.Logger
}

// NewLightControl returns a light controller with the given speeds.
func NewLightControl(moveSpeed, turnSpeed float32) *LightControl {
	return &LightControl{
		MoveSpeed:   moveSpeed,
		TurnSpeed:   turnSpeed,
		orientation: math.QuatIdentity(),
		direction:   math.QuatIdentity(),
		log:         logger.Named("LightController"),
	}
}

// SetOrientation sets the frame used to map device translation into world
// space, and resets the spot direction to it.
func (c *LightControl) SetOrientation(q math.Quat, st *State) {
	c.orientation = q
	c.direction = q
	c.updateDirection(st)
}

func (c *LightControl) updateDirection(st *State) {
	d := c.direction.Rotate(math.Vec3{Y: -1}).Normalize()
	st.Light.SpotDirection = d.Vec4(0)
}

// OnMotion implements MotionHandler.
func (c *LightControl) OnMotion(ev MotionEvent, st *State) StateDelta {
	if ev.Target != TargetLight {
		return 0
	}

	var d StateDelta
	if st.Light.IsSpot() && ev.Rotation != (math.Vec3{}) {
		r := ev.Rotation.Scale(c.TurnSpeed)
		turn := math.QuatFromEuler(math.Radians(r.X), math.Radians(r.Y), math.Radians(r.Z))
		c.direction = c.direction.Mul(turn).Normalize()
		c.updateDirection(st)
		d |= LightTurned
	}

	if ev.Translation != (math.Vec3{}) {
		t := c.orientation.Rotate(ev.Translation).Scale(c.MoveSpeed)
		st.Light.Position = st.Light.Position.Add(t.Vec4(0))
		d |= LightMoved

		p := st.Light.Position
		c.log.Debug("light moved",
			zap.Float32("x", p.X),
			zap.Float32("y", p.Y),
			zap.Float32("z", p.Z),
		)
	}
	return d
}

// OnNoMotion implements MotionHandler.
func (c *LightControl) OnNoMotion(*State) {}

// CameraControl orbits the camera. Rotation x/y map to pitch/yaw in
// degrees, translation z zooms.
type CameraControl struct {
	TurnSpeed float32
}

// OnMotion implements MotionHandler.
func (c *CameraControl) OnMotion(ev MotionEvent, st *State) StateDelta {
	if ev.Target != TargetCamera {
		return 0
	}

	var d StateDelta
	if ev.Rotation.X != 0 || ev.Rotation.Y != 0 {
		st.Camera.HandleDrag(ev.Rotation.Y*c.TurnSpeed, ev.Rotation.X*c.TurnSpeed)
		d |= CameraMoved
	}
	if ev.Translation.Z != 0 {
		st.Camera.HandleZoom(ev.Translation.Z)
		d |= CameraMoved
	}
	return d
}

// OnNoMotion implements MotionHandler.
func (c *CameraControl) OnNoMotion(*State) {}

package scene

import (
	"github.com/Faultbox/litscene/internal/engine/camera"
	"github.com/Faultbox/litscene/pkg/math"
)

// PointLightAngle is the spot cutoff that turns the spot into a point light.
const PointLightAngle float32 = 180

// Light is the single scene light. It is written only by LightControl and by
// the spot toggle.
type Light struct {
	On            bool
	Position      math.Vec4
	SpotDirection math.Vec4
	SpotAngle     float32 // degrees; PointLightAngle disables the cone
}

// IsSpot reports whether the light has a cone.
func (l *Light) IsSpot() bool {
	return l.SpotAngle < PointLightAngle
}

// State is the mutable scene state shared by the controllers and the
// render modes. Light fields belong to LightControl, Camera to CameraControl,
// Mode to the Dispatcher.
type State struct {
	Light    Light
	Camera   *camera.Orbit
	Mode     Mode
	Samples  int
	Width    int
	Height   int
	Elapsed  float64 // seconds since start, drives the path tracer seed
	spotCone float32
}

// NewState returns the initial scene state.
func NewState(cam *camera.Orbit, spotAngle float32) *State {
	return &State{
		Light: Light{
			On:            true,
			Position:      math.Vec4{Y: 30, W: 1},
			SpotDirection: math.Vec4{Z: 1},
			SpotAngle:     PointLightAngle,
		},
		Camera:   cam,
		Samples:  5,
		spotCone: spotAngle,
	}
}

// ToggleSpot switches between a point light and the configured spot cone.
func (s *State) ToggleSpot() {
	if s.Light.SpotAngle == PointLightAngle {
		s.Light.SpotAngle = s.spotCone
	} else {
		s.Light.SpotAngle = PointLightAngle
	}
}

// Resize records the new viewport and refits the camera projection.
func (s *State) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.Camera.Resize(width, height)
}

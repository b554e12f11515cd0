package app

import (
	"testing"

	"github.com/Faultbox/litscene/internal/config"
	"github.com/Faultbox/litscene/internal/scene"
)

func TestNewStateFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Light.Position = [3]float32{1, 2, 3}
	cfg.Scene.Samples = 9

	st := newState(cfg, 640, 480)

	if st.Light.Position.X != 1 || st.Light.Position.Y != 2 || st.Light.Position.Z != 3 || st.Light.Position.W != 1 {
		t.Errorf("light position = %+v", st.Light.Position)
	}
	if st.Light.SpotAngle != scene.PointLightAngle {
		t.Errorf("light starts as spot %g, want point light", st.Light.SpotAngle)
	}
	if st.Samples != 9 {
		t.Errorf("samples = %d, want 9", st.Samples)
	}
	if st.Width != 640 || st.Height != 480 {
		t.Errorf("viewport = %dx%d", st.Width, st.Height)
	}
	if st.Camera.Pitch != cfg.Camera.Pitch || st.Camera.Yaw != cfg.Camera.Yaw || st.Camera.Distance != cfg.Camera.Distance {
		t.Errorf("camera = %+v", st.Camera)
	}
	if got, want := st.Camera.Aspect, float32(640)/480; got != want {
		t.Errorf("aspect = %v, want %v", got, want)
	}

	st.ToggleSpot()
	if st.Light.SpotAngle != cfg.Light.SpotAngle {
		t.Errorf("toggled spot angle = %g, want %g", st.Light.SpotAngle, cfg.Light.SpotAngle)
	}
}

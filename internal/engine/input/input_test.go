package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/litscene/internal/scene"
	"github.com/Faultbox/litscene/pkg/math"
)

func TestTranslateCommands(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  CommandType
	}{
		{"escape quits", Event{Type: EventKeyDown, Key: sdl.SCANCODE_ESCAPE}, CmdQuit},
		{"window close quits", Event{Type: EventQuit}, CmdQuit},
		{"m cycles", Event{Type: EventKeyDown, Key: sdl.SCANCODE_M}, CmdCycleMode},
		{"space cycles", Event{Type: EventKeyDown, Key: sdl.SCANCODE_SPACE}, CmdCycleMode},
		{"s toggles spot", Event{Type: EventKeyDown, Key: sdl.SCANCODE_S}, CmdToggleSpot},
		{"l toggles light", Event{Type: EventKeyDown, Key: sdl.SCANCODE_L}, CmdToggleLight},
		{"f12 captures", Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12}, CmdScreenshot},
		{"resize", Event{Type: EventWindowResize, Width: 800, Height: 600}, CmdResize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, _ := NewTranslator().Translate([]Event{tt.event})
			if len(cmds) != 1 || cmds[0].Type != tt.want {
				t.Fatalf("commands = %+v, want one %d", cmds, tt.want)
			}
			if tt.want == CmdResize && (cmds[0].Width != 800 || cmds[0].Height != 600) {
				t.Errorf("resize = %dx%d", cmds[0].Width, cmds[0].Height)
			}
		})
	}
}

func TestTranslateKeyRepeatIgnored(t *testing.T) {
	cmds, _ := NewTranslator().Translate([]Event{{Type: EventKeyDown, Key: sdl.SCANCODE_M, Repeat: true}})
	if len(cmds) != 0 {
		t.Errorf("repeat produced %+v", cmds)
	}
}

func TestTranslateHeldKeysMoveLight(t *testing.T) {
	tr := NewTranslator()

	_, motions := tr.Translate([]Event{{Type: EventKeyDown, Key: sdl.SCANCODE_UP}})
	if len(motions) != 1 {
		t.Fatalf("got %d motions, want 1", len(motions))
	}
	want := scene.MotionEvent{Target: scene.TargetLight, Translation: math.Vec3{Z: -KeyUnits}}
	if motions[0] != want {
		t.Errorf("motion = %+v, want %+v", motions[0], want)
	}

	// Still held on the next frame with no new events.
	if _, motions = tr.Translate(nil); len(motions) != 1 {
		t.Errorf("held key: got %d motions, want 1", len(motions))
	}

	if _, motions = tr.Translate([]Event{{Type: EventKeyUp, Key: sdl.SCANCODE_UP}}); len(motions) != 0 {
		t.Errorf("released key: got %d motions, want 0", len(motions))
	}
}

func TestTranslateDrag(t *testing.T) {
	tr := NewTranslator()

	// Motion without a button does nothing.
	if _, m := tr.Translate([]Event{{Type: EventMouseMove, DeltaX: 3, DeltaY: 4}}); len(m) != 0 {
		t.Errorf("hover produced %+v", m)
	}

	_, m := tr.Translate([]Event{
		{Type: EventMouseDown, Button: ButtonLeft},
		{Type: EventMouseMove, DeltaX: 3, DeltaY: 4},
	})
	if len(m) != 1 || m[0].Target != scene.TargetLight {
		t.Fatalf("left drag = %+v", m)
	}
	if m[0].Rotation != (math.Vec3{X: 4 * DragUnits, Y: 3 * DragUnits}) {
		t.Errorf("left drag rotation = %+v", m[0].Rotation)
	}

	_, m = tr.Translate([]Event{
		{Type: EventMouseUp, Button: ButtonLeft},
		{Type: EventMouseDown, Button: ButtonRight},
		{Type: EventMouseMove, DeltaX: 2, DeltaY: -1},
	})
	if len(m) != 1 || m[0].Target != scene.TargetCamera {
		t.Fatalf("right drag = %+v", m)
	}
	if m[0].Rotation != (math.Vec3{X: -1, Y: 2}) {
		t.Errorf("right drag rotation = %+v", m[0].Rotation)
	}
}

func TestTranslateWheel(t *testing.T) {
	_, m := NewTranslator().Translate([]Event{{Type: EventMouseWheel, Wheel: -2}})
	if len(m) != 1 || m[0].Target != scene.TargetCamera || m[0].Translation.Z != -2 {
		t.Errorf("wheel = %+v", m)
	}
}

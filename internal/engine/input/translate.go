package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/litscene/internal/scene"
	"github.com/Faultbox/litscene/pkg/math"
)

// CommandType is a discrete user action.
type CommandType int

const (
	CmdQuit CommandType = iota + 1
	CmdCycleMode
	CmdToggleSpot
	CmdToggleLight
	CmdResize
	CmdScreenshot
)

// Command is one discrete action produced by Translator.
type Command struct {
	Type          CommandType
	Width, Height int
}

// Device unit scales. The light controller speeds are tuned for 3D mouse
// units, so keys and drags are scaled up to comparable magnitudes.
const (
	KeyUnits   float32 = 500
	DragUnits  float32 = 100
	WheelUnits float32 = 1
)

var moveKeys = map[sdl.Scancode]math.Vec3{
	sdl.SCANCODE_LEFT:     {X: -1},
	sdl.SCANCODE_RIGHT:    {X: 1},
	sdl.SCANCODE_PAGEDOWN: {Y: -1},
	sdl.SCANCODE_PAGEUP:   {Y: 1},
	sdl.SCANCODE_UP:       {Z: -1},
	sdl.SCANCODE_DOWN:     {Z: 1},
}

// Translator turns raw events into commands and motion events. It keeps
// the held keys and buttons between frames.
type Translator struct {
	held    map[sdl.Scancode]bool
	buttons map[uint8]bool
}

// NewTranslator returns a translator with nothing held.
func NewTranslator() *Translator {
	return &Translator{
		held:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Translate processes one frame of events. Held movement keys produce one
// light translation per frame.
func (t *Translator) Translate(events []Event) ([]Command, []scene.MotionEvent) {
	var cmds []Command
	var motions []scene.MotionEvent

	for _, e := range events {
		switch e.Type {
		case EventQuit:
			cmds = append(cmds, Command{Type: CmdQuit})

		case EventWindowResize:
			cmds = append(cmds, Command{Type: CmdResize, Width: e.Width, Height: e.Height})

		case EventKeyDown:
			t.held[e.Key] = true
			if e.Repeat {
				continue
			}
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				cmds = append(cmds, Command{Type: CmdQuit})
			case sdl.SCANCODE_M, sdl.SCANCODE_SPACE:
				cmds = append(cmds, Command{Type: CmdCycleMode})
			case sdl.SCANCODE_S:
				cmds = append(cmds, Command{Type: CmdToggleSpot})
			case sdl.SCANCODE_L:
				cmds = append(cmds, Command{Type: CmdToggleLight})
			case sdl.SCANCODE_F12:
				cmds = append(cmds, Command{Type: CmdScreenshot})
			}

		case EventKeyUp:
			delete(t.held, e.Key)

		case EventMouseDown:
			t.buttons[e.Button] = true

		case EventMouseUp:
			delete(t.buttons, e.Button)

		case EventMouseMove:
			if e.DeltaX == 0 && e.DeltaY == 0 {
				continue
			}
			dx, dy := float32(e.DeltaX), float32(e.DeltaY)
			if t.buttons[ButtonLeft] {
				motions = append(motions, scene.MotionEvent{
					Target:   scene.TargetLight,
					Rotation: math.Vec3{X: dy, Y: dx}.Scale(DragUnits),
				})
			}
			if t.buttons[ButtonRight] {
				motions = append(motions, scene.MotionEvent{
					Target:   scene.TargetCamera,
					Rotation: math.Vec3{X: dy, Y: dx},
				})
			}

		case EventMouseWheel:
			if e.Wheel != 0 {
				motions = append(motions, scene.MotionEvent{
					Target:      scene.TargetCamera,
					Translation: math.Vec3{Z: e.Wheel * WheelUnits},
				})
			}
		}
	}

	var move math.Vec3
	for key, dir := range moveKeys {
		if t.held[key] {
			move = move.Add(dir)
		}
	}
	if move != (math.Vec3{}) {
		motions = append(motions, scene.MotionEvent{
			Target:      scene.TargetLight,
			Translation: move.Scale(KeyUnits),
		})
	}

	return cmds, motions
}

package scene

import "fmt"

// FrameFunc renders one frame for a lighting mode.
type FrameFunc func(st *State) error

// Dispatcher routes each frame to the handler of the current mode.
type Dispatcher struct {
	handlers [ModeCount]FrameFunc
}

// NewDispatcher returns a dispatcher with one handler per mode.
func NewDispatcher(phong, rayTrace, pathTrace FrameFunc) *Dispatcher {
	return &Dispatcher{handlers: [ModeCount]FrameFunc{phong, rayTrace, pathTrace}}
}

// Cycle advances st to the next mode.
func (d *Dispatcher) Cycle(st *State) Mode {
	st.Mode = st.Mode.Next()
	return st.Mode
}

// Frame renders one frame in the current mode.
func (d *Dispatcher) Frame(st *State) error {
	if st.Mode < 0 || st.Mode >= ModeCount {
		return fmt.Errorf("invalid mode %d", st.Mode)
	}
	h := d.handlers[st.Mode]
	if h == nil {
		return fmt.Errorf("no handler for %s", st.Mode)
	}
	return h(st)
}

// Package scene holds the per-frame scene state, the motion controllers that
// write it, and the dispatcher that routes each frame to a lighting mode.
package scene

import (
	"fmt"
	"strings"
)

// Mode is a lighting strategy.
type Mode int

// Lighting modes, in cycle order.
const (
	ModePhong Mode = iota
	ModeRayTrace
	ModePathTrace

	ModeCount = 3
)

var modeNames = [ModeCount]string{"Phong", "Ray Trace", "Path Trace"}

// String returns the display name of the mode.
func (m Mode) String() string {
	if m < 0 || m >= ModeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping after the last.
func (m Mode) Next() Mode {
	return (m + 1) % ModeCount
}

// ParseMode accepts "phong", "raytrace"/"ray-trace"/"ray trace" and the
// path trace equivalents, case-insensitively.
func ParseMode(s string) (Mode, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch key {
	case "phong":
		return ModePhong, nil
	case "raytrace", "rt":
		return ModeRayTrace, nil
	case "pathtrace", "pt":
		return ModePathTrace, nil
	}
	return ModePhong, fmt.Errorf("unknown lighting mode %q", s)
}

package geometry

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/litscene/pkg/math"
)

// vertexKey is the bit pattern of a position. Two positions merge only when
// all four components are bit-identical, so +0 and -0 stay distinct.
type vertexKey [4]uint32

func keyOf(v math.Vec4) vertexKey {
	return vertexKey{
		gomath.Float32bits(v.X),
		gomath.Float32bits(v.Y),
		gomath.Float32bits(v.Z),
		gomath.Float32bits(v.W),
	}
}

// Dedup is the result of collapsing duplicate positions.
type Dedup struct {
	// Unique holds the distinct positions in first-occurrence order.
	Unique []math.Vec4
	// Source[u] is the input index of the first occurrence of Unique[u].
	Source []uint32
	// Remap[i] is the unique index of input position i.
	Remap []uint32
	// Corners is the input corner list rewritten through Remap.
	Corners []uint32
}

// Deduplicate collapses bit-identical positions and rewrites every corner
// reference to the canonical (first) occurrence. Degenerate triangles are
// passed through unchanged.
func Deduplicate(positions []math.Vec4, corners []uint32) (*Dedup, error) {
	d := &Dedup{
		Unique:  make([]math.Vec4, 0, len(positions)),
		Source:  make([]uint32, 0, len(positions)),
		Remap:   make([]uint32, len(positions)),
		Corners: make([]uint32, len(corners)),
	}

	seen := make(map[vertexKey]uint32, len(positions))
	for i, p := range positions {
		k := keyOf(p)
		u, ok := seen[k]
		if !ok {
			u = uint32(len(d.Unique))
			seen[k] = u
			d.Unique = append(d.Unique, p)
			d.Source = append(d.Source, uint32(i))
		}
		d.Remap[i] = u
	}

	for i, c := range corners {
		if int(c) >= len(positions) {
			return nil, fmt.Errorf("corner %d references vertex %d of %d: %w",
				i, c, len(positions), ErrIndexOutOfRange)
		}
		d.Corners[i] = d.Remap[c]
	}

	return d, nil
}

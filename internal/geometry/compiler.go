package geometry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/logger"
	"github.com/Faultbox/litscene/pkg/math"
)

// Compiler turns a mesh set into a BufferTriple.
type Compiler struct {
	Binder *TextureBinder
}

// NewCompiler returns a compiler that loads textures with loader.
func NewCompiler(loader ImageLoader, maxLayers int) *Compiler {
	return &Compiler{Binder: &TextureBinder{Loader: loader, MaxLayers: maxLayers}}
}

// flat is the mesh set concatenated into global arrays.
type flat struct {
	positions []math.Vec3
	normals   []math.Vec3
	corners   []uint32
	groups    []DrawGroup
}

// Compile flattens, binds, deduplicates and resolves meshes. It does not
// touch the GPU apart from the texture sink, so any error leaves no
// partially uploaded geometry.
func (c *Compiler) Compile(ctx context.Context, meshes []RawMesh, sink LayerSink) (*BufferTriple, error) {
	log := logger.Named("compiler")
	start := time.Now()

	for i := range meshes {
		if err := validateMesh(&meshes[i]); err != nil {
			return nil, fmt.Errorf("mesh %d (%s): %w", i, meshes[i].Name, err)
		}
	}

	f := flatten(meshes)

	binder := c.Binder
	if binder == nil {
		binder = &TextureBinder{}
	}
	materials := make([]Material, len(meshes))
	for i := range meshes {
		materials[i] = meshes[i].Material
	}
	slots, layers, err := binder.Bind(ctx, materials, sink)
	if err != nil {
		return nil, err
	}
	for i := range f.groups {
		f.groups[i].Slot = slots[i]
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	positions := make([]math.Vec4, len(f.positions))
	for i, p := range f.positions {
		positions[i] = p.Vec4(0)
	}
	d, err := Deduplicate(positions, f.corners)
	if err != nil {
		return nil, err
	}

	out := &BufferTriple{
		Vertices:   d.Unique,
		Normals:    make([]math.Vec4, len(d.Unique)),
		Triangles:  make([]uint32, 0, len(f.corners)/3*4),
		Structured: make([]StructuredTriangle, 0, len(f.corners)/3),
		Slots:      slots,
		Layers:     layers,
		Raster: Raster{
			Positions: f.positions,
			Normals:   f.normals,
			Indices:   f.corners,
			Groups:    f.groups,
		},
	}
	for u, src := range d.Source {
		out.Normals[u] = f.normals[src].Vec4(0)
	}

	for _, g := range f.groups {
		end := int(g.FirstIndex + g.IndexCount)
		for i := int(g.FirstIndex); i < end; i += 3 {
			a, b, cc := d.Corners[i], d.Corners[i+1], d.Corners[i+2]
			out.Triangles = append(out.Triangles, a, b, cc, g.Slot)
			out.Structured = append(out.Structured, StructuredTriangle{
				V0:        d.Unique[a],
				V1:        d.Unique[b],
				V2:        d.Unique[cc],
				TextureID: g.Slot,
			})
		}
	}

	if err := out.Verify(meshes); err != nil {
		return nil, err
	}

	log.Info("scene compiled",
		zap.Int("meshes", len(meshes)),
		zap.Int("vertices", len(f.positions)),
		zap.Int("unique", len(out.Vertices)),
		zap.Int("triangles", out.TriangleCount()),
		zap.Int("layers", len(layers)),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

func validateMesh(m *RawMesh) error {
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%d normals for %d positions: %w", len(m.Normals), len(m.Positions), ErrInvalidMesh)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3: %w", len(m.Indices), ErrInvalidMesh)
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("index %d references vertex %d of %d: %w: %w",
				i, idx, len(m.Positions), ErrInvalidMesh, ErrIndexOutOfRange)
		}
	}
	return nil
}

// flatten concatenates meshes, offsetting each mesh's indices by the number
// of vertices that precede it.
func flatten(meshes []RawMesh) flat {
	var nv, ni int
	for i := range meshes {
		nv += len(meshes[i].Positions)
		ni += len(meshes[i].Indices)
	}

	f := flat{
		positions: make([]math.Vec3, 0, nv),
		normals:   make([]math.Vec3, 0, nv),
		corners:   make([]uint32, 0, ni),
		groups:    make([]DrawGroup, 0, len(meshes)),
	}

	for i := range meshes {
		m := &meshes[i]
		offset := uint32(len(f.positions))

		f.groups = append(f.groups, DrawGroup{
			Name:       m.Name,
			FirstIndex: int32(len(f.corners)),
			IndexCount: int32(len(m.Indices)),
			Slot:       NoTextureSlot,
			Diffuse:    m.Material.Diffuse,
		})

		f.positions = append(f.positions, m.Positions...)
		if len(m.Normals) == len(m.Positions) {
			f.normals = append(f.normals, m.Normals...)
		} else {
			f.normals = append(f.normals, make([]math.Vec3, len(m.Positions))...)
		}
		for _, idx := range m.Indices {
			f.corners = append(f.corners, idx+offset)
		}
	}
	return f
}

// Verify checks that every representation describes the same triangles as
// meshes. A failure is an internal error, not a recoverable condition.
func (b *BufferTriple) Verify(meshes []RawMesh) error {
	want := 0
	for i := range meshes {
		want += meshes[i].TriangleCount()
	}

	switch {
	case len(b.Triangles) != 4*want:
		return fmt.Errorf("flat buffer has %d triangles, want %d: %w", len(b.Triangles)/4, want, ErrInconsistent)
	case len(b.Structured) != want:
		return fmt.Errorf("structured buffer has %d triangles, want %d: %w", len(b.Structured), want, ErrInconsistent)
	case len(b.Raster.Indices) != 3*want:
		return fmt.Errorf("raster buffer has %d triangles, want %d: %w", len(b.Raster.Indices)/3, want, ErrInconsistent)
	case len(b.Normals) != len(b.Vertices):
		return fmt.Errorf("%d normals for %d vertices: %w", len(b.Normals), len(b.Vertices), ErrInconsistent)
	}

	for t := 0; t < want; t++ {
		tri := b.Triangle(t)
		s := b.Structured[t]
		if tri.TextureID != s.TextureID {
			return fmt.Errorf("triangle %d texture %d vs %d: %w", t, tri.TextureID, s.TextureID, ErrInconsistent)
		}
		for k, v := range [3]math.Vec4{s.V0, s.V1, s.V2} {
			idx := tri.Indices[k]
			if int(idx) >= len(b.Vertices) || keyOf(b.Vertices[idx]) != keyOf(v) {
				return fmt.Errorf("triangle %d corner %d disagrees: %w", t, k, ErrInconsistent)
			}
			r := b.Raster.Positions[b.Raster.Indices[t*3+k]].Vec4(0)
			if keyOf(r) != keyOf(v) {
				return fmt.Errorf("triangle %d corner %d disagrees with raster data: %w", t, k, ErrInconsistent)
			}
		}
	}
	return nil
}

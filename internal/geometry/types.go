// Package geometry compiles loaded meshes into the buffer layouts consumed
// by the rasterizer and the ray/path tracing compute shaders.
package geometry

import (
	"image"

	"github.com/Faultbox/litscene/pkg/math"
)

// NoTextureSlot is the texture id carried by triangles without a diffuse texture.
const NoTextureSlot uint32 = 255

// MaxTextureSlots is the number of usable texture array layers (0..253).
const MaxTextureSlots = 254

// Material describes the surface of a mesh.
type Material struct {
	Name        string
	DiffusePath string    // Diffuse texture file, empty if none
	NoTexture   bool      // Forces the untextured slot even when DiffusePath is set
	Diffuse     math.Vec3 // Base color used when untextured
}

// Textured reports whether the material binds a texture layer.
func (m Material) Textured() bool {
	return !m.NoTexture && m.DiffusePath != ""
}

// RawMesh is one loaded mesh. Indices are local to the mesh, three per triangle.
type RawMesh struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3 // Same length as Positions, or empty
	Indices   []uint32
	Material  Material
}

// TriangleCount returns the number of triangles in the mesh.
func (m *RawMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// CompiledTriangle is one entry of the flat triangle buffer.
type CompiledTriangle struct {
	Indices   [3]uint32
	TextureID uint32
}

// StructuredTriangle is the self-contained triangle record read by compute
// shaders. It is 64 bytes and matches the std430 layout of
//
//	struct Triangle { vec4 v0; vec4 v1; vec4 v2; uint texId; };
type StructuredTriangle struct {
	V0, V1, V2 math.Vec4
	TextureID  uint32
	_          [3]uint32
}

// TextureSlotTable maps mesh index to texture layer, or NoTextureSlot.
type TextureSlotTable []uint32

// Layer is one distinct diffuse texture bound to an array layer.
type Layer struct {
	Slot  uint32
	Path  string
	Image *image.RGBA
}

// DrawGroup is the index range of one source mesh in the raster buffers.
type DrawGroup struct {
	Name       string
	FirstIndex int32
	IndexCount int32
	Slot       uint32
	Diffuse    math.Vec3
}

// Raster holds the non-deduplicated attribute stream for the rasterizer.
// Indices address Positions/Normals and list triangles in compiled order.
type Raster struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
	Groups    []DrawGroup
}

// BufferTriple is the compiled scene. Vertices, Triangles and Structured
// describe the same triangle list in the same order, as does Raster.
type BufferTriple struct {
	Vertices   []math.Vec4 // Unique positions, w = 0
	Normals    []math.Vec4 // Parallel to Vertices, w = 0
	Triangles  []uint32    // i0, i1, i2, textureId per triangle
	Structured []StructuredTriangle
	Slots      TextureSlotTable
	Layers     []Layer
	Raster     Raster
}

// TriangleCount returns the number of compiled triangles.
func (b *BufferTriple) TriangleCount() int {
	return len(b.Structured)
}

// Triangle returns triangle i of the flat triangle buffer.
func (b *BufferTriple) Triangle(i int) CompiledTriangle {
	q := b.Triangles[i*4 : i*4+4]
	return CompiledTriangle{Indices: [3]uint32{q[0], q[1], q[2]}, TextureID: q[3]}
}

// Bounds returns the axis-aligned bounds of the unique vertices.
func (b *BufferTriple) Bounds() (lo, hi math.Vec3) {
	if len(b.Vertices) == 0 {
		return
	}
	lo, hi = b.Vertices[0].Vec3(), b.Vertices[0].Vec3()
	for _, v := range b.Vertices[1:] {
		lo = math.Vec3{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
		hi = math.Vec3{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
	}
	return lo, hi
}

package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/geometry"
	"github.com/Faultbox/litscene/internal/logger"
	"github.com/Faultbox/litscene/pkg/math"
)

// Texture units and bindings shared with the shaders.
const (
	UnitVertices     uint32 = 0
	UnitTriangles    uint32 = 1
	UnitTextures     uint32 = 2
	UnitNormals      uint32 = 3
	UnitOutput       uint32 = 4 // output image sampled by the full-screen quad
	BindingTriangles uint32 = 0
	ImageUnitOutput  uint32 = 0
)

const structuredSize = int(unsafe.Sizeof(geometry.StructuredTriangle{}))

// Scene holds the GPU copies of a compiled scene. It is immutable after
// upload; render passes only read from it.
type Scene struct {
	Vertices   *TextureBuffer // RGBA32F, w = 0
	Normals    *TextureBuffer // RGBA32F, parallel to Vertices
	Triangles  *TextureBuffer // RGBA32UI, (i0, i1, i2, textureId)
	Structured *StorageBuffer // 64-byte records
	Textures   *TextureArray
	Mesh       *Mesh

	TriangleCount int

	lo, hi math.Vec3
}

// UploadScene checks the compiled buffers against the driver limits and
// uploads them. Nothing is created when a limit is exceeded. The texture
// array is the sink already filled by the compiler.
func UploadScene(bt *geometry.BufferTriple, textures *TextureArray, limits Limits) (*Scene, error) {
	if err := checkSceneLimits(bt, limits); err != nil {
		return nil, err
	}

	s := &Scene{Textures: textures, TriangleCount: bt.TriangleCount()}
	s.lo, s.hi = bt.Bounds()

	s.Vertices = NewTextureBuffer(dataPtr(bt.Vertices), len(bt.Vertices)*16, gl.RGBA32F, len(bt.Vertices))
	s.Normals = NewTextureBuffer(dataPtr(bt.Normals), len(bt.Normals)*16, gl.RGBA32F, len(bt.Normals))
	s.Triangles = NewTextureBuffer(dataPtr(bt.Triangles), len(bt.Triangles)*4, gl.RGBA32UI, len(bt.Triangles)/4)

	s.Structured = NewStorageBuffer(dataPtr(bt.Structured), len(bt.Structured)*structuredSize)

	s.Mesh = NewMesh(&bt.Raster)

	if err := CheckError("uploading scene"); err != nil {
		s.Delete()
		return nil, err
	}

	logger.Info("Scene uploaded",
		zap.Int("vertices", len(bt.Vertices)),
		zap.Int("triangles", s.TriangleCount),
		zap.Int("structuredBytes", s.Structured.Size),
		zap.Int("layers", textures.Depth),
		zap.Float32s("boundsMin", []float32{s.lo.X, s.lo.Y, s.lo.Z}),
		zap.Float32s("boundsMax", []float32{s.hi.X, s.hi.Y, s.hi.Z}),
	)
	return s, nil
}

func checkSceneLimits(bt *geometry.BufferTriple, limits Limits) error {
	if structuredSize != 64 {
		return fmt.Errorf("structured triangle is %d bytes, shaders expect 64", structuredSize)
	}
	if err := checkLimit("vertex buffer texels", len(bt.Vertices), limits.MaxTextureBufferSize); err != nil {
		return err
	}
	if err := checkLimit("triangle buffer texels", len(bt.Triangles)/4, limits.MaxTextureBufferSize); err != nil {
		return err
	}
	if err := checkLimit("structured triangle bytes", len(bt.Structured)*structuredSize, limits.MaxStorageBlockSize); err != nil {
		return err
	}
	if err := checkLimit("texture layers", len(bt.Layers), limits.MaxArrayTextureLayers); err != nil {
		return err
	}
	return nil
}

// Bind binds the ray-tracing inputs to their units.
func (s *Scene) Bind() {
	s.Vertices.Bind(UnitVertices)
	s.Triangles.Bind(UnitTriangles)
	s.Normals.Bind(UnitNormals)
	s.Textures.Bind(UnitTextures)
	s.Structured.Bind(BindingTriangles)
}

// Bounds returns the axis-aligned bounds of the uploaded vertices.
func (s *Scene) Bounds() (lo, hi math.Vec3) {
	return s.lo, s.hi
}

// Delete releases every GPU object owned by the scene, including the
// texture array.
func (s *Scene) Delete() {
	for _, tb := range []*TextureBuffer{s.Vertices, s.Normals, s.Triangles} {
		if tb != nil {
			tb.Delete()
		}
	}
	if s.Structured != nil {
		s.Structured.Delete()
	}
	if s.Mesh != nil {
		s.Mesh.Delete()
	}
	if s.Textures != nil {
		s.Textures.Delete()
	}
}

func dataPtr[T any](v []T) unsafe.Pointer {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Pointer(&v[0])
}

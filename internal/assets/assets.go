// Package assets loads model files into meshes ready for the geometry compiler.
package assets

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/geometry"
	"github.com/Faultbox/litscene/internal/logger"
	"github.com/Faultbox/litscene/pkg/formats"
	"github.com/Faultbox/litscene/pkg/math"
)

// Model is a loaded OBJ file split into one mesh per (object, material) run.
type Model struct {
	Path   string
	Dir    string
	Meshes []geometry.RawMesh
}

// TriangleCount returns the total number of triangles in the model.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += m.Meshes[i].TriangleCount()
	}
	return n
}

// LoadModel reads an OBJ file and its material libraries. Any missing or
// malformed file is a load error.
func LoadModel(path string) (*Model, error) {
	log := logger.Named("assets")

	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	mats := make(map[string]*formats.MTLMaterial)
	for _, lib := range obj.MaterialLibs {
		lm, err := formats.LoadMTL(filepath.Join(dir, lib))
		if err != nil {
			return nil, fmt.Errorf("loading material library %s: %w", lib, err)
		}
		for name, mat := range lm {
			mats[name] = mat
		}
	}

	model := &Model{Path: path, Dir: dir}
	for gi, g := range obj.Groups {
		mat, ok := mats[g.Material]
		if !ok && g.Material != "" {
			log.Warn("unknown material, rendering untextured",
				zap.String("material", g.Material), zap.String("object", g.Object))
		}
		mesh := buildMesh(obj, &g, mat)
		mesh.Name = fmt.Sprintf("%s#%d", g.Object, gi)
		model.Meshes = append(model.Meshes, mesh)
	}

	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("positions", len(obj.Positions)),
		zap.Int("triangles", model.TriangleCount()),
		zap.Int("materials", len(mats)),
	)
	return model, nil
}

// cornerKey identifies a mesh-local vertex. Corners without a normal share
// the smoothed normal of their position (normal == -1).
type cornerKey struct {
	position int
	normal   int
}

// buildMesh fan-triangulates a face group and re-indexes it locally.
func buildMesh(obj *formats.OBJ, g *formats.OBJGroup, mat *formats.MTLMaterial) geometry.RawMesh {
	var mesh geometry.RawMesh
	local := make(map[cornerKey]uint32)
	var smooth []bool // normal is accumulated from adjacent faces

	vertex := func(c formats.OBJCorner) uint32 {
		k := cornerKey{position: c.V, normal: c.VN}
		if idx, ok := local[k]; ok {
			return idx
		}
		idx := uint32(len(mesh.Positions))
		local[k] = idx
		mesh.Positions = append(mesh.Positions, vec3(obj.Positions[c.V]))
		if c.VN >= 0 {
			mesh.Normals = append(mesh.Normals, vec3(obj.Normals[c.VN]))
		} else {
			mesh.Normals = append(mesh.Normals, math.Vec3{})
		}
		smooth = append(smooth, c.VN < 0)
		return idx
	}

	for _, f := range g.Faces {
		a := vertex(f.Corners[0])
		for i := 1; i+1 < len(f.Corners); i++ {
			b, c := vertex(f.Corners[i]), vertex(f.Corners[i+1])
			mesh.Indices = append(mesh.Indices, a, b, c)

			pa, pb, pc := mesh.Positions[a], mesh.Positions[b], mesh.Positions[c]
			n := pb.Sub(pa).Cross(pc.Sub(pa))
			for _, idx := range [3]uint32{a, b, c} {
				if smooth[idx] {
					mesh.Normals[idx] = mesh.Normals[idx].Add(n)
				}
			}
		}
	}

	for idx, s := range smooth {
		if s {
			mesh.Normals[idx] = mesh.Normals[idx].Normalize()
		}
	}

	mesh.Material = geometry.Material{Diffuse: math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}}
	if mat != nil {
		mesh.Material = geometry.Material{
			Name:        mat.Name,
			DiffusePath: mat.MapKd,
			Diffuse:     vec3(mat.Diffuse),
		}
	}
	return mesh
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

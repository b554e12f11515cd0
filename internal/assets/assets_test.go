package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/litscene/internal/engine/texture"
	"github.com/Faultbox/litscene/internal/geometry"
	"github.com/Faultbox/litscene/pkg/math"
)

const testOBJ = `mtllib scene.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
vn 0 0 1
o quad
usemtl crate
f 1//1 2//1 3//1 4//1
o tent
usemtl crate
f 1 2 5
f 2 3 5
usemtl plain
f 3 4 5
`

const testMTL = `newmtl crate
Kd 1 1 1
map_Kd crate.png
newmtl plain
Kd 0.2 0.3 0.4
`

func writeScene(t *testing.T, withTexture bool) string {
	t.Helper()
	dir := t.TempDir()
	write := func(name string, data []byte) {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("scene.obj", []byte(testOBJ))
	write("scene.mtl", []byte(testMTL))
	if withTexture {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
			t.Fatal(err)
		}
		write("crate.png", buf.Bytes())
	}
	return filepath.Join(dir, "scene.obj")
}

func TestLoadModel(t *testing.T) {
	model, err := LoadModel(writeScene(t, true))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	if len(model.Meshes) != 3 {
		t.Fatalf("meshes = %d, want 3", len(model.Meshes))
	}
	quad, tent, plain := model.Meshes[0], model.Meshes[1], model.Meshes[2]

	if quad.TriangleCount() != 2 || len(quad.Positions) != 4 {
		t.Errorf("quad: %d triangles, %d vertices", quad.TriangleCount(), len(quad.Positions))
	}
	for i, n := range quad.Normals {
		if n != (math.Vec3{Z: 1}) {
			t.Errorf("quad normal %d = %v", i, n)
		}
	}
	if quad.Material.DiffusePath != "crate.png" || tent.Material.DiffusePath != "crate.png" {
		t.Errorf("crate paths = %q, %q", quad.Material.DiffusePath, tent.Material.DiffusePath)
	}
	if plain.Material.Textured() {
		t.Error("plain material should be untextured")
	}
	if plain.Material.Diffuse != (math.Vec3{X: 0.2, Y: 0.3, Z: 0.4}) {
		t.Errorf("plain diffuse = %v", plain.Material.Diffuse)
	}

	// Corners without normals get unit-length smoothed normals.
	for i, n := range tent.Normals {
		if l := n.Length(); l < 0.999 || l > 1.001 {
			t.Errorf("tent normal %d has length %f", i, l)
		}
	}
	if model.TriangleCount() != 5 {
		t.Errorf("triangles = %d, want 5", model.TriangleCount())
	}
}

func TestLoadModelCompiles(t *testing.T) {
	model, err := LoadModel(writeScene(t, true))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	c := geometry.NewCompiler(texture.FileLoader{BaseDir: model.Dir}, 0)
	out, err := c.Compile(context.Background(), model.Meshes, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if len(out.Layers) != 1 {
		t.Errorf("layers = %d, want 1", len(out.Layers))
	}
	if out.Slots[0] != 0 || out.Slots[1] != 0 || out.Slots[2] != geometry.NoTextureSlot {
		t.Errorf("slots = %v", out.Slots)
	}
	if len(out.Vertices) != 5 {
		t.Errorf("unique vertices = %d, want 5", len(out.Vertices))
	}
	if out.TriangleCount() != model.TriangleCount() {
		t.Errorf("triangles = %d, want %d", out.TriangleCount(), model.TriangleCount())
	}
}

func TestLoadModelMissingTexture(t *testing.T) {
	model, err := LoadModel(writeScene(t, false))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	c := geometry.NewCompiler(texture.FileLoader{BaseDir: model.Dir}, 0)
	out, err := c.Compile(context.Background(), model.Meshes, nil)
	if !errors.Is(err, geometry.ErrTextureLoad) {
		t.Fatalf("expected ErrTextureLoad, got %v", err)
	}
	if out != nil {
		t.Error("expected no buffers")
	}
}

func TestLoadModelMissingLibrary(t *testing.T) {
	path := writeScene(t, false)
	if err := os.Remove(filepath.Join(filepath.Dir(path), "scene.mtl")); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestBundledSceneCompiles(t *testing.T) {
	model, err := LoadModel(filepath.Join("..", "..", "media", "blocks.obj"))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if got := model.TriangleCount(); got != 38 {
		t.Errorf("triangles = %d, want 38", got)
	}

	c := geometry.NewCompiler(texture.FileLoader{BaseDir: model.Dir}, geometry.MaxTextureSlots)
	bt, err := c.Compile(context.Background(), model.Meshes, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Ground plus three boxes; box corners shared across faces collapse.
	if got := len(bt.Vertices); got != 28 {
		t.Errorf("unique vertices = %d, want 28", got)
	}
	if got := len(bt.Layers); got != 2 {
		t.Fatalf("layers = %d, want 2 (stone, wood)", got)
	}
	if bt.Layers[0].Path != "stone.tga" || bt.Layers[1].Path != "wood.tga" {
		t.Errorf("layer order = %s, %s", bt.Layers[0].Path, bt.Layers[1].Path)
	}
	want := []uint32{0, 1, 1, geometry.NoTextureSlot}
	for i, slot := range bt.Slots {
		if slot != want[i] {
			t.Errorf("slot[%d] = %d, want %d", i, slot, want[i])
		}
	}
}

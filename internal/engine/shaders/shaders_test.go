package shaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/litscene/internal/engine/gpu"
)

func TestProgramFilesEmbedded(t *testing.T) {
	r := Reader{}
	for name, src := range Programs {
		if len(src.Compute) == 0 && (len(src.Vertex) == 0 || len(src.Fragment) == 0) {
			t.Errorf("%s: needs a compute stage or both vertex and fragment", name)
		}
		for _, f := range src.Files() {
			if _, err := r.ReadFile(f); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
	}
}

func TestAssemble(t *testing.T) {
	r := Reader{Defines: map[string]string{"WORKGROUP_SIZE": "16", "A": "1"}}
	src, err := r.Assemble(Programs[RayTrace].Compute)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if !strings.HasPrefix(src, Version+"\n#define A 1\n#define WORKGROUP_SIZE 16\n") {
		t.Errorf("unexpected header:\n%s", src[:min(len(src), 120)])
	}
	common := strings.Index(src, "// common.glsl")
	trace := strings.Index(src, "// trace.glsl")
	body := strings.Index(src, "// raytrace.comp")
	if common < 0 || trace < common || body < trace {
		t.Errorf("files out of order: common=%d trace=%d body=%d", common, trace, body)
	}
	if !strings.Contains(src, "any(greaterThanEqual(pix, size))") {
		t.Error("ray trace kernel is missing the pixel bounds guard")
	}
}

func TestReaderOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "quad.frag"), []byte("// custom\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r := Reader{Dir: dir}

	got, err := r.ReadFile("quad.frag")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got != "// custom\n" {
		t.Errorf("override not used, got %q", got)
	}

	// Files missing from the override dir fall back to the embedded copy.
	got, err = r.ReadFile("quad.vert")
	if err != nil {
		t.Fatalf("ReadFile fallback failed: %v", err)
	}
	if !strings.Contains(got, "gl_VertexID") {
		t.Errorf("fallback returned %q", got)
	}

	if _, err := r.ReadFile("missing.frag"); err == nil {
		t.Error("expected error for unknown shader")
	}
}

func TestSourceUses(t *testing.T) {
	if !Programs[PathTrace].Uses("common.glsl") {
		t.Error("path tracer should use common.glsl")
	}
	if Programs[Quad].Uses("common.glsl") {
		t.Error("quad should not use common.glsl")
	}
	if !isShaderFile("trace.glsl") || isShaderFile("notes.txt") {
		t.Error("isShaderFile mismatch")
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "phong.frag"), []byte("void main() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Changes():
		if name != "phong.frag" {
			t.Errorf("change = %q, want phong.frag", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchMissingDir(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestTraceBindingsMatchUnits(t *testing.T) {
	bindings := []struct {
		decl string
		unit uint32
	}{
		{"uniform samplerBuffer vertices", gpu.UnitVertices},
		{"uniform usamplerBuffer triangles", gpu.UnitTriangles},
		{"uniform samplerBuffer normals", gpu.UnitNormals},
		{"uniform sampler2DArray textures", gpu.UnitTextures},
	}

	for _, name := range []string{RayTrace, PathTrace} {
		src, err := Reader{}.Assemble(Programs[name].Compute)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, b := range bindings {
			want := fmt.Sprintf("layout(binding = %d) %s;", b.unit, b.decl)
			if !strings.Contains(src, want) {
				t.Errorf("%s: missing %q", name, want)
			}
		}
		// Both kernels shade with interpolated vertex normals.
		if !strings.Contains(src, "shadingNormal(h, dir)") {
			t.Errorf("%s does not use shadingNormal", name)
		}
	}
}

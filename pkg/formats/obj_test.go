package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const blocksOBJ = `# two blocks
mtllib blocks.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
o floor
usemtl stone
f 1/1/1 2/2/1 3/3/1 4/3/1
usemtl wood
f -4//1 -3//1 -2//1
o roof
f 1 2 3
`

func TestParseOBJ(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(blocksOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if len(obj.Positions) != 4 || len(obj.Normals) != 1 || len(obj.TexCoords) != 3 {
		t.Errorf("got %d positions, %d normals, %d texcoords",
			len(obj.Positions), len(obj.Normals), len(obj.TexCoords))
	}
	if len(obj.MaterialLibs) != 1 || obj.MaterialLibs[0] != "blocks.mtl" {
		t.Errorf("material libs = %v", obj.MaterialLibs)
	}

	want := []struct {
		object, material string
		faces            int
	}{
		{"floor", "stone", 1},
		{"floor", "wood", 1},
		{"roof", "wood", 1},
	}
	if len(obj.Groups) != len(want) {
		t.Fatalf("groups = %d, want %d", len(obj.Groups), len(want))
	}
	for i, w := range want {
		g := obj.Groups[i]
		if g.Object != w.object || g.Material != w.material || len(g.Faces) != w.faces {
			t.Errorf("group %d = {%s %s %d}, want %+v", i, g.Object, g.Material, len(g.Faces), w)
		}
	}

	quad := obj.Groups[0].Faces[0]
	if len(quad.Corners) != 4 {
		t.Fatalf("quad corners = %d", len(quad.Corners))
	}
	if quad.Corners[3] != (OBJCorner{V: 3, VT: 2, VN: 0}) {
		t.Errorf("quad corner 3 = %+v", quad.Corners[3])
	}

	rel := obj.Groups[1].Faces[0].Corners
	if rel[0] != (OBJCorner{V: 0, VT: -1, VN: 0}) || rel[2].V != 2 {
		t.Errorf("relative corners = %+v", rel)
	}
	if obj.Groups[2].Faces[0].Corners[1] != (OBJCorner{V: 1, VT: -1, VN: -1}) {
		t.Errorf("plain corner = %+v", obj.Groups[2].Faces[0].Corners[1])
	}

	if n := obj.TriangleCount(); n != 4 {
		t.Errorf("triangle count = %d, want 4", n)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"short vertex", "v 1 2\n", ErrOBJSyntax},
		{"bad float", "v 1 2 x\n", ErrOBJSyntax},
		{"two corner face", "v 0 0 0\nf 1 1\n", ErrOBJSyntax},
		{"index past end", "v 0 0 0\nf 1 1 2\n", ErrOBJIndex},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrOBJIndex},
		{"missing normal", "v 0 0 0\nf 1//1 1//1 1//1\n", ErrOBJIndex},
		{"garbage corner", "v 0 0 0\nf a b c\n", ErrOBJSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseMTL(t *testing.T) {
	data := `newmtl stone
Kd 0.5 0.5 0.5
map_Kd -s 1 1 1 textures/stone.png
newmtl wood
Kd 0.6 0.4 0.2
# no texture
`
	mats, err := ParseMTL(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(mats) != 2 {
		t.Fatalf("materials = %d, want 2", len(mats))
	}
	if mats["stone"].MapKd != "textures/stone.png" {
		t.Errorf("stone map = %q", mats["stone"].MapKd)
	}
	if mats["wood"].MapKd != "" || mats["wood"].Diffuse != [3]float32{0.6, 0.4, 0.2} {
		t.Errorf("wood = %+v", mats["wood"])
	}
}

func TestParseMTLErrors(t *testing.T) {
	for _, data := range []string{"Kd 1 1 1\n", "map_Kd a.png\n", "newmtl\n", "newmtl a\nKd 1\n"} {
		if _, err := ParseMTL(strings.NewReader(data)); !errors.Is(err, ErrOBJSyntax) {
			t.Errorf("%q: expected ErrOBJSyntax, got %v", data, err)
		}
	}
}

func TestLoadOBJMissing(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOBJSyntax = errors.New("invalid OBJ syntax")
	ErrOBJIndex  = errors.New("OBJ index out of range")
)

// OBJCorner references the attributes of one face corner.
// Indices are zero-based; -1 means the attribute is absent.
type OBJCorner struct {
	V  int
	VT int
	VN int
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners []OBJCorner
}

// OBJGroup is a run of faces sharing an object name and material.
type OBJGroup struct {
	Object   string
	Material string
	Faces    []OBJFace
}

// OBJ holds a parsed Wavefront OBJ file.
type OBJ struct {
	Positions    [][3]float32
	Normals      [][3]float32
	TexCoords    [][2]float32
	Groups       []OBJGroup
	MaterialLibs []string
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

// ParseOBJ parses OBJ data. Unsupported statements (curves, smoothing
// groups, line elements) are ignored.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	cur := OBJGroup{}

	flush := func() {
		if len(cur.Faces) > 0 {
			obj.Groups = append(obj.Groups, cur)
		}
		cur = OBJGroup{Object: cur.Object, Material: cur.Material}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			obj.Positions = append(obj.Positions, p)

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			obj.Normals = append(obj.Normals, n)

		case "vt":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: texcoord needs a value: %w", line, ErrOBJSyntax)
			}
			var uv [2]float32
			for i := 0; i < 2 && i+1 < len(fields); i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: texcoord: %w", line, ErrOBJSyntax)
				}
				uv[i] = float32(f)
			}
			obj.TexCoords = append(obj.TexCoords, uv)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face has %d corners: %w", line, len(fields)-1, ErrOBJSyntax)
			}
			face := OBJFace{Corners: make([]OBJCorner, 0, len(fields)-1)}
			for _, tok := range fields[1:] {
				c, err := obj.parseCorner(tok)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				face.Corners = append(face.Corners, c)
			}
			cur.Faces = append(cur.Faces, face)

		case "o", "g":
			name := strings.Join(fields[1:], " ")
			if name != cur.Object {
				flush()
				cur.Object = name
			}

		case "usemtl":
			name := strings.Join(fields[1:], " ")
			if name != cur.Material {
				flush()
				cur.Material = name
			}

		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	flush()

	return obj, nil
}

// TriangleCount returns the number of triangles after fan triangulation.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, g := range o.Groups {
		for _, f := range g.Faces {
			n += len(f.Corners) - 2
		}
	}
	return n
}

func (o *OBJ) parseCorner(tok string) (OBJCorner, error) {
	c := OBJCorner{V: -1, VT: -1, VN: -1}
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return c, fmt.Errorf("corner %q: %w", tok, ErrOBJSyntax)
	}

	var err error
	if c.V, err = resolveIndex(parts[0], len(o.Positions)); err != nil {
		return c, fmt.Errorf("corner %q vertex: %w", tok, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.VT, err = resolveIndex(parts[1], len(o.TexCoords)); err != nil {
			return c, fmt.Errorf("corner %q texcoord: %w", tok, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.VN, err = resolveIndex(parts[2], len(o.Normals)); err != nil {
			return c, fmt.Errorf("corner %q normal: %w", tok, err)
		}
	}
	return c, nil
}

// resolveIndex converts a one-based (or negative, relative) OBJ index into
// a zero-based index into a list of length n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, ErrOBJSyntax
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return -1, fmt.Errorf("%d of %d: %w", i, n, ErrOBJIndex)
	}
}

func parseFloats3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, ErrOBJSyntax
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, ErrOBJSyntax
		}
		v[i] = float32(f)
	}
	return v, nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

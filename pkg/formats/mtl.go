package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MTLMaterial is one material from an MTL library.
type MTLMaterial struct {
	Name    string
	Diffuse [3]float32 // Kd
	MapKd   string     // Diffuse texture path, as written in the file
}

// LoadMTL reads and parses an MTL file from disk.
func LoadMTL(path string) (map[string]*MTLMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening MTL: %w", err)
	}
	defer f.Close()
	return ParseMTL(f)
}

// ParseMTL parses an MTL library. Only the diffuse color and diffuse map are
// kept; other statements are ignored.
func ParseMTL(r io.Reader) (map[string]*MTLMaterial, error) {
	mats := make(map[string]*MTLMaterial)
	var cur *MTLMaterial

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl needs a name: %w", line, ErrOBJSyntax)
			}
			cur = &MTLMaterial{Name: strings.Join(fields[1:], " "), Diffuse: [3]float32{0.8, 0.8, 0.8}}
			mats[cur.Name] = cur

		case "Kd":
			if cur == nil {
				return nil, fmt.Errorf("line %d: Kd before newmtl: %w", line, ErrOBJSyntax)
			}
			kd, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: Kd: %w", line, err)
			}
			cur.Diffuse = kd

		case "map_Kd":
			if cur == nil {
				return nil, fmt.Errorf("line %d: map_Kd before newmtl: %w", line, ErrOBJSyntax)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: map_Kd needs a path: %w", line, ErrOBJSyntax)
			}
			// Options such as -s or -bm come before the file name.
			cur.MapKd = fields[len(fields)-1]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}
	return mats, nil
}

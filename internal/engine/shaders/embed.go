// Package shaders holds the embedded GLSL sources and the program library
// that compiles and hot-reloads them.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

//go:embed glsl/*
var embedded embed.FS

// Version is prepended to every stage.
const Version = "#version 430 core"

// Stage lists the files concatenated, in order, into one shader stage.
type Stage []string

// Source describes one program. Compute programs leave Vertex and Fragment
// empty.
type Source struct {
	Vertex   Stage
	Fragment Stage
	Compute  Stage
}

// Program names.
const (
	Phong     = "phong"
	Flat      = "flat"
	Quad      = "quad"
	RayTrace  = "raytrace"
	PathTrace = "pathtrace"
)

// Programs is the set of programs the renderer needs.
var Programs = map[string]Source{
	Phong:     {Vertex: Stage{"phong.vert"}, Fragment: Stage{"common.glsl", "phong.frag"}},
	Flat:      {Vertex: Stage{"flat.vert"}, Fragment: Stage{"flat.frag"}},
	Quad:      {Vertex: Stage{"quad.vert"}, Fragment: Stage{"quad.frag"}},
	RayTrace:  {Compute: Stage{"common.glsl", "trace.glsl", "raytrace.comp"}},
	PathTrace: {Compute: Stage{"common.glsl", "trace.glsl", "pathtrace.comp"}},
}

// Files returns every file used by src.
func (src Source) Files() []string {
	var files []string
	for _, st := range []Stage{src.Vertex, src.Fragment, src.Compute} {
		files = append(files, st...)
	}
	return files
}

// Uses reports whether src includes file.
func (src Source) Uses(file string) bool {
	for _, f := range src.Files() {
		if f == file {
			return true
		}
	}
	return false
}

// Reader resolves shader files, preferring an override directory over the
// embedded copies.
type Reader struct {
	Dir     string
	Defines map[string]string
}

// ReadFile returns one file, from Dir when it exists there.
func (r Reader) ReadFile(name string) (string, error) {
	if r.Dir != "" {
		data, err := os.ReadFile(filepath.Join(r.Dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read shader %s: %w", name, err)
		}
	}
	data, err := embedded.ReadFile("glsl/" + name)
	if err != nil {
		return "", fmt.Errorf("unknown shader %s: %w", name, err)
	}
	return string(data), nil
}

// Assemble concatenates a stage behind the version line and the defines.
func (r Reader) Assemble(st Stage) (string, error) {
	var b strings.Builder
	b.WriteString(Version)
	b.WriteByte('\n')
	for _, k := range sortedKeys(r.Defines) {
		fmt.Fprintf(&b, "#define %s %s\n", k, r.Defines[k])
	}
	for _, name := range st {
		src, err := r.ReadFile(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "// %s\n", name)
		b.WriteString(src)
		if !strings.HasSuffix(src, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

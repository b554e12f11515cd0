package shaders

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/engine/shader"
	"github.com/Faultbox/litscene/internal/logger"
)

// Library owns the compiled programs. All methods run on the GL thread.
type Library struct {
	reader   Reader
	programs map[string]*shader.Program
	log      *zap.Logger
}

// NewLibrary compiles every program in Programs. Any failure at startup is
// fatal to the caller.
func NewLibrary(reader Reader) (*Library, error) {
	l := &Library{
		reader:   reader,
		programs: make(map[string]*shader.Program, len(Programs)),
		log:      logger.Named("shaders"),
	}
	for _, name := range slices.Sorted(maps.Keys(Programs)) {
		p, err := l.build(name)
		if err != nil {
			l.Delete()
			return nil, err
		}
		l.programs[name] = p
	}
	l.log.Info("Shaders compiled", zap.Int("programs", len(l.programs)), zap.String("overrideDir", reader.Dir))
	return l, nil
}

func (l *Library) build(name string) (*shader.Program, error) {
	src, ok := Programs[name]
	if !ok {
		return nil, fmt.Errorf("unknown program %q", name)
	}

	if len(src.Compute) > 0 {
		comp, err := l.reader.Assemble(src.Compute)
		if err != nil {
			return nil, err
		}
		return shader.NewComputeProgram(name, comp)
	}

	vert, err := l.reader.Assemble(src.Vertex)
	if err != nil {
		return nil, err
	}
	frag, err := l.reader.Assemble(src.Fragment)
	if err != nil {
		return nil, err
	}
	return shader.NewProgram(name, vert, frag)
}

// Program returns a compiled program by name.
func (l *Library) Program(name string) *shader.Program {
	return l.programs[name]
}

// Reload recompiles every program that uses file. A program that fails to
// compile keeps its previous version.
func (l *Library) Reload(file string) {
	for _, name := range slices.Sorted(maps.Keys(Programs)) {
		if !Programs[name].Uses(file) {
			continue
		}
		p, err := l.build(name)
		if err != nil {
			l.log.Warn("Shader reload failed, keeping previous program",
				zap.String("program", name), zap.String("file", file), zap.Error(err))
			continue
		}
		if old := l.programs[name]; old != nil {
			old.Delete()
		}
		l.programs[name] = p
		l.log.Info("Shader reloaded", zap.String("program", name), zap.String("file", file))
	}
}

// Drain applies every pending change without blocking.
func (l *Library) Drain(changes <-chan string) {
	for {
		select {
		case file, ok := <-changes:
			if !ok {
				return
			}
			l.Reload(file)
		default:
			return
		}
	}
}

// Delete releases every program.
func (l *Library) Delete() {
	for name, p := range l.programs {
		p.Delete()
		delete(l.programs, name)
	}
}

package geometry

import (
	"errors"
	"image"
	"image/color"
)

type fakeLoader struct {
	sizes map[string]image.Point
	calls map[string]int
}

func newFakeLoader(sizes map[string]image.Point) *fakeLoader {
	return &fakeLoader{sizes: sizes, calls: make(map[string]int)}
}

var errMissing = errors.New("no such file")

func (l *fakeLoader) Load(path string) (*image.RGBA, error) {
	l.calls[path]++
	size, ok := l.sizes[path]
	if !ok {
		return nil, errMissing
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(len(path)), A: 255})
	return img, nil
}

type fakeSink struct {
	allocated       int
	width, height   int
	depth           int
	uploads         map[int]*image.RGBA
	allocErr, upErr error
}

func (s *fakeSink) Allocate(width, height, depth int) error {
	if s.allocErr != nil {
		return s.allocErr
	}
	s.allocated++
	s.width, s.height, s.depth = width, height, depth
	s.uploads = make(map[int]*image.RGBA)
	return nil
}

func (s *fakeSink) Upload(layer int, img *image.RGBA) error {
	if s.upErr != nil {
		return s.upErr
	}
	s.uploads[layer] = img
	return nil
}

// isIdentity reports whether remap merged nothing.
func isIdentity(remap []uint32) bool {
	for i, u := range remap {
		if uint32(i) != u {
			return false
		}
	}
	return true
}

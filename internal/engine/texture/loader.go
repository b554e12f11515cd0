package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
)

// FileLoader loads textures from disk. Relative paths resolve against BaseDir.
type FileLoader struct {
	BaseDir string
}

// Resolve returns the on-disk location of a texture path.
func (l FileLoader) Resolve(path string) string {
	path = filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
	if filepath.IsAbs(path) || l.BaseDir == "" {
		return path
	}
	return filepath.Join(l.BaseDir, path)
}

// Load reads and decodes a texture into RGBA8.
func (l FileLoader) Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(l.Resolve(path))
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// Decode decodes image data, using the file extension to pick the TGA
// decoder (TGA has no magic number) and content sniffing otherwise.
func Decode(data []byte, path string) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

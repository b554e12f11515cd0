// Package capture saves rendered frames to disk.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot writes PNG files named <prefix>_<label>_<timestamp>.png.
type Screenshot struct {
	Dir    string
	Prefix string
	now    func() time.Time
}

// NewScreenshot returns a capture writing into dir.
func NewScreenshot(dir, prefix string) *Screenshot {
	return &Screenshot{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path a capture labelled label would be written to.
func (s *Screenshot) Filename(label string) string {
	label = strings.ToLower(strings.ReplaceAll(label, " ", ""))
	name := fmt.Sprintf("%s_%s_%s.png", s.Prefix, label, s.now().Format("2006-01-02_15-04-05.000"))
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// SaveFramebuffer writes bottom-up RGBA rows, as read back from OpenGL,
// as a top-down PNG.
func (s *Screenshot) SaveFramebuffer(pixels []byte, width, height int, label string) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return s.Save(FlipRows(pixels, width, height), label)
}

// FlipRows converts bottom-up RGBA rows into an image.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img
}

// Save encodes img to a new file and returns its path.
func (s *Screenshot) Save(img image.Image, label string) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename(label)
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	return filename, nil
}

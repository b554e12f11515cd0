package capture

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 123e6, time.UTC)
}

func TestFilename(t *testing.T) {
	s := NewScreenshot("shots", "litscene")
	s.now = fixedClock

	got := s.Filename("Path Trace")
	want := filepath.Join("shots", "litscene_pathtrace_2024-03-01_12-30-45.123.png")
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestFlipRows(t *testing.T) {
	// 1x2: bottom row red, top row blue (GL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img := FlipRows(pixels, 1, 2)
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r, b)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r, b)
	}
}

func TestSaveFramebuffer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewScreenshot(dir, "test")
	s.now = fixedClock

	pixels := make([]byte, 4*3*2)
	path, err := s.SaveFramebuffer(pixels, 3, 2, "Phong")
	if err != nil {
		t.Fatalf("SaveFramebuffer failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}

	// Same clock, same name: never overwrite.
	if _, err := s.SaveFramebuffer(pixels, 3, 2, "Phong"); err == nil {
		t.Error("expected error when the file already exists")
	}
}

func TestSaveFramebufferSizeMismatch(t *testing.T) {
	s := NewScreenshot(t.TempDir(), "test")
	if _, err := s.SaveFramebuffer(make([]byte, 10), 3, 2, "x"); err == nil {
		t.Error("expected size mismatch error")
	}
}

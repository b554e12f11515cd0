// Package texture decodes diffuse texture files into RGBA8 images.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrTGATruncated is returned when pixel data ends early.
var ErrTGATruncated = errors.New("TGA data truncated")

// tgaReader walks TGA pixel data and writes decoded pixels in file order.
type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	bpp         int // Bytes per pixel
	topToBottom bool
	written     int
}

func (r *tgaReader) pixel() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

func (r *tgaReader) put(c color.RGBA) {
	w := r.img.Rect.Dx()
	x, y := r.written%w, r.written/w
	if !r.topToBottom {
		y = r.img.Rect.Dy() - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.written++
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color
// TGA image with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA header: %w", ErrTGATruncated)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}
	if 18+idLength > len(data) {
		return nil, fmt.Errorf("TGA id field: %w", ErrTGATruncated)
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[18+idLength:],
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	total := width * height

	if imageType == TGATypeUncompressed {
		for r.written < total {
			c, ok := r.pixel()
			if !ok {
				return nil, fmt.Errorf("TGA pixels: %w", ErrTGATruncated)
			}
			r.put(c)
		}
		return r.img, nil
	}

	for r.written < total {
		if r.pos >= len(r.data) {
			return nil, fmt.Errorf("TGA RLE packet: %w", ErrTGATruncated)
		}
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := r.pixel()
			if !ok {
				return nil, fmt.Errorf("TGA RLE pixel: %w", ErrTGATruncated)
			}
			for i := 0; i < count && r.written < total; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count && r.written < total; i++ {
			c, ok := r.pixel()
			if !ok {
				return nil, fmt.Errorf("TGA raw pixel: %w", ErrTGATruncated)
			}
			r.put(c)
		}
	}
	return r.img, nil
}

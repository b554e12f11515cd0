package gpu

import (
	"github.com/go-gl/gl/v4.3-core/gl"
)

// OutputImage is the RGBA32F image written by the compute passes and drawn
// full-screen afterwards.
type OutputImage struct {
	texture       uint32
	Width, Height int
}

// NewOutputImage allocates an image of the given size.
func NewOutputImage(width, height int) *OutputImage {
	img := &OutputImage{}
	img.Resize(width, height)
	return img
}

// Resize reallocates the image. Geometry buffers are not affected.
func (img *OutputImage) Resize(width, height int) {
	if width == img.Width && height == img.Height && img.texture != 0 {
		return
	}
	img.Delete()

	gl.GenTextures(1, &img.texture)
	gl.BindTexture(gl.TEXTURE_2D, img.texture)
	gl.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA32F, int32(width), int32(height))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	img.Width, img.Height = width, height
}

// BindImage binds the image for compute writes.
func (img *OutputImage) BindImage(unit uint32) {
	gl.BindImageTexture(unit, img.texture, 0, false, 0, gl.WRITE_ONLY, gl.RGBA32F)
}

// BindTexture binds the image for sampling.
func (img *OutputImage) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, img.texture)
}

// Delete releases the texture.
func (img *OutputImage) Delete() {
	if img.texture != 0 {
		gl.DeleteTextures(1, &img.texture)
		img.texture = 0
	}
}

package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// TextureArray is an RGBA8 GL_TEXTURE_2D_ARRAY. It implements the layer
// sink used by the texture binder.
type TextureArray struct {
	texture       uint32
	limits        Limits
	Width, Height int
	Depth         int
}

// NewTextureArray returns an unallocated array checked against limits.
func NewTextureArray(limits Limits) *TextureArray {
	return &TextureArray{limits: limits}
}

// Allocate creates immutable storage for depth layers of width x height.
func (ta *TextureArray) Allocate(width, height, depth int) error {
	if ta.texture != 0 {
		return fmt.Errorf("texture array already allocated")
	}
	if err := checkLimit("texture array layers", depth, ta.limits.MaxArrayTextureLayers); err != nil {
		return err
	}
	if err := checkLimit("texture array size", max(width, height), ta.limits.MaxTextureSize); err != nil {
		return err
	}

	gl.GenTextures(1, &ta.texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, ta.texture)
	gl.TexStorage3D(gl.TEXTURE_2D_ARRAY, 1, gl.RGBA8, int32(width), int32(height), int32(depth))
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	ta.Width, ta.Height, ta.Depth = width, height, depth
	return CheckError("allocating texture array")
}

// Upload copies img into layer.
func (ta *TextureArray) Upload(layer int, img *image.RGBA) error {
	if ta.texture == 0 {
		return fmt.Errorf("texture array not allocated")
	}
	if layer < 0 || layer >= ta.Depth {
		return fmt.Errorf("layer %d outside [0, %d)", layer, ta.Depth)
	}
	if img.Rect.Dx() != ta.Width || img.Rect.Dy() != ta.Height || img.Stride != 4*ta.Width {
		return fmt.Errorf("layer %d image is %v, want %dx%d", layer, img.Rect, ta.Width, ta.Height)
	}

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, ta.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0, 0, 0, int32(layer),
		int32(ta.Width), int32(ta.Height), 1,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	return CheckError(fmt.Sprintf("uploading layer %d", layer))
}

// Bind binds the array to a texture unit. An unallocated array binds
// texture 0, which samples as black.
func (ta *TextureArray) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, ta.texture)
}

// Delete releases the texture.
func (ta *TextureArray) Delete() {
	if ta.texture != 0 {
		gl.DeleteTextures(1, &ta.texture)
		ta.texture = 0
	}
}

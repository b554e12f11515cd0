package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// TextureBuffer is a buffer object exposed to shaders as a samplerBuffer.
type TextureBuffer struct {
	buffer  uint32
	texture uint32
	format  uint32
	Texels  int
}

// NewTextureBuffer uploads size bytes at data and views them with the
// given texel format (e.g. RGBA32F, RGBA32UI).
func NewTextureBuffer(data unsafe.Pointer, size int, format uint32, texels int) *TextureBuffer {
	tb := &TextureBuffer{format: format, Texels: texels}

	gl.GenBuffers(1, &tb.buffer)
	gl.BindBuffer(gl.TEXTURE_BUFFER, tb.buffer)
	gl.BufferData(gl.TEXTURE_BUFFER, size, data, gl.STATIC_DRAW)

	gl.GenTextures(1, &tb.texture)
	gl.BindTexture(gl.TEXTURE_BUFFER, tb.texture)
	gl.TexBuffer(gl.TEXTURE_BUFFER, format, tb.buffer)

	gl.BindTexture(gl.TEXTURE_BUFFER, 0)
	gl.BindBuffer(gl.TEXTURE_BUFFER, 0)
	return tb
}

// Bind binds the buffer texture to a texture unit.
func (tb *TextureBuffer) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_BUFFER, tb.texture)
}

// Delete releases the GL objects.
func (tb *TextureBuffer) Delete() {
	if tb.texture != 0 {
		gl.DeleteTextures(1, &tb.texture)
	}
	if tb.buffer != 0 {
		gl.DeleteBuffers(1, &tb.buffer)
	}
	tb.texture, tb.buffer = 0, 0
}

// StorageBuffer is a shader storage buffer object.
type StorageBuffer struct {
	buffer uint32
	Size   int
}

// NewStorageBuffer uploads size bytes at data.
func NewStorageBuffer(data unsafe.Pointer, size int) *StorageBuffer {
	sb := &StorageBuffer{Size: size}
	gl.GenBuffers(1, &sb.buffer)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, sb.buffer)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, data, gl.STATIC_DRAW)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return sb
}

// Bind attaches the buffer to a storage block binding point.
func (sb *StorageBuffer) Bind(binding uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, sb.buffer)
}

// Delete releases the GL buffer.
func (sb *StorageBuffer) Delete() {
	if sb.buffer != 0 {
		gl.DeleteBuffers(1, &sb.buffer)
		sb.buffer = 0
	}
}

// checkLimit fails when size exceeds limit. A non-positive limit is unknown
// and not enforced.
func checkLimit(what string, size, limit int) error {
	if limit > 0 && size > limit {
		return fmt.Errorf("%s needs %d, limit is %d: %w", what, size, limit, ErrResourceLimit)
	}
	return nil
}

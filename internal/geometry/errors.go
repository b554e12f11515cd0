package geometry

import "errors"

var (
	// ErrTextureLoad is returned when a diffuse texture cannot be read or decoded.
	ErrTextureLoad = errors.New("texture load failed")

	// ErrTextureSize is returned when a texture does not match the array dimensions.
	ErrTextureSize = errors.New("texture size mismatch")

	// ErrLayerLimit is returned when there are more distinct textures than array layers.
	ErrLayerLimit = errors.New("texture layer limit exceeded")

	// ErrInvalidMesh is returned for meshes with malformed attribute or index data.
	ErrInvalidMesh = errors.New("invalid mesh")

	// ErrIndexOutOfRange is returned when a corner references a missing vertex.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrInconsistent signals that the compiled buffers disagree on the triangle list.
	ErrInconsistent = errors.New("compiled buffers inconsistent")
)

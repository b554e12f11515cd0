// Package gpu wraps the OpenGL 4.3 objects that hold the compiled scene.
package gpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/logger"
)

// ErrResourceLimit is returned when an upload exceeds a driver limit.
var ErrResourceLimit = errors.New("GPU resource limit exceeded")

// Limits holds the driver limits checked before uploads.
type Limits struct {
	MaxArrayTextureLayers int
	MaxTextureSize        int
	MaxTextureBufferSize  int // texels
	MaxStorageBlockSize   int // bytes
	MaxComputeGroupCountX int // work groups per dispatch
	MaxComputeGroupCountY int
	MaxComputeGroupSizeX  int // local size
	MaxComputeGroupSizeY  int
	MaxComputeInvocations int // local size x * y * z
}

// Init loads the OpenGL function pointers and queries driver limits.
// It must be called after the context is current.
func Init() (Limits, error) {
	if err := gl.Init(); err != nil {
		return Limits{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	l := Limits{
		MaxArrayTextureLayers: getInt(gl.MAX_ARRAY_TEXTURE_LAYERS),
		MaxTextureSize:        getInt(gl.MAX_TEXTURE_SIZE),
		MaxTextureBufferSize:  getInt(gl.MAX_TEXTURE_BUFFER_SIZE),
		MaxStorageBlockSize:   getInt(gl.MAX_SHADER_STORAGE_BLOCK_SIZE),
		MaxComputeInvocations: getInt(gl.MAX_COMPUTE_WORK_GROUP_INVOCATIONS),
	}
	l.MaxComputeGroupCountX = getIndexedInt(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 0)
	l.MaxComputeGroupCountY = getIndexedInt(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 1)
	l.MaxComputeGroupSizeX = getIndexedInt(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 0)
	l.MaxComputeGroupSizeY = getIndexedInt(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 1)

	logger.Debug("GPU limits", zap.Any("limits", l))
	return l, nil
}

func getIndexedInt(pname, index uint32) int {
	var v int32
	gl.GetIntegeri_v(pname, index, &v)
	return int(v)
}

func getInt(pname uint32) int {
	var v int32
	gl.GetIntegerv(pname, &v)
	return int(v)
}

// CheckError returns the pending GL error, if any.
func CheckError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%04X", op, code)
	}
	return nil
}

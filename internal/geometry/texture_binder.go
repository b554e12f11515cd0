package geometry

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/logger"
)

// ImageLoader decodes a diffuse texture into RGBA8 pixels.
type ImageLoader interface {
	Load(path string) (*image.RGBA, error)
}

// LayerSink receives the texture array. Allocate is called at most once,
// before any Upload.
type LayerSink interface {
	Allocate(width, height, depth int) error
	Upload(layer int, img *image.RGBA) error
}

// TextureBinder assigns texture array layers to mesh materials.
type TextureBinder struct {
	Loader    ImageLoader
	MaxLayers int // Zero means MaxTextureSlots
}

// Bind assigns a slot to every material in mesh order and uploads each
// distinct image once. All images are loaded and validated before the sink
// is touched, so a failed bind leaves no partially filled array behind.
func (b *TextureBinder) Bind(ctx context.Context, materials []Material, sink LayerSink) (TextureSlotTable, []Layer, error) {
	log := logger.Named("texture")

	limit := b.MaxLayers
	if limit <= 0 || limit > MaxTextureSlots {
		limit = MaxTextureSlots
	}

	slots := make(TextureSlotTable, len(materials))
	byPath := make(map[string]uint32)
	var layers []Layer

	for i, mat := range materials {
		if !mat.Textured() {
			slots[i] = NoTextureSlot
			continue
		}
		if slot, ok := byPath[mat.DiffusePath]; ok {
			log.Debug("re-using texture", zap.String("path", mat.DiffusePath), zap.Uint32("slot", slot))
			slots[i] = slot
			continue
		}
		if len(layers) >= limit {
			return nil, nil, fmt.Errorf("%d layers available, %q needs another: %w",
				limit, mat.DiffusePath, ErrLayerLimit)
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		img, err := b.load(mat.DiffusePath)
		if err != nil {
			return nil, nil, err
		}
		if len(layers) > 0 {
			want := layers[0].Image.Bounds().Size()
			if got := img.Bounds().Size(); got != want {
				return nil, nil, fmt.Errorf("%q is %dx%d, array is %dx%d: %w",
					mat.DiffusePath, got.X, got.Y, want.X, want.Y, ErrTextureSize)
			}
		}

		slot := uint32(len(layers))
		byPath[mat.DiffusePath] = slot
		slots[i] = slot
		layers = append(layers, Layer{Slot: slot, Path: mat.DiffusePath, Image: img})
		log.Info("loaded texture",
			zap.String("path", mat.DiffusePath),
			zap.Uint32("slot", slot),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
	}

	if len(layers) == 0 || sink == nil {
		return slots, layers, nil
	}

	size := layers[0].Image.Bounds().Size()
	if err := sink.Allocate(size.X, size.Y, len(layers)); err != nil {
		return nil, nil, fmt.Errorf("allocating texture array: %w", err)
	}
	for _, l := range layers {
		if err := sink.Upload(int(l.Slot), l.Image); err != nil {
			return nil, nil, fmt.Errorf("uploading layer %d (%s): %w", l.Slot, l.Path, err)
		}
	}

	return slots, layers, nil
}

func (b *TextureBinder) load(path string) (*image.RGBA, error) {
	if b.Loader == nil {
		return nil, fmt.Errorf("%q: no image loader: %w", path, ErrTextureLoad)
	}
	img, err := b.Loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%q: %w: %w", path, ErrTextureLoad, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%q: empty image: %w", path, ErrTextureLoad)
	}
	return img, nil
}

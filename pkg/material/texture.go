package material

import (
	"fmt"
	"math"

	"github.com/df07/go-blockcast/pkg/core"
)

// bytesPerPixel is the stride of the RGBA pixel buffer
const bytesPerPixel = 4

// Texture is a decoded RGBA image sampled by UV coordinates.
// Textures are immutable once built and are shared between materials by pointer.
type Texture struct {
	Width  int
	Height int
	Data   []byte // Row-major RGBA: Data[(y*Width+x)*4 : +4]
}

// NewTexture wraps a raw RGBA buffer
func NewTexture(width, height int, data []byte) (*Texture, error) {
	if err := checkTextureSize(width, height); err != nil {
		return nil, err
	}
	if len(data) != width*height*bytesPerPixel {
		return nil, fmt.Errorf("texture %dx%d needs %d bytes, got %d",
			width, height, width*height*bytesPerPixel, len(data))
	}
	return &Texture{Width: width, Height: height, Data: data}, nil
}

// GetColor samples the texture at (u, v) with nearest-neighbor lookup.
// Coordinates outside [0,1] wrap: the scaled index is taken modulo the texture size.
// Row 0 of the buffer is v=0.
func (t *Texture) GetColor(u, v float64) core.Color {
	x := wrapIndex(u, t.Width)
	y := wrapIndex(v, t.Height)
	idx := (y*t.Width + x) * bytesPerPixel
	return core.NewColor(float64(t.Data[idx]), float64(t.Data[idx+1]), float64(t.Data[idx+2]))
}

func wrapIndex(coord float64, size int) int {
	scaled := coord * float64(size)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return 0
	}
	i := int(math.Floor(scaled)) % size
	if i < 0 {
		i += size
	}
	return i
}

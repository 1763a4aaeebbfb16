package lights

import (
	"github.com/df07/go-blockcast/pkg/core"
)

// Light is a point light with a color and scalar intensity
type Light struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewLight creates a point light; negative intensities are clamped to zero
func NewLight(position core.Vec3, color core.Color, intensity float64) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: max(0, intensity),
	}
}

// Snapshot copies the lights so a render pass is unaffected by later changes
func Snapshot(lights []Light) []Light {
	return append([]Light(nil), lights...)
}

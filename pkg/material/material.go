package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-blockcast/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for out-of-range optical parameters
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the optical parameters of a primitive surface.
// Materials are immutable after scene construction and shared by pointer.
type Material struct {
	Diffuse      core.Color // Flat diffuse color, replaced by the texture when one applies
	Specular     float64    // Specular exponent (>= 0)
	Albedo       [2]float64 // Diffuse weight, specular weight
	Texture      *Texture   // Optional; nil means flat color
	Reflectivity float64    // 0..1, weighted by the Fresnel factor during shading
	Transparency float64    // 0..1, reserved for refraction (not traced)
	Emissive     bool       // Shown at its diffuse color without lighting (skyboxes)
}

// Black returns the sentinel material carried by empty intersections:
// no color, no albedo, neither reflective nor transparent
func Black() *Material {
	return &black
}

var black = Material{}

// HasTexture reports whether the material samples a texture
func (m *Material) HasTexture() bool {
	return m != nil && m.Texture != nil
}

// DiffuseAt returns the diffuse base color, sampling the texture when uv is available
func (m *Material) DiffuseAt(u, v float64, hasUV bool) core.Color {
	if hasUV && m.HasTexture() {
		return m.Texture.GetColor(u, v)
	}
	return m.Diffuse
}

// Validate checks the parameter ranges
func (m *Material) Validate() error {
	switch {
	case m.Specular < 0:
		return fmt.Errorf("specular exponent %f is negative: %w", m.Specular, ErrInvalidMaterial)
	case m.Reflectivity < 0 || m.Reflectivity > 1:
		return fmt.Errorf("reflectivity %f outside [0,1]: %w", m.Reflectivity, ErrInvalidMaterial)
	case m.Transparency < 0 || m.Transparency > 1:
		return fmt.Errorf("transparency %f outside [0,1]: %w", m.Transparency, ErrInvalidMaterial)
	}
	return nil
}

package core

import (
	"image/color"
	"math"
)

// Color is an RGB color in display units (0-255 per channel).
// Arithmetic is unclamped; channels are clamped only when converted for output.
type Color struct {
	R, G, B float64
}

// NewColor creates a color from channel values
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex creates a color from a 0xRRGGBB value
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex >> 16) & 0xFF),
		G: float64((hex >> 8) & 0xFF),
		B: float64(hex & 0xFF),
	}
}

// Black is the zero color
func Black() Color {
	return Color{}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the channel-wise product, treating other as 0-255 weights
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R / 255, c.G * other.G / 255, c.B * other.B / 255}
}

// Luminance returns the perceptual luminance using 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Clamped returns the color with every channel clamped to [0, 255]
func (c Color) Clamped() Color {
	return Color{clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)}
}

// ToHex packs the clamped color as 0xRRGGBB
func (c Color) ToHex() uint32 {
	r, g, b := c.bytes()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGBA converts the clamped color to an opaque color.RGBA
func (c Color) RGBA() color.RGBA {
	r, g, b := c.bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (c Color) bytes() (uint8, uint8, uint8) {
	c = c.Clamped()
	return uint8(c.R), uint8(c.G), uint8(c.B)
}

func clampChannel(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(255, v))
}

package renderer

import (
	"image"

	"github.com/df07/go-blockcast/pkg/core"
)

// Framebuffer is a packed 0xRRGGBB pixel buffer
type Framebuffer struct {
	Width  int
	Height int
	Buffer []uint32

	currentColor uint32
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Buffer: make([]uint32, width*height),
	}
}

// Clear fills the buffer with c
func (fb *Framebuffer) Clear(c core.Color) {
	hex := c.ToHex()
	for i := range fb.Buffer {
		fb.Buffer[i] = hex
	}
}

// SetCurrentColor selects the color written by Point
func (fb *Framebuffer) SetCurrentColor(c core.Color) {
	fb.currentColor = c.ToHex()
}

// Point writes the current color at (x, y); out-of-range points are ignored
func (fb *Framebuffer) Point(x, y int) {
	if fb.inBounds(x, y) {
		fb.Buffer[y*fb.Width+x] = fb.currentColor
	}
}

// Set writes c at (x, y) without touching the current color, so disjoint
// pixels can be written from several goroutines
func (fb *Framebuffer) Set(x, y int, c core.Color) {
	if fb.inBounds(x, y) {
		fb.Buffer[y*fb.Width+x] = c.ToHex()
	}
}

// At returns the packed color at (x, y)
func (fb *Framebuffer) At(x, y int) uint32 {
	if !fb.inBounds(x, y) {
		return 0
	}
	return fb.Buffer[y*fb.Width+x]
}

// ColorAt returns the color at (x, y)
func (fb *Framebuffer) ColorAt(x, y int) core.Color {
	return core.ColorFromHex(fb.At(x, y))
}

// WriteRGBA fills dst (4 bytes per pixel, at least Width*Height*4 long) with opaque RGBA bytes
func (fb *Framebuffer) WriteRGBA(dst []byte) {
	for i, hex := range fb.Buffer {
		dst[i*4] = byte(hex >> 16)
		dst[i*4+1] = byte(hex >> 8)
		dst[i*4+2] = byte(hex)
		dst[i*4+3] = 0xFF
	}
}

// Image converts the buffer to an RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.WriteRGBA(img.Pix)
	return img
}

// TileImage copies the pixels inside bounds into an image with origin (0,0)
func (fb *Framebuffer) TileImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hex := fb.Buffer[y*fb.Width+x]
			i := img.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			img.Pix[i] = byte(hex >> 16)
			img.Pix[i+1] = byte(hex >> 8)
			img.Pix[i+2] = byte(hex)
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

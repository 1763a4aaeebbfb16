package material

import (
	"fmt"

	"github.com/df07/go-blockcast/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Color) (*Texture, error) {
	if err := checkTextureSize(width, height); err != nil {
		return nil, err
	}
	data := make([]byte, width*height*bytesPerPixel)
	if checkSize <= 0 {
		checkSize = 1
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Alternate colors based on check position
			color := color1
			if (x/checkSize+y/checkSize)%2 != 0 {
				color = color2
			}
			putPixel(data, (y*width+x)*bytesPerPixel, color)
		}
	}

	return &Texture{Width: width, Height: height, Data: data}, nil
}

// NewGradientTexture creates a vertical gradient from color1 (row 0) to color2 (last row)
func NewGradientTexture(width, height int, color1, color2 core.Color) (*Texture, error) {
	if err := checkTextureSize(width, height); err != nil {
		return nil, err
	}
	data := make([]byte, width*height*bytesPerPixel)

	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))

		for x := 0; x < width; x++ {
			putPixel(data, (y*width+x)*bytesPerPixel, color)
		}
	}

	return &Texture{Width: width, Height: height, Data: data}, nil
}

func checkTextureSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("texture size %dx%d must be positive", width, height)
	}
	return nil
}

func putPixel(data []byte, idx int, c core.Color) {
	rgba := c.RGBA()
	data[idx] = rgba.R
	data[idx+1] = rgba.G
	data[idx+2] = rgba.B
	data[idx+3] = rgba.A
}

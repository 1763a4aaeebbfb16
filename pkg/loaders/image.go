package loaders

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"sync"

	"github.com/df07/go-blockcast/pkg/material"
)

// AssetLoadError reports a texture that could not be opened or decoded
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %q: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// LoadTexture loads a PNG or JPEG image into a raw RGBA texture
func LoadTexture(filename string) (*material.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &AssetLoadError{Path: filename, Err: fmt.Errorf("failed to open image file: %w", err)}
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &AssetLoadError{Path: filename, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, &AssetLoadError{Path: filename, Err: fmt.Errorf("image has no pixels")}
	}

	// Convert to non-premultiplied 8-bit RGBA with origin at (0,0)
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	texture, err := material.NewTexture(bounds.Dx(), bounds.Dy(), rgba.Pix)
	if err != nil {
		return nil, &AssetLoadError{Path: filename, Err: err}
	}
	return texture, nil
}

// TextureCache loads each texture path once so materials can share the decoded pixels.
// It is safe for concurrent use.
type TextureCache struct {
	mu       sync.Mutex
	textures map[string]*material.Texture
}

// NewTextureCache creates an empty cache
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*material.Texture)}
}

// Load returns the cached texture for filename, decoding it on first use
func (c *TextureCache) Load(filename string) (*material.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if texture, ok := c.textures[filename]; ok {
		return texture, nil
	}
	texture, err := LoadTexture(filename)
	if err != nil {
		return nil, err
	}
	c.textures[filename] = texture
	return texture, nil
}

// Len returns the number of decoded textures
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}

package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/loaders"
)

// ErrUnknownScene is returned by Create for names missing from the registry
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene from settings; the cache shares decoded textures between builds
type Builder func(cfg config.Config, cache *loaders.TextureCache, logger core.Logger) (*Scene, error)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type registration struct {
	info  SceneInfo
	build Builder
}

var registry = map[string]registration{
	"forest": {
		info: SceneInfo{
			ID:          "forest",
			DisplayName: "Block Forest",
			Description: "Textured box trees, stones, a floating sphere and the sun",
		},
		build: NewForestScene,
	},
	"sphere": {
		info: SceneInfo{
			ID:          "sphere",
			DisplayName: "Unit Sphere",
			Description: "Single red sphere lit from above the camera",
		},
		build: NewSphereScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, r := range registry {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the named scene
func Create(name string, cfg config.Config, cache *loaders.TextureCache, logger core.Logger) (*Scene, error) {
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	s, err := r.build(cfg, cache, logger)
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", name, err)
	}
	return s, nil
}

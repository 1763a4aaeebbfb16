package scene

import (
	"fmt"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/loaders"
	"github.com/df07/go-blockcast/pkg/material"
)

// Forest surface colors, used flat and as procedural texture tints
var (
	woodColor  = core.NewColor(139, 69, 19)
	grassColor = core.NewColor(34, 139, 34)
	stoneColor = core.NewColor(128, 128, 128)
	skyColor   = core.NewColor(135, 206, 235)
	sunColor   = core.NewColor(255, 255, 0)
)

const (
	proceduralTextureSize = 64
	sunRadius             = 5.0
	skyboxExtent          = 50.0
)

// tree places one trunk column and its leaf cube
type tree struct {
	baseX, baseZ float64
	trunkHeight  float64
	leavesSize   float64
}

var forestTrees = []tree{
	{-1.5, -4, 3, 1},
	{1.5, -5, 4, 1.5},
	{0, -6, 2, 1},
	{3, -6, 3, 1.2},
	{-3, -3, 3.5, 1},
	{2, -8, 2.8, 1.2},
}

// stone is a textured boulder box with its own tint
type stone struct {
	min, max core.Vec3
	tint     float64
}

var forestStones = []stone{
	{core.NewVec3(-2, -1, -4), core.NewVec3(-1, 1, -3), 255},
	{core.NewVec3(-1.5, -1, -3.5), core.NewVec3(-0.5, 0.5, -2.5), 200},
	{core.NewVec3(2.5, -0.5, -4.5), core.NewVec3(3, 0, -4), 180},
}

// forestTextures are decoded once and shared by every material that uses them
type forestTextures struct {
	wood, grass, stone, sky *material.Texture
}

// NewForestScene builds the block forest: textured trees, stones, a floating sphere,
// a sun sphere at the main light and, when enabled, a skybox.
// Texture load failures are returned before any rendering happens.
func NewForestScene(cfg config.Config, cache *loaders.TextureCache, logger core.Logger) (*Scene, error) {
	if cache == nil {
		cache = loaders.NewTextureCache()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	textures, err := loadForestTextures(cfg.Textures, cache, logger)
	if err != nil {
		return nil, err
	}

	s, err := newBaseScene(cfg)
	if err != nil {
		return nil, err
	}

	wood := &material.Material{Diffuse: woodColor, Specular: 1, Albedo: [2]float64{0.7, 0.3}, Texture: textures.wood, Reflectivity: 0.1}
	leaves := &material.Material{Diffuse: grassColor, Specular: 1, Albedo: [2]float64{0.7, 0.3}, Texture: textures.grass, Reflectivity: 0.1}

	for i, t := range forestTrees {
		if err := s.addTree(t, wood, leaves); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	for i, st := range forestStones {
		mat := &material.Material{
			Diffuse:      core.NewColor(st.tint, st.tint, st.tint),
			Specular:     1,
			Albedo:       [2]float64{0.7, 0.3},
			Texture:      textures.stone,
			Reflectivity: 0.3,
		}
		if err := s.add(geometry.NewBox(st.min, st.max, mat)); err != nil {
			return nil, fmt.Errorf("stone %d: %w", i, err)
		}
	}

	glow := &material.Material{Diffuse: sunColor, Specular: 1, Albedo: [2]float64{1, 1}}
	if err := s.add(geometry.NewSphere(core.NewVec3(1.5, 4, -6), 0.5, glow)); err != nil {
		return nil, fmt.Errorf("floating sphere: %w", err)
	}

	if len(s.Lights) > 0 {
		sun := &material.Material{Diffuse: sunColor, Specular: 100, Albedo: [2]float64{1, 0}}
		if err := s.add(geometry.NewSphere(s.Lights[0].Position, sunRadius, sun)); err != nil {
			return nil, fmt.Errorf("sun: %w", err)
		}
	}

	if cfg.Textures.Skybox {
		sky := &material.Material{Diffuse: skyColor, Texture: textures.sky, Emissive: true}
		extent := core.NewVec3(skyboxExtent, skyboxExtent, skyboxExtent)
		if err := s.add(geometry.NewSkybox(extent.Negate(), extent, sky)); err != nil {
			return nil, fmt.Errorf("skybox: %w", err)
		}
	}

	logger.Printf("Forest scene: %d objects, %d lights, %d textures decoded\n", len(s.Objects), len(s.Lights), cache.Len())
	return s, nil
}

// addTree stacks one box per whole unit of trunk height, then caps it with leaves
func (s *Scene) addTree(t tree, wood, leaves *material.Material) error {
	for i := 0; i < int(t.trunkHeight); i++ {
		y := float64(i)
		lo := core.NewVec3(t.baseX-0.25, y-1, t.baseZ-0.25)
		hi := core.NewVec3(t.baseX+0.25, y+0.25, t.baseZ+0.25)
		if err := s.add(geometry.NewBox(lo, hi, wood)); err != nil {
			return err
		}
	}

	leavesY := t.trunkHeight - 0.5
	lo := core.NewVec3(t.baseX-t.leavesSize, leavesY, t.baseZ-t.leavesSize)
	hi := core.NewVec3(t.baseX+t.leavesSize, leavesY+t.leavesSize, t.baseZ+t.leavesSize)
	return s.add(geometry.NewBox(lo, hi, leaves))
}

func loadForestTextures(sources config.TexturesConfig, cache *loaders.TextureCache, logger core.Logger) (forestTextures, error) {
	var textures forestTextures
	var err error

	if textures.wood, err = sceneTexture(cache, sources.Wood, func() (*material.Texture, error) {
		return material.NewCheckerboardTexture(proceduralTextureSize, proceduralTextureSize, 8, woodColor, woodColor.Multiply(0.7))
	}); err != nil {
		return textures, err
	}
	if textures.grass, err = sceneTexture(cache, sources.Grass, func() (*material.Texture, error) {
		return material.NewCheckerboardTexture(proceduralTextureSize, proceduralTextureSize, 8, grassColor, grassColor.Multiply(0.8))
	}); err != nil {
		return textures, err
	}
	if textures.stone, err = sceneTexture(cache, sources.Stone, func() (*material.Texture, error) {
		return material.NewCheckerboardTexture(proceduralTextureSize, proceduralTextureSize, 16, stoneColor, stoneColor.Multiply(0.75))
	}); err != nil {
		return textures, err
	}
	if sources.Skybox {
		if textures.sky, err = sceneTexture(cache, sources.Sky, func() (*material.Texture, error) {
			return material.NewGradientTexture(proceduralTextureSize, proceduralTextureSize, skyColor, core.NewColor(255, 255, 255))
		}); err != nil {
			return textures, err
		}
	}

	if sources.Wood == "" || sources.Grass == "" || sources.Stone == "" {
		logger.Printf("Using procedural textures for sources without a file\n")
	}
	return textures, nil
}

// sceneTexture loads path through the cache; an empty path selects the procedural texture.
// A failed load is an error, never a silent procedural substitute.
func sceneTexture(cache *loaders.TextureCache, path string, procedural func() (*material.Texture, error)) (*material.Texture, error) {
	if path == "" {
		return procedural()
	}
	return cache.Load(path)
}

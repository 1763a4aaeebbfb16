package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
	"github.com/df07/go-blockcast/pkg/loaders"
	"github.com/df07/go-blockcast/pkg/renderer"
)

// 17 trunk boxes, 6 leaf cubes, 3 stones, the floating sphere and the sun
const forestObjectCount = 28

func writeSolidPNG(t *testing.T, name string, c color.RGBA) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return path
}

func TestNewForestScene_Defaults(t *testing.T) {
	s, err := NewForestScene(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}

	if len(s.Objects) != forestObjectCount {
		t.Errorf("Expected %d objects, got %d", forestObjectCount, len(s.Objects))
	}
	if len(s.Lights) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(s.Lights))
	}
	if s.Background != renderer.DefaultBackground {
		t.Errorf("Expected default background, got %v", s.Background)
	}
	if !s.Camera.Eye().ApproxEqual(core.NewVec3(0, 0, 5), 1e-12) {
		t.Errorf("Expected eye (0,0,5), got %v", s.Camera.Eye())
	}

	// The sun sits on the main light
	sun, ok := s.Objects[len(s.Objects)-1].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected the last object to be the sun sphere, got %T", s.Objects[len(s.Objects)-1])
	}
	if sun.Center != s.Lights[0].Position || sun.Radius != sunRadius {
		t.Errorf("Expected sun at %v radius %f, got %v radius %f", s.Lights[0].Position, sunRadius, sun.Center, sun.Radius)
	}
}

func TestNewForestScene_SharedMaterials(t *testing.T) {
	s, err := NewForestScene(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}

	// First tree: three trunk boxes then the leaves
	trunk0 := s.Objects[0].GetMaterial()
	trunk1 := s.Objects[1].GetMaterial()
	leaves := s.Objects[3].GetMaterial()

	if trunk0 != trunk1 {
		t.Error("Expected trunk boxes to share one material")
	}
	if !trunk0.HasTexture() || !leaves.HasTexture() {
		t.Error("Expected procedural textures on trunk and leaves")
	}
	if trunk0.Texture == leaves.Texture {
		t.Error("Expected wood and grass textures to differ")
	}

	box, ok := s.Objects[0].(*geometry.Box)
	if !ok {
		t.Fatalf("Expected a box, got %T", s.Objects[0])
	}
	expectedMin := core.NewVec3(-1.75, -1, -4.25)
	expectedMax := core.NewVec3(-1.25, 0.25, -3.75)
	if !box.Min.ApproxEqual(expectedMin, 1e-12) || !box.Max.ApproxEqual(expectedMax, 1e-12) {
		t.Errorf("Expected first trunk box %v-%v, got %v-%v", expectedMin, expectedMax, box.Min, box.Max)
	}
}

func TestNewForestScene_Skybox(t *testing.T) {
	cfg := config.Default()
	cfg.Textures.Skybox = true

	s, err := NewForestScene(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}
	if len(s.Objects) != forestObjectCount+1 {
		t.Fatalf("Expected %d objects, got %d", forestObjectCount+1, len(s.Objects))
	}

	sky, ok := s.Objects[len(s.Objects)-1].(*geometry.Box)
	if !ok || !sky.Skybox {
		t.Fatalf("Expected the last object to be a skybox, got %T", s.Objects[len(s.Objects)-1])
	}
	if !sky.Material.Emissive || !sky.Material.HasTexture() {
		t.Error("Expected an unlit textured sky material")
	}

	// From inside, every primary ray lands on something
	rt := renderer.NewRaytracer(s, renderer.DefaultRenderConfig(), nil)
	stats := rt.Render(renderer.NewFramebuffer(20, 15))
	if stats.BackgroundPixels != 0 {
		t.Errorf("Expected the skybox to cover the background, got %d background pixels", stats.BackgroundPixels)
	}
}

func TestNewForestScene_TextureFiles(t *testing.T) {
	path := writeSolidPNG(t, "wood.png", color.RGBA{R: 100, G: 60, B: 20, A: 255})
	cfg := config.Default()
	cfg.Textures.Wood = path
	cfg.Textures.Grass = path

	cache := loaders.NewTextureCache()
	s, err := NewForestScene(cfg, cache, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}

	if cache.Len() != 1 {
		t.Errorf("Expected one decoded texture, got %d", cache.Len())
	}
	if s.Objects[0].GetMaterial().Texture != s.Objects[3].GetMaterial().Texture {
		t.Error("Expected trunk and leaves to share the decoded texture")
	}
	if got := s.Objects[0].GetMaterial().Texture.GetColor(0.5, 0.5); got != core.NewColor(100, 60, 20) {
		t.Errorf("Expected file texel, got %v", got)
	}
}

func TestNewForestScene_MissingTexture(t *testing.T) {
	cfg := config.Default()
	cfg.Textures.Stone = filepath.Join(t.TempDir(), "missing.png")

	s, err := NewForestScene(cfg, nil, nil)
	if s != nil {
		t.Error("Expected no scene when a texture fails to load")
	}
	var assetErr *loaders.AssetLoadError
	if !errors.As(err, &assetErr) {
		t.Fatalf("Expected AssetLoadError, got %v", err)
	}
	if assetErr.Path != cfg.Textures.Stone {
		t.Errorf("Expected path %s, got %s", cfg.Textures.Stone, assetErr.Path)
	}
}

func TestNewForestScene_DegenerateCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Eye = cfg.Camera.Target

	_, err := NewForestScene(cfg, nil, nil)
	if !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector, got %v", err)
	}
}

func TestNewForestScene_Renders(t *testing.T) {
	s, err := NewForestScene(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}

	rt := renderer.NewRaytracer(s, renderer.DefaultRenderConfig(), nil)
	stats := rt.Render(renderer.NewFramebuffer(40, 30))

	if stats.HitPixels == 0 {
		t.Error("Expected the forest to cover some pixels")
	}
	if stats.BackgroundPixels == 0 {
		t.Error("Expected background pixels without a skybox")
	}
}

func TestTimeOfDay(t *testing.T) {
	s, err := NewForestScene(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}
	secondLight := s.Lights[1]

	expected := []struct {
		time      lights.TimeOfDay
		color     core.Color
		intensity float64
	}{
		{lights.Afternoon, core.NewColor(255, 165, 0), 2},
		{lights.Night, core.NewColor(0, 0, 139), 1},
		{lights.Day, core.NewColor(255, 255, 255), 3},
	}

	for _, e := range expected {
		if got := s.AdvanceTimeOfDay(); got != e.time {
			t.Fatalf("Expected %v, got %v", e.time, got)
		}
		if s.Lights[0].Color != e.color || s.Lights[0].Intensity != e.intensity {
			t.Errorf("%v: expected %v x%f, got %v x%f", e.time, e.color, e.intensity, s.Lights[0].Color, s.Lights[0].Intensity)
		}
		if s.Lights[1] != secondLight {
			t.Errorf("%v: expected the second light to be untouched", e.time)
		}
	}
}

func TestTimeOfDay_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Input.TimeOfDay = "night"

	s, err := NewForestScene(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}
	if s.TimeOfDay != lights.Night || s.Lights[0].Color != core.NewColor(0, 0, 139) {
		t.Errorf("Expected night lighting, got %v with %v", s.TimeOfDay, s.Lights[0].Color)
	}

	cfg.Input.TimeOfDay = "midnight"
	if _, err := NewForestScene(cfg, nil, nil); err == nil {
		t.Error("Expected an error for an unknown time of day")
	}
}

func TestNewSphereScene(t *testing.T) {
	s, err := NewSphereScene(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("NewSphereScene failed: %v", err)
	}
	if len(s.Objects) != 1 || len(s.Lights) != 1 {
		t.Fatalf("Expected 1 object and 1 light, got %d and %d", len(s.Objects), len(s.Lights))
	}

	fb := renderer.NewFramebuffer(21, 21)
	renderer.NewRaytracer(s, renderer.DefaultRenderConfig(), nil).Render(fb)

	center := fb.ColorAt(10, 10)
	if center.R <= center.G || center.R <= center.B {
		t.Errorf("Expected a red center pixel, got %v", center)
	}
	if fb.At(0, 0) != s.Background.ToHex() {
		t.Errorf("Expected background in the corner, got %06x", fb.At(0, 0))
	}
}

func TestCreate(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID, config.Default(), nil, nil)
			if err != nil {
				t.Fatalf("Create(%s) failed: %v", info.ID, err)
			}
			if len(s.Objects) == 0 {
				t.Error("Expected objects")
			}
		})
	}

	if _, err := Create("cornell", config.Default(), nil, nil); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestList(t *testing.T) {
	scenes := List()
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].ID != "forest" || scenes[1].ID != "sphere" {
		t.Errorf("Expected sorted IDs forest, sphere; got %s, %s", scenes[0].ID, scenes[1].ID)
	}
}

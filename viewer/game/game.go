// Package game runs the interactive viewer on ebiten
package game

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/renderer"
	"github.com/df07/go-blockcast/pkg/scene"
)

// Game implements ebiten.Game. Update mutates the camera and lights; Draw renders them.
type Game struct {
	scene     *scene.Scene
	raytracer *renderer.Raytracer
	fb        *renderer.Framebuffer
	pixels    []byte
	input     KeyInput
	logger    core.Logger

	orbitStep float64
	zoomStep  float64
	parallel  bool

	dirty bool // Camera or lights changed since the last render
	stats renderer.RenderStats
}

// New creates a viewer for s sized by the render settings
func New(s *scene.Scene, cfg config.Config, logger core.Logger) *Game {
	if logger == nil {
		logger = core.NopLogger{}
	}
	fb := renderer.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	return &Game{
		scene: s,
		raytracer: renderer.NewRaytracer(s, renderer.RenderConfig{
			FOV:        cfg.Render.FOV(),
			TileSize:   cfg.Render.TileSize,
			NumWorkers: cfg.Render.Workers,
		}, logger),
		fb:        fb,
		pixels:    make([]byte, fb.Width*fb.Height*4),
		input:     ebitenInput{},
		logger:    logger,
		orbitStep: cfg.Input.OrbitStep(),
		zoomStep:  cfg.Input.ZoomStep,
		parallel:  cfg.Render.Parallel,
		dirty:     true,
	}
}

// Update polls the keyboard and applies the resulting actions
func (g *Game) Update() error {
	for _, action := range pollActions(g.input) {
		if action == Quit {
			return ebiten.Termination
		}
		g.apply(action)
	}
	return nil
}

func (g *Game) apply(action Action) {
	camera := g.scene.Camera
	switch action {
	case OrbitLeft:
		camera.Orbit(g.orbitStep, 0)
	case OrbitRight:
		camera.Orbit(-g.orbitStep, 0)
	case OrbitUp:
		camera.Orbit(0, g.orbitStep)
	case OrbitDown:
		camera.Orbit(0, -g.orbitStep)
	case ZoomIn:
		camera.ZoomIn(g.zoomStep)
	case ZoomOut:
		camera.ZoomOut(g.zoomStep)
	case CycleDay:
		t := g.scene.AdvanceTimeOfDay()
		g.logger.Printf("Time of day: %s\n", t)
	default:
		return
	}
	g.dirty = true
}

// Draw uploads the framebuffer, re-rendering it first when the view changed
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.renderFrame()
	}
	screen.WritePixels(g.pixels)
}

// renderFrame renders the scene and converts the framebuffer for upload
func (g *Game) renderFrame() {
	if g.parallel {
		stats, err := g.raytracer.RenderParallel(context.Background(), g.fb)
		if err != nil {
			g.logger.Printf("Render failed: %v\n", err)
			return
		}
		g.stats = stats
	} else {
		g.stats = g.raytracer.Render(g.fb)
	}
	g.fb.WriteRGBA(g.pixels)
	g.dirty = false
}

// Layout keeps the logical screen at framebuffer resolution; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}

// Stats returns the statistics of the last rendered frame
func (g *Game) Stats() renderer.RenderStats {
	return g.stats
}

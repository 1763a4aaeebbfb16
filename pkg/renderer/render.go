package renderer

import (
	"context"
	"image"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	FOV        float64 // Vertical field of view in radians
	TileSize   int     // Tile edge for parallel rendering
	NumWorkers int     // Parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		FOV:        math.Pi / 2,
		TileSize:   32,
		NumWorkers: 0,
	}
}

// Raytracer renders a scene into a framebuffer
type Raytracer struct {
	scene  Scene
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.FOV <= 0 || config.FOV >= math.Pi {
		config.FOV = DefaultRenderConfig().FOV
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{scene: scene, config: config, logger: logger}
}

// Frame is the render state fixed at the start of a pass.
// Camera and lights are copies, so the caller may mutate the scene once the pass returns.
type Frame struct {
	Camera     geometry.Camera
	Lights     []lights.Light
	Objects    []geometry.Object
	Background core.Color
	FOV        float64
}

// Snapshot captures the current camera and lights
func (rt *Raytracer) Snapshot() Frame {
	return Frame{
		Camera:     *rt.scene.GetCamera(),
		Lights:     lights.Snapshot(rt.scene.GetLights()),
		Objects:    rt.scene.GetObjects(),
		Background: rt.scene.GetBackground(),
		FOV:        rt.config.FOV,
	}
}

// PrimaryRay returns the camera ray through pixel (x, y) of a width×height image.
// Row 0 is the top of the image.
func (f *Frame) PrimaryRay(x, y, width, height int) core.Ray {
	w, h := float64(width), float64(height)
	aspectRatio := w / h
	perspectiveScale := math.Tan(f.FOV * 0.5)

	screenX := (2*float64(x)/w - 1) * aspectRatio * perspectiveScale
	screenY := (1 - 2*float64(y)/h) * perspectiveScale

	direction := core.NewVec3(screenX, screenY, -1).Normalize()
	return core.NewRay(f.Camera.Eye(), f.Camera.BaseChange(direction))
}

// renderBounds renders the pixels inside bounds; fb must only be shared with
// renderers working on disjoint bounds
func (f *Frame) renderBounds(ctx context.Context, fb *Framebuffer, bounds image.Rectangle) (RenderStats, error) {
	var stats RenderStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := f.PrimaryRay(x, y, fb.Width, fb.Height)
			color, hit := castRay(ray, f.Objects, f.Lights, f.Background)
			fb.Set(x, y, color)

			stats.TotalPixels++
			if hit {
				stats.HitPixels++
			} else {
				stats.BackgroundPixels++
			}
		}
	}
	return stats, nil
}

// Render renders one frame sequentially, row by row
func (rt *Raytracer) Render(fb *Framebuffer) RenderStats {
	startTime := time.Now()
	frame := rt.Snapshot()

	stats := RenderStats{Tiles: 1}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			ray := frame.PrimaryRay(x, y, fb.Width, fb.Height)
			color, hit := castRay(ray, frame.Objects, frame.Lights, frame.Background)

			fb.SetCurrentColor(color)
			fb.Point(x, y)

			stats.TotalPixels++
			if hit {
				stats.HitPixels++
			} else {
				stats.BackgroundPixels++
			}
		}
	}

	stats.Duration = time.Since(startTime)
	return stats
}

// RenderParallel renders one frame with tiles spread across workers.
// Each tile writes only its own pixels; cancelling ctx abandons the remaining tiles.
func (rt *Raytracer) RenderParallel(ctx context.Context, fb *Framebuffer) (RenderStats, error) {
	return rt.RenderTiles(ctx, fb, nil)
}

// RenderTiles is RenderParallel with a callback run on the worker goroutine after each
// tile completes. onTile may read the tile's pixels but must synchronize anything else.
func (rt *Raytracer) RenderTiles(ctx context.Context, fb *Framebuffer, onTile func(Tile)) (RenderStats, error) {
	startTime := time.Now()
	frame := rt.Snapshot()

	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tiles := NewTileGrid(fb.Width, fb.Height, rt.config.TileSize)
	tileStats := make([]RenderStats, len(tiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for _, tile := range tiles {
		tile := tile // per-iteration copy (go.mod targets go1.21 loop semantics)
		g.Go(func() error {
			stats, err := frame.renderBounds(gctx, fb, tile.Bounds)
			tileStats[tile.ID] = stats
			if err != nil {
				return err
			}
			if onTile != nil {
				onTile(tile)
			}
			return nil
		})
	}

	err := g.Wait()

	stats := RenderStats{Tiles: len(tiles)}
	for _, s := range tileStats {
		stats.add(s)
	}
	stats.Duration = time.Since(startTime)

	if err != nil {
		rt.logger.Printf("render cancelled after %d/%d pixels: %v\n", stats.TotalPixels, fb.Width*fb.Height, err)
		return stats, err
	}
	return stats, nil
}

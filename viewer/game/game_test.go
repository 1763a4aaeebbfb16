package game

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/lights"
	"github.com/df07/go-blockcast/pkg/scene"
)

// fakeInput reports fixed key state for one tick
type fakeInput struct {
	held        map[ebiten.Key]int
	justPressed map[ebiten.Key]bool
}

func (f *fakeInput) KeyPressDuration(key ebiten.Key) int { return f.held[key] }

func (f *fakeInput) IsKeyJustPressed(key ebiten.Key) bool { return f.justPressed[key] }

func press(keys ...ebiten.Key) *fakeInput {
	in := &fakeInput{held: map[ebiten.Key]int{}, justPressed: map[ebiten.Key]bool{}}
	for _, key := range keys {
		in.held[key] = 1
		in.justPressed[key] = true
	}
	return in
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Render.Width = 16
	cfg.Render.Height = 12
	cfg.Render.Parallel = false

	s, err := scene.NewForestScene(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewForestScene failed: %v", err)
	}
	return New(s, cfg, nil)
}

func TestPollActions(t *testing.T) {
	tests := []struct {
		name     string
		input    *fakeInput
		expected []Action
	}{
		{"nothing", press(), nil},
		{"left", press(ebiten.KeyArrowLeft), []Action{OrbitLeft}},
		{"right and down", press(ebiten.KeyArrowRight, ebiten.KeyArrowDown), []Action{OrbitRight, OrbitDown}},
		{"zoom", press(ebiten.KeyZ, ebiten.KeyX), []Action{ZoomIn, ZoomOut}},
		{"day", press(ebiten.KeyD), []Action{CycleDay}},
		{"escape wins", press(ebiten.KeyArrowUp, ebiten.KeyEscape), []Action{Quit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pollActions(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Action %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestRepeats(t *testing.T) {
	tests := []struct {
		duration int
		expected bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{repeatDelay - 1, false},
		{repeatDelay, true},
		{repeatDelay + 1, false},
		{repeatDelay + repeatInterval, true},
	}
	for _, tt := range tests {
		if got := repeats(tt.duration); got != tt.expected {
			t.Errorf("repeats(%d): expected %v, got %v", tt.duration, tt.expected, got)
		}
	}
}

func TestUpdate_Quit(t *testing.T) {
	g := newTestGame(t)
	g.input = press(ebiten.KeyEscape)

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Expected ebiten.Termination, got %v", err)
	}
}

func TestUpdate_Orbit(t *testing.T) {
	g := newTestGame(t)
	g.renderFrame()
	start := g.scene.Camera.Eye()
	distance := g.scene.Camera.Distance()

	g.input = press(ebiten.KeyArrowLeft)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.scene.Camera.Eye().ApproxEqual(start, 1e-9) {
		t.Error("Expected the eye to move")
	}
	if math.Abs(g.scene.Camera.Distance()-distance) > 1e-9 {
		t.Errorf("Expected orbit to keep distance %f, got %f", distance, g.scene.Camera.Distance())
	}
	if !g.dirty {
		t.Error("Expected the frame to be marked for re-render")
	}

	g.input = press(ebiten.KeyArrowRight)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.scene.Camera.Eye().ApproxEqual(start, 1e-9) {
		t.Errorf("Expected left then right to return to %v, got %v", start, g.scene.Camera.Eye())
	}
}

func TestUpdate_OrbitVertical(t *testing.T) {
	tests := []struct {
		name  string
		key   ebiten.Key
		above bool
	}{
		{"up raises the eye", ebiten.KeyArrowUp, true},
		{"down lowers the eye", ebiten.KeyArrowDown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			startY := g.scene.Camera.Eye().Y

			g.input = press(tt.key)
			if err := g.Update(); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			y := g.scene.Camera.Eye().Y
			if tt.above && !(y > startY) {
				t.Errorf("Expected eye above y=%f, got %f", startY, y)
			}
			if !tt.above && !(y < startY) {
				t.Errorf("Expected eye below y=%f, got %f", startY, y)
			}
		})
	}
}

func TestUpdate_Zoom(t *testing.T) {
	g := newTestGame(t)
	distance := g.scene.Camera.Distance()

	g.input = press(ebiten.KeyZ)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := g.scene.Camera.Distance(); math.Abs(got-(distance-0.5)) > 1e-9 {
		t.Errorf("Expected distance %f after zoom in, got %f", distance-0.5, got)
	}

	g.input = press(ebiten.KeyX)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := g.scene.Camera.Distance(); math.Abs(got-distance) > 1e-9 {
		t.Errorf("Expected distance %f after zoom out, got %f", distance, got)
	}
}

func TestUpdate_CycleDay(t *testing.T) {
	g := newTestGame(t)

	g.input = press(ebiten.KeyD)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.scene.TimeOfDay != lights.Afternoon {
		t.Errorf("Expected afternoon, got %v", g.scene.TimeOfDay)
	}
	if g.scene.Lights[0].Color != core.NewColor(255, 165, 0) {
		t.Errorf("Expected orange main light, got %v", g.scene.Lights[0].Color)
	}
}

func TestRenderFrame(t *testing.T) {
	g := newTestGame(t)
	g.renderFrame()

	if g.dirty {
		t.Error("Expected a clean frame after rendering")
	}
	if g.Stats().TotalPixels != 16*12 {
		t.Errorf("Expected %d pixels, got %d", 16*12, g.Stats().TotalPixels)
	}
	for i := 3; i < len(g.pixels); i += 4 {
		if g.pixels[i] != 0xFF {
			t.Fatalf("Expected opaque pixel at byte %d", i)
		}
	}

	// The top-left ray misses the forest
	bg := g.scene.Background.RGBA()
	if g.pixels[0] != bg.R || g.pixels[1] != bg.G || g.pixels[2] != bg.B {
		t.Errorf("Expected background %v in the corner, got %v", bg, g.pixels[:3])
	}
}

func TestLayout(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(800, 600)
	if w != 16 || h != 12 {
		t.Errorf("Expected 16x12 logical screen, got %dx%d", w, h)
	}
}

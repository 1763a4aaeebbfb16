package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is one viewer command derived from the keyboard
type Action int

const (
	OrbitLeft Action = iota
	OrbitRight
	OrbitUp
	OrbitDown
	ZoomIn
	ZoomOut
	CycleDay
	Quit
)

func (a Action) String() string {
	switch a {
	case OrbitLeft:
		return "orbit-left"
	case OrbitRight:
		return "orbit-right"
	case OrbitUp:
		return "orbit-up"
	case OrbitDown:
		return "orbit-down"
	case ZoomIn:
		return "zoom-in"
	case ZoomOut:
		return "zoom-out"
	case CycleDay:
		return "cycle-day"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Held keys fire on the first tick, then repeat after a delay
const (
	repeatDelay    = 15
	repeatInterval = 4
)

// KeyInput is the keyboard state for the current tick
type KeyInput interface {
	KeyPressDuration(key ebiten.Key) int
	IsKeyJustPressed(key ebiten.Key) bool
}

type ebitenInput struct{}

func (ebitenInput) KeyPressDuration(key ebiten.Key) int { return inpututil.KeyPressDuration(key) }

func (ebitenInput) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// repeatKeys move the camera while held
var repeatKeys = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyArrowLeft, OrbitLeft},
	{ebiten.KeyArrowRight, OrbitRight},
	{ebiten.KeyArrowUp, OrbitUp},
	{ebiten.KeyArrowDown, OrbitDown},
	{ebiten.KeyZ, ZoomIn},
	{ebiten.KeyX, ZoomOut},
}

// pollActions returns the actions triggered this tick, in a fixed order
func pollActions(in KeyInput) []Action {
	var actions []Action
	if in.IsKeyJustPressed(ebiten.KeyEscape) {
		return append(actions, Quit)
	}
	for _, rk := range repeatKeys {
		if repeats(in.KeyPressDuration(rk.key)) {
			actions = append(actions, rk.action)
		}
	}
	// Edge-triggered so one press advances exactly one preset
	if in.IsKeyJustPressed(ebiten.KeyD) {
		actions = append(actions, CycleDay)
	}
	return actions
}

func repeats(duration int) bool {
	if duration <= 0 {
		return false
	}
	if duration == 1 {
		return true
	}
	return duration >= repeatDelay && (duration-repeatDelay)%repeatInterval == 0
}

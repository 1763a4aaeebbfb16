package scene

import (
	"fmt"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera     *geometry.Camera
	Objects    []geometry.Object // Primitives in draw order; ties keep the earlier one
	Lights     []lights.Light    // Light 0 follows the time of day
	Background core.Color        // Color of rays that hit nothing
	TimeOfDay  lights.TimeOfDay
}

// GetObjects returns the scene primitives
func (s *Scene) GetObjects() []geometry.Object { return s.Objects }

// GetLights returns the scene lights
func (s *Scene) GetLights() []lights.Light { return s.Lights }

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera { return s.Camera }

// GetBackground returns the background color
func (s *Scene) GetBackground() core.Color { return s.Background }

// SetTimeOfDay recolors the main light
func (s *Scene) SetTimeOfDay(t lights.TimeOfDay) {
	s.TimeOfDay = t
	if len(s.Lights) > 0 {
		t.Apply(&s.Lights[0])
	}
}

// AdvanceTimeOfDay moves the main light to the next preset and returns it
func (s *Scene) AdvanceTimeOfDay() lights.TimeOfDay {
	s.SetTimeOfDay(s.TimeOfDay.Next())
	return s.TimeOfDay
}

// newBaseScene creates an empty scene with the configured camera, lights and background
func newBaseScene(cfg config.Config) (*Scene, error) {
	camera, err := geometry.NewCamera(
		config.ToVec3(cfg.Camera.Eye),
		config.ToVec3(cfg.Camera.Target),
		config.ToVec3(cfg.Camera.Up),
	)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	sceneLights := make([]lights.Light, 0, len(cfg.Lights))
	for _, light := range cfg.Lights {
		sceneLights = append(sceneLights, lights.NewLight(
			config.ToVec3(light.Position), config.ToColor(light.Color), light.Intensity))
	}

	s := &Scene{
		Camera:     camera,
		Objects:    make([]geometry.Object, 0),
		Lights:     sceneLights,
		Background: cfg.Render.BackgroundColor(),
		TimeOfDay:  lights.Day,
	}

	// The configured light 0 is the daytime look; other presets recolor it
	if cfg.Input.TimeOfDay != "" {
		t, err := lights.ParseTimeOfDay(cfg.Input.TimeOfDay)
		if err != nil {
			return nil, err
		}
		if t != lights.Day {
			s.SetTimeOfDay(t)
		}
	}

	return s, nil
}

func (s *Scene) add(object geometry.Object, err error) error {
	if err != nil {
		return err
	}
	s.Objects = append(s.Objects, object)
	return nil
}

package scene

import (
	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/geometry"
	"github.com/df07/go-blockcast/pkg/lights"
	"github.com/df07/go-blockcast/pkg/loaders"
	"github.com/df07/go-blockcast/pkg/material"
)

// NewSphereScene creates a single rubber-red unit sphere at the origin lit from above the camera.
// It uses the configured camera and background but its own light.
func NewSphereScene(cfg config.Config, _ *loaders.TextureCache, logger core.Logger) (*Scene, error) {
	cfg.Lights = nil
	cfg.Input.TimeOfDay = ""
	s, err := newBaseScene(cfg)
	if err != nil {
		return nil, err
	}

	s.Lights = append(s.Lights, lights.NewLight(core.NewVec3(0, 10, 5), core.NewColor(255, 255, 255), 3))

	rubber := &material.Material{
		Diffuse:      core.NewColor(80, 0, 0),
		Specular:     50,
		Albedo:       [2]float64{0.9, 0.1},
		Reflectivity: 0.1,
	}
	if err := s.add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, rubber)); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Printf("Sphere scene: %d objects, %d lights\n", len(s.Objects), len(s.Lights))
	}
	return s, nil
}

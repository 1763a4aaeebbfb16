// Package config loads blockcast settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-blockcast/pkg/core"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete settings file
type Config struct {
	Scene    string         `toml:"scene"` // Scene name passed to scene.Create
	Render   RenderConfig   `toml:"render"`
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Input    InputConfig    `toml:"input"`
	Lights   []LightConfig  `toml:"lights"`
	Textures TexturesConfig `toml:"textures"`
	Server   ServerConfig   `toml:"server"`
}

// RenderConfig sets the framebuffer and projection
type RenderConfig struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	FOVDegrees float64    `toml:"fov_degrees"`
	TileSize   int        `toml:"tile_size"`
	Workers    int        `toml:"workers"` // 0 = CPU count
	Parallel   bool       `toml:"parallel"`
	Background [3]float64 `toml:"background"`
}

// WindowConfig sets the interactive viewer window
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"` // Frame loop ticks per second
}

// CameraConfig places the orbit camera
type CameraConfig struct {
	Eye    [3]float64 `toml:"eye"`
	Target [3]float64 `toml:"target"`
	Up     [3]float64 `toml:"up"`
}

// InputConfig sets how far one key press moves the camera
type InputConfig struct {
	OrbitStepDegrees float64 `toml:"orbit_step_degrees"`
	ZoomStep         float64 `toml:"zoom_step"`
	TimeOfDay        string  `toml:"time_of_day"` // Initial day cycle preset
}

// LightConfig describes one point light
type LightConfig struct {
	Position  [3]float64 `toml:"position"`
	Color     [3]float64 `toml:"color"`
	Intensity float64    `toml:"intensity"`
}

// TexturesConfig lists texture files; an empty path selects a procedural texture
type TexturesConfig struct {
	Grass  string `toml:"grass"`
	Stone  string `toml:"stone"`
	Wood   string `toml:"wood"`
	Sky    string `toml:"sky"`
	Skybox bool   `toml:"skybox"` // Enclose the scene in a textured skybox
}

// ServerConfig sets the HTTP preview server
type ServerConfig struct {
	Port      int `toml:"port"`
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Scene: "forest",
		Render: RenderConfig{
			Width:      200,
			Height:     150,
			FOVDegrees: 90,
			TileSize:   32,
			Workers:    0,
			Parallel:   true,
			Background: [3]float64{4, 12, 36},
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Blockcast",
			TPS:    60,
		},
		Camera: CameraConfig{
			Eye:    [3]float64{0, 0, 5},
			Target: [3]float64{0, 0, 0},
			Up:     [3]float64{0, 1, 0},
		},
		Input: InputConfig{
			OrbitStepDegrees: 18,
			ZoomStep:         0.5,
			TimeOfDay:        "day",
		},
		Lights: []LightConfig{
			{Position: [3]float64{100, 100, 10}, Color: [3]float64{255, 255, 255}, Intensity: 3},
			{Position: [3]float64{-50, 50, 20}, Color: [3]float64{255, 100, 100}, Intensity: 2},
		},
		Server: ServerConfig{
			Port:      8080,
			MaxWidth:  1600,
			MaxHeight: 1200,
		},
	}
}

// Load reads a TOML file on top of the defaults.
// Keys the file sets replace the defaults; a [[lights]] table replaces the whole light list.
func Load(path string) (Config, error) {
	cfg := Default()
	defaultLights := cfg.Lights
	cfg.Lights = nil

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalidConfig)
	}
	if !md.IsDefined("lights") {
		cfg.Lights = defaultLights
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that would make rendering meaningless
func (c Config) Validate() error {
	switch {
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("render size %dx%d must be positive: %w", c.Render.Width, c.Render.Height, ErrInvalidConfig)
	case c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180:
		return fmt.Errorf("fov %f must be in (0, 180): %w", c.Render.FOVDegrees, ErrInvalidConfig)
	case c.Render.Workers < 0 || c.Render.TileSize < 0:
		return fmt.Errorf("workers and tile size must not be negative: %w", ErrInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.TPS <= 0:
		return fmt.Errorf("window %dx%d at %d TPS must be positive: %w", c.Window.Width, c.Window.Height, c.Window.TPS, ErrInvalidConfig)
	case c.Input.OrbitStepDegrees <= 0 || c.Input.ZoomStep <= 0:
		return fmt.Errorf("input steps must be positive: %w", ErrInvalidConfig)
	}
	for i, light := range c.Lights {
		if light.Intensity < 0 {
			return fmt.Errorf("light %d intensity %f is negative: %w", i, light.Intensity, ErrInvalidConfig)
		}
	}
	return nil
}

// FOV returns the field of view in radians
func (r RenderConfig) FOV() float64 {
	return r.FOVDegrees * math.Pi / 180
}

// BackgroundColor returns the background as a color
func (r RenderConfig) BackgroundColor() core.Color {
	return ToColor(r.Background)
}

// OrbitStep returns the orbit step in radians
func (i InputConfig) OrbitStep() float64 {
	return i.OrbitStepDegrees * math.Pi / 180
}

// ToVec3 converts a TOML triple to a vector
func ToVec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ToColor converts a TOML triple to a color
func ToColor(v [3]float64) core.Color {
	return core.NewColor(v[0], v[1], v[2])
}

package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/lights"
	"github.com/df07/go-blockcast/pkg/loaders"
	"github.com/df07/go-blockcast/pkg/renderer"
	"github.com/df07/go-blockcast/pkg/scene"
)

// Server handles web requests for the block ray caster
type Server struct {
	port  int
	cfg   config.Config
	cache *loaders.TextureCache // Shared by every request's scene
	echo  *echo.Echo
}

// NewServer creates a web server with its routes registered
func NewServer(port int, cfg config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	s := &Server{
		port:  port,
		cfg:   cfg,
		cache: loaders.NewTextureCache(),
		echo:  e,
	}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/render/stream", s.handleRenderStream)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.echo.Logger.Infof("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight renders until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// RenderRequest holds the scene and view parameters shared by the render and inspect endpoints
type RenderRequest struct {
	Scene     string  `json:"scene"`     // Scene name (e.g., "forest")
	Width     int     `json:"width"`     // Image width
	Height    int     `json:"height"`    // Image height
	Yaw       float64 `json:"yaw"`       // Orbit around world up, degrees
	Pitch     float64 `json:"pitch"`     // Orbit toward world up, degrees
	Zoom      float64 `json:"zoom"`      // Distance change toward the target (negative zooms out)
	TimeOfDay string  `json:"timeOfDay"` // "day", "afternoon" or "night"; empty keeps the config
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	HitPixels   int     `json:"hitPixels"`
	Tiles       int     `json:"tiles"`
	HitRatio    float64 `json:"hitRatio"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels: stats.TotalPixels,
		HitPixels:   stats.HitPixels,
		Tiles:       stats.Tiles,
		HitRatio:    stats.HitRatio(),
		ElapsedMs:   stats.Duration.Milliseconds(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenes":  scene.List(),
		"default": s.cfg.Scene,
	})
}

// parseRenderRequest parses and validates the shared query parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:     values.Get("scene"),
		TimeOfDay: values.Get("time"),
	}
	if req.Scene == "" {
		req.Scene = s.cfg.Scene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", s.cfg.Render.Width, 1, s.cfg.Server.MaxWidth); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", s.cfg.Render.Height, 1, s.cfg.Server.MaxHeight); err != nil {
		return nil, err
	}
	if req.Yaw, err = parseFloatParam(values, "yaw", 0, -360, 360); err != nil {
		return nil, err
	}
	if req.Pitch, err = parseFloatParam(values, "pitch", 0, -180, 180); err != nil {
		return nil, err
	}
	if req.Zoom, err = parseFloatParam(values, "zoom", 0, -100, 100); err != nil {
		return nil, err
	}
	if req.TimeOfDay != "" {
		if _, err := lights.ParseTimeOfDay(req.TimeOfDay); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// setupScene builds a fresh scene for the request and applies its view
func (s *Server) setupScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene, s.cfg, s.cache, logger)
	if err != nil {
		return nil, err
	}

	if req.Yaw != 0 || req.Pitch != 0 {
		sceneObj.Camera.Orbit(req.Yaw*math.Pi/180, req.Pitch*math.Pi/180)
	}
	if req.Zoom > 0 {
		sceneObj.Camera.ZoomIn(req.Zoom)
	} else if req.Zoom < 0 {
		sceneObj.Camera.ZoomOut(-req.Zoom)
	}
	if req.TimeOfDay != "" {
		t, err := lights.ParseTimeOfDay(req.TimeOfDay)
		if err != nil {
			return nil, err
		}
		sceneObj.SetTimeOfDay(t)
	}

	return sceneObj, nil
}

// newRaytracer creates a raytracer with the configured projection and tiling
func (s *Server) newRaytracer(sceneObj *scene.Scene, logger core.Logger) *renderer.Raytracer {
	return renderer.NewRaytracer(sceneObj, renderer.RenderConfig{
		FOV:        s.cfg.Render.FOV(),
		TileSize:   s.cfg.Render.TileSize,
		NumWorkers: s.cfg.Render.Workers,
	}, logger)
}

// sceneError maps scene construction failures to responses
func sceneError(c echo.Context, err error) error {
	if errors.Is(err, scene.ErrUnknownScene) {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	var assetErr *loaders.AssetLoadError
	if errors.As(err, &assetErr) {
		c.Logger().Errorf("scene asset %s: %v", assetErr.Path, assetErr.Err)
	}
	return c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// requestID returns the ID set by the RequestID middleware
func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/loaders"
	"github.com/df07/go-blockcast/pkg/renderer"
	"github.com/df07/go-blockcast/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one frame headlessly and writes it as a PNG
func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("blockcast", flag.ContinueOnError)
	flags.SetOutput(stdout)
	configPath := flags.String("config", "", "TOML config file (defaults are used when empty)")
	sceneName := flags.String("scene", "", "Scene name, overrides the config: 'forest' or 'sphere'")
	outPath := flags.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	parallel := flags.Bool("parallel", true, "Render tiles in parallel")
	help := flags.Bool("help", false, "Show help information")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *help {
		printHelp(flags, stdout)
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}

	logger := core.NewWriterLogger(stdout)
	logger.Printf("Starting Blockcast with scene %s...\n", cfg.Scene)

	selectedScene, err := scene.Create(cfg.Scene, cfg, loaders.NewTextureCache(), logger)
	if err != nil {
		return err
	}

	fb, stats, err := renderFrame(selectedScene, cfg, *parallel, logger)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v: %d tiles, %.1f%% of pixels hit, average luminance %.1f\n",
		stats.Duration, stats.Tiles, 100*stats.HitRatio(), renderer.AverageLuminance(fb))

	filename := *outPath
	if filename == "" {
		filename = createOutputPath(cfg.Scene, time.Now())
	}
	if err := savePNG(filename, fb); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func printHelp(flags *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Blockcast")
	fmt.Fprintln(w, "Usage: blockcast [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %s - %s\n", info.ID, info.Description)
	}
}

// loadConfig reads path, or returns the defaults when path is empty
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func renderFrame(s *scene.Scene, cfg config.Config, parallel bool, logger core.Logger) (*renderer.Framebuffer, renderer.RenderStats, error) {
	rt := renderer.NewRaytracer(s, renderer.RenderConfig{
		FOV:        cfg.Render.FOV(),
		TileSize:   cfg.Render.TileSize,
		NumWorkers: cfg.Render.Workers,
	}, logger)

	fb := renderer.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	if !parallel {
		return fb, rt.Render(fb), nil
	}
	stats, err := rt.RenderParallel(context.Background(), fb)
	return fb, stats, err
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

func savePNG(filename string, fb *renderer.Framebuffer) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.Image()); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return file.Close()
}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/pkg/core"
	"github.com/df07/go-blockcast/pkg/loaders"
	"github.com/df07/go-blockcast/pkg/scene"
	"github.com/df07/go-blockcast/viewer/game"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	sceneName := flag.String("scene", "", "Scene name, overrides the config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}

	logger := core.NewDefaultLogger()
	s, err := scene.Create(cfg.Scene, cfg, loaders.NewTextureCache(), logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	// Escape ends the loop with ebiten.Termination, which RunGame reports as nil
	if err := ebiten.RunGame(game.New(s, cfg, logger)); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-blockcast/pkg/config"
	"github.com/df07/go-blockcast/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 0, "Port to serve on (default from config, 8080)")
	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *port == 0 {
		*port = cfg.Server.Port
	}

	webServer := server.NewServer(*port, cfg)

	log.Printf("Blockcast Web Server")
	log.Printf("Visit http://localhost:%d/api/render?scene=%s to render a frame", *port, cfg.Scene)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webServer.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Error starting server: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

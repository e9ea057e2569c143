// Command islesim generates an archipelago and runs the outbreak simulation
// headless, exposing the world over the HTTP API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/archipelago/internal/api"
	"github.com/talgya/archipelago/internal/engine"
	"github.com/talgya/archipelago/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		width      = flag.Int("width", 0, "grid width (overrides config)")
		height     = flag.Int("height", 0, "grid height (overrides config)")
		seed       = flag.String("seed", "", "world seed (overrides config)")
		randomSeed = flag.Bool("random-seed", false, "draw a fresh seed on every generation")
		port       = flag.Int("port", 8080, "HTTP API port")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := world.DefaultConfig()
	if *configPath != "" {
		loaded, err := world.LoadConfig(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *seed != "" {
		cfg.Seed = *seed
	}
	if *randomSeed {
		cfg.UseRandomSeed = true
	}

	sim, err := engine.NewSimulation(cfg)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := sim.Generate(); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	st := sim.Stats()
	fmt.Printf("\nArchipelago is live: %s land tiles across %d islands, %d zombies, %d civilians.\n",
		humanize.Comma(int64(st.LandTiles)), st.Islands, st.Zombies, st.Civilians)

	eng := engine.NewEngine()
	eng.OnTick = sim.Tick

	adminKey := os.Getenv("ISLESIM_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("ISLESIM_ADMIN_KEY not set, admin POST endpoints will be disabled")
	}
	apiServer := &api.Server{Sim: sim, Eng: eng, Port: *port, AdminKey: adminKey}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()
}

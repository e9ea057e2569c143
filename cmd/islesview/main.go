// Command islesview is the debug visualizer: it draws the grid, the
// placements, and the live agents, ticking the simulation from the frame
// loop. Left-click or R regenerates the world; Space pauses.
package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/talgya/archipelago/internal/agents"
	"github.com/talgya/archipelago/internal/engine"
	"github.com/talgya/archipelago/internal/render"
	"github.com/talgya/archipelago/internal/world"
)

var (
	zombieColor   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	civilianColor = color.RGBA{R: 235, G: 220, B: 120, A: 255}
	labColor      = color.RGBA{R: 240, G: 240, B: 255, A: 255}
	playerColor   = color.RGBA{R: 60, G: 160, B: 255, A: 255}
)

// Game adapts the simulation to the ebiten.Game interface.
type Game struct {
	sim   *engine.Simulation
	cfg   world.Config
	scale int

	terrain *ebiten.Image
	pixels  []byte
	epoch   uint64
	paused  bool
}

// NewGame constructs a viewer for the provided simulation.
func NewGame(sim *engine.Simulation, cfg world.Config, scale int) *Game {
	return &Game{
		sim:    sim,
		cfg:    cfg,
		scale:  scale,
		pixels: make([]byte, cfg.Width*cfg.Height*4),
	}
}

// Update handles input and advances the simulation by one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if err := g.sim.Regenerate(); err != nil {
			return err
		}
	}

	if !g.paused {
		g.sim.Tick(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw renders the terrain and every live entity.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	if snap.Grid == nil {
		return
	}

	if g.terrain == nil {
		g.terrain = ebiten.NewImage(snap.Grid.Width, snap.Grid.Height)
	}
	if snap.Epoch != g.epoch {
		render.GridRGBA(g.pixels, snap.Grid, snap.Heights)
		g.terrain.WritePixels(g.pixels)
		g.epoch = snap.Epoch
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.terrain, op)

	if snap.Placement.Lab != nil {
		g.drawMarker(screen, snap.Placement.Lab.Pos, 8, labColor)
	}
	if snap.Placement.Player != nil {
		g.drawMarker(screen, snap.Placement.Player.Pos, 6, playerColor)
	}
	for _, a := range snap.Agents {
		c := civilianColor
		if a.Kind == agents.KindZombie {
			c = zombieColor
		}
		g.drawMarker(screen, a.Pos, 4, c)
	}
}

// drawMarker maps a world-plane position back to screen pixels.
func (g *Game) drawMarker(screen *ebiten.Image, pos world.Vec2, size float32, c color.Color) {
	sx := (pos.X/g.cfg.CellSize + float64(g.cfg.Width)/2) * float64(g.scale)
	sy := (pos.Y/g.cfg.CellSize + float64(g.cfg.Height)/2) * float64(g.scale)
	vector.DrawFilledRect(screen, float32(sx)-size/2, float32(sy)-size/2, size, size, c, true)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width * g.scale, g.cfg.Height * g.scale
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		seed       = flag.String("seed", "", "world seed (overrides config)")
		randomSeed = flag.Bool("random-seed", false, "draw a fresh seed on every regeneration")
		scale      = flag.Int("scale", 8, "screen pixels per cell")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := world.DefaultConfig()
	if *configPath != "" {
		loaded, err := world.LoadConfig(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
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

	ebiten.SetWindowSize(cfg.Width**scale, cfg.Height**scale)
	ebiten.SetWindowTitle("archipelago")
	if err := ebiten.RunGame(NewGame(sim, cfg, *scale)); err != nil && err != ebiten.Termination {
		slog.Error("viewer exited", "error", err)
		os.Exit(1)
	}
}

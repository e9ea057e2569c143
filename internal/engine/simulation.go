// Simulation ties the generation pipeline to the per-tick agent state
// machines. All mutation happens under one mutex: the driver holds it for
// Tick and Regenerate, readers (API, viewer) hold it to take consistent
// snapshots between ticks.
package engine

import (
	"log/slog"
	"sync"

	"github.com/talgya/archipelago/internal/agents"
	"github.com/talgya/archipelago/internal/rng"
	"github.com/talgya/archipelago/internal/world"
)

// Stats summarizes the live world for logging and the status endpoint.
type Stats struct {
	Epoch       uint64 `json:"epoch"`
	Islands     int    `json:"islands"`
	LandTiles   int    `json:"land_tiles"`
	Zombies     int    `json:"zombies"`
	Civilians   int    `json:"civilians"`
	Trees       int    `json:"trees"`
	Conversions int    `json:"conversions"` // Within the current epoch
}

// Simulation owns the grid, the placement result, and the agent populations
// for one epoch. Regenerate atomically replaces all of it.
type Simulation struct {
	mu sync.Mutex

	cfg     world.Config
	seed    string // Seed of the current epoch (differs from cfg.Seed when randomized)
	grid    *world.Grid
	result  world.PlacementResult
	heights []float64

	zombies   []*agents.Agent
	civilians []*agents.Agent

	spawner *agents.Spawner
	wander  *rng.Stream

	epoch       uint64
	conversions int
}

// NewSimulation validates the configuration and returns an empty simulation.
// Call Generate before the first Tick.
func NewSimulation(cfg world.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulation{
		cfg:     cfg,
		spawner: agents.NewSpawner(),
	}, nil
}

// Spawner exposes the entity spawner so a frontend can attach its hooks
// before the first Generate.
func (s *Simulation) Spawner() *agents.Spawner { return s.spawner }

// Generate runs the full pipeline once and builds the agent populations.
// Atomic from the simulation's point of view: every prior agent is destroyed
// and every new entity constructed before the next tick observes anything.
func (s *Simulation) Generate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocked()
}

// Regenerate rebuilds the world. With UseRandomSeed set, every call draws a
// fresh seed; otherwise it reproduces the configured world exactly.
func (s *Simulation) Regenerate() error {
	return s.Generate()
}

func (s *Simulation) generateLocked() error {
	cfg := s.cfg
	if cfg.UseRandomSeed {
		cfg.Seed = rng.RandomSeed()
	}

	grid, result, err := world.Generate(cfg)
	if err != nil {
		return err
	}

	// Tear down the previous epoch before anything new becomes visible.
	for _, a := range s.zombies {
		s.spawner.Destroy(a)
	}
	for _, a := range s.civilians {
		s.spawner.Destroy(a)
	}
	s.zombies = s.zombies[:0]
	s.civilians = s.civilians[:0]
	s.spawner.Reset()

	s.seed = cfg.Seed
	s.grid = grid
	s.result = result
	s.heights = world.NewElevationField(cfg.Seed).Sample(grid)
	s.wander = rng.New(cfg.Seed)
	s.conversions = 0
	s.epoch++

	for _, seed := range result.Zombies {
		s.zombies = append(s.zombies, s.spawner.Spawn(agents.KindZombie, seed.Pos, seed.Island, cfg.ZombieSpeed))
	}
	for _, seed := range result.Civilians {
		s.civilians = append(s.civilians, s.spawner.Spawn(agents.KindCivilian, seed.Pos, seed.Island, cfg.CivilianSpeed))
	}

	slog.Info("epoch started",
		"epoch", s.epoch,
		"seed", s.seed,
		"zombies", len(s.zombies),
		"civilians", len(s.civilians),
	)
	return nil
}

// Tick advances every agent by dt seconds: zombies first, then civilians.
// A civilian converted this tick is excluded from the civilian pass, and a
// zombie spawned this tick waits for the next one.
func (s *Simulation) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		return
	}

	for _, z := range s.zombies[:len(s.zombies):len(s.zombies)] {
		s.tickZombie(z, dt)
	}
	for _, c := range s.civilians {
		s.tickCivilian(c, dt)
	}
}

func (s *Simulation) tickZombie(z *agents.Agent, dt float64) {
	// Zombies always turn to face the lab, whatever else they are doing.
	if s.result.Lab != nil {
		z.FaceToward(s.result.Lab.Pos, dt)
	}

	if prey := agents.Nearest(z.Pos, s.civilians, s.cfg.ChaseRange); prey != nil {
		z.State = agents.StateChase
		z.Target = prey.Pos // Re-targeted every tick: pursuit, not a stale waypoint
		if z.Pos.Dist(prey.Pos) <= agents.CatchRadius {
			s.convert(prey, z.Island)
		}
	} else {
		z.State = agents.StatePatrol
		if z.Arrived() {
			s.retarget(z)
		}
	}

	z.Step(dt)
}

func (s *Simulation) tickCivilian(c *agents.Agent, dt float64) {
	if threat := agents.Nearest(c.Pos, s.zombies, s.cfg.FleeDistance); threat != nil {
		c.State = agents.StateFlee
		// Continuous flight: project a fixed step directly away from the
		// nearest threat, recomputed every tick.
		if away := c.Pos.Sub(threat.Pos).Norm(); away.Len() > 0 {
			c.Target = c.Pos.Add(away.Scale(agents.FleeStep))
		}
	} else {
		c.State = agents.StateWander
		if c.Arrived() {
			s.retarget(c)
		}
	}

	c.Step(dt)
}

// convert removes a civilian and raises a zombie in its place, inheriting
// the chasing zombie's island assignment.
func (s *Simulation) convert(victim *agents.Agent, island int) {
	for i, c := range s.civilians {
		if c == victim {
			s.civilians = append(s.civilians[:i], s.civilians[i+1:]...)
			break
		}
	}
	s.spawner.Destroy(victim)

	z := s.spawner.Spawn(agents.KindZombie, victim.Pos, island, s.cfg.ZombieSpeed)
	s.zombies = append(s.zombies, z)
	s.conversions++
	slog.Debug("civilian converted", "civilian", victim.ID, "zombie", z.ID, "pos", victim.Pos)
}

// retarget picks a new wander target uniformly among the agent's island's
// current land cells. Agents with no island, or whose island has no valid
// cells, keep their last target rather than faulting.
func (s *Simulation) retarget(a *agents.Agent) {
	if a.Island < 0 || a.Island >= len(s.result.Islands) {
		return
	}
	cells := s.landCells(a.Island)
	if len(cells) == 0 {
		return
	}
	cell := cells[s.wander.Intn(len(cells))]
	a.Target = s.grid.WorldPos(cell, s.cfg.CellSize)
}

// landCells filters an island's cells against the live grid. The grid only
// changes on regeneration, which also rebuilds all agents, but the filter
// keeps a stale island list from ever steering an agent into water.
func (s *Simulation) landCells(island int) []world.Cell {
	var cells []world.Cell
	for _, c := range s.result.Islands[island].Cells {
		if s.grid.At(c.X, c.Y) == world.TileLand {
			cells = append(cells, c)
		}
	}
	return cells
}

// Stats returns a consistent summary of the current epoch.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{
		Epoch:       s.epoch,
		Islands:     len(s.result.Islands),
		Zombies:     len(s.zombies),
		Civilians:   len(s.civilians),
		Trees:       len(s.result.Trees),
		Conversions: s.conversions,
	}
	if s.grid != nil {
		st.LandTiles = s.grid.CountTiles(world.TileLand)
	}
	return st
}

// Seed returns the seed of the current epoch.
func (s *Simulation) Seed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Snapshot returns a consistent read-only view: the grid, heights, and
// agents are copied; the placement result is shared but never mutated after
// generation.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Seed:      s.seed,
		Epoch:     s.epoch,
		Placement: s.result,
	}
	if s.grid != nil {
		snap.Grid = s.grid.Clone()
		snap.Heights = append([]float64(nil), s.heights...)
	}
	for _, a := range s.zombies {
		cp := *a
		snap.Agents = append(snap.Agents, &cp)
	}
	for _, a := range s.civilians {
		cp := *a
		snap.Agents = append(snap.Agents, &cp)
	}
	return snap
}

// Snapshot is a read-only copy of the simulation state for renderers and
// the API.
type Snapshot struct {
	Seed      string
	Epoch     uint64
	Grid      *world.Grid
	Heights   []float64
	Placement world.PlacementResult
	Agents    []*agents.Agent
}

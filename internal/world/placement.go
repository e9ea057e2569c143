// Placement planning — assigns the lab, the player start, and the initial
// agent populations to qualifying islands using size- and safety-based
// heuristics.
package world

import (
	"log/slog"
	"math"

	"github.com/talgya/archipelago/internal/rng"
)

// Placement is a planned singleton entity: a grid cell plus its derived
// world position.
type Placement struct {
	Cell Cell `json:"cell"`
	Pos  Vec2 `json:"pos"`
}

// AgentSeed is a planned agent spawn. Island indexes into PlacementResult's
// Islands slice and stays valid until the next regeneration.
type AgentSeed struct {
	Cell   Cell `json:"cell"`
	Pos    Vec2 `json:"pos"`
	Island int  `json:"island"`
}

// Tree is a decorative placement with a random facing angle in [0, 360).
type Tree struct {
	Cell   Cell    `json:"cell"`
	Pos    Vec2    `json:"pos"`
	Facing float64 `json:"facing"`
}

// PlacementResult is the full output of the placement planner. A zero value
// with empty slices is the valid outcome for a map with no qualifying
// islands.
type PlacementResult struct {
	Islands   []Region    `json:"-"`
	LabIsland int         `json:"lab_island"` // -1 when no lab was placed
	Lab       *Placement  `json:"lab,omitempty"`
	Player    *Placement  `json:"player,omitempty"`
	Zombies   []AgentSeed `json:"zombies"`
	Civilians []AgentSeed `json:"civilians"`
	Trees     []Tree      `json:"trees"`
}

// Plan selects islands from the final land regions and assigns the lab,
// agent populations, player start, and tree decoration.
//
// Each stage draws from its own stream freshly seeded from the same seed
// string, so one stage's draw count never shifts another stage's results.
func Plan(g *Grid, landRegions []Region, cfg Config) PlacementResult {
	result := PlacementResult{LabIsland: -1}

	for _, r := range landRegions {
		if r.Size() >= cfg.LandThreshold {
			result.Islands = append(result.Islands, r)
		}
	}
	if len(result.Islands) == 0 {
		slog.Info("no qualifying islands, placement skipped")
		result.Trees = planTrees(g, cfg)
		return result
	}

	planLab(g, &result, cfg)
	planZombies(g, &result, cfg)
	planCivilians(g, &result, cfg)
	planPlayer(g, &result, cfg)
	result.Trees = planTrees(g, cfg)
	return result
}

// planLab puts the lab at the centroid of a random island, falling back to a
// random in-region cell when the centroid of a concave island is not land.
func planLab(g *Grid, result *PlacementResult, cfg Config) {
	stream := rng.New(cfg.Seed)
	idx := stream.Intn(len(result.Islands))
	island := &result.Islands[idx]

	cell := island.Centroid()
	if !g.InBounds(cell.X, cell.Y) || g.At(cell.X, cell.Y) != TileLand {
		cell = randomCell(island, stream)
	}

	result.LabIsland = idx
	result.Lab = &Placement{Cell: cell, Pos: g.WorldPos(cell, cfg.CellSize)}
}

// planZombies spawns a density-scaled count on every island, the lab's
// island included.
func planZombies(g *Grid, result *PlacementResult, cfg Config) {
	stream := rng.New(cfg.Seed)
	for i := range result.Islands {
		island := &result.Islands[i]
		count := int(math.Round(float64(island.Size()) * cfg.DensityFactor))
		if count < cfg.MinPerIsland {
			count = cfg.MinPerIsland
		}
		if count > cfg.MaxPerIsland {
			count = cfg.MaxPerIsland
		}
		for j := 0; j < count; j++ {
			cell := randomCell(island, stream)
			result.Zombies = append(result.Zombies, AgentSeed{
				Cell:   cell,
				Pos:    g.WorldPos(cell, cfg.CellSize),
				Island: i,
			})
		}
	}
}

func planCivilians(g *Grid, result *PlacementResult, cfg Config) {
	if cfg.CiviliansPerIsland <= 0 {
		return
	}
	stream := rng.New(cfg.Seed)
	for i := range result.Islands {
		island := &result.Islands[i]
		for j := 0; j < cfg.CiviliansPerIsland; j++ {
			cell := randomCell(island, stream)
			result.Civilians = append(result.Civilians, AgentSeed{
				Cell:   cell,
				Pos:    g.WorldPos(cell, cfg.CellSize),
				Island: i,
			})
		}
	}
}

// planPlayer starts the player on the island with the fewest zombies,
// excluding the lab's island. Ties keep the first island encountered. On a
// single-island map there is nowhere safe to start, so no player spawns.
func planPlayer(g *Grid, result *PlacementResult, cfg Config) {
	perIsland := make([]int, len(result.Islands))
	for _, z := range result.Zombies {
		perIsland[z.Island]++
	}

	best := -1
	for i := range result.Islands {
		if i == result.LabIsland {
			continue
		}
		if best < 0 || perIsland[i] < perIsland[best] {
			best = i
		}
	}
	if best < 0 {
		slog.Info("no island apart from the lab's, player not spawned")
		return
	}

	stream := rng.New(cfg.Seed)
	cell := randomCell(&result.Islands[best], stream)
	result.Player = &Placement{Cell: cell, Pos: g.WorldPos(cell, cfg.CellSize)}
}

// planTrees rolls every land cell independently against the spawn chance.
// Runs even when placement was skipped, as long as any land survived.
func planTrees(g *Grid, cfg Config) []Tree {
	if cfg.TreeSpawnChance <= 0 {
		return nil
	}
	stream := rng.New(cfg.Seed)
	var trees []Tree
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) != TileLand {
				continue
			}
			if stream.Float64() >= cfg.TreeSpawnChance {
				continue
			}
			cell := Cell{X: x, Y: y}
			trees = append(trees, Tree{
				Cell:   cell,
				Pos:    g.WorldPos(cell, cfg.CellSize),
				Facing: stream.Float64() * 360,
			})
		}
	}
	return trees
}

func randomCell(r *Region, stream *rng.Stream) Cell {
	return r.Cells[stream.Intn(len(r.Cells))]
}

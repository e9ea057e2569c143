// Map cleanup pipeline — border enforcement, land pruning, and lake filling.
// Runs between raw synthesis and placement planning.
package world

import "log/slog"

// Process cleans a freshly smoothed grid in place and returns the final land
// regions the placement planner consumes. Steps, in order:
//
//  1. Force every border cell to water.
//  2. Remove land regions smaller than landThreshold. The single largest
//     land region is exempt only when it is the sole land region, so a map
//     that generated any land keeps at least one landmass.
//  3. Fill enclosed water pockets smaller than waterThreshold. Regions that
//     touch the border are ocean and are never filled.
//  4. Recompute land regions over the cleaned grid.
func Process(g *Grid, landThreshold, waterThreshold int) []Region {
	forceWaterBorder(g)
	pruneSmallLand(g, landThreshold)
	fillSmallLakes(g, waterThreshold)
	return Regions(g, TileLand)
}

func forceWaterBorder(g *Grid) {
	for x := 0; x < g.Width; x++ {
		g.Set(x, 0, TileWater)
		g.Set(x, g.Height-1, TileWater)
	}
	for y := 0; y < g.Height; y++ {
		g.Set(0, y, TileWater)
		g.Set(g.Width-1, y, TileWater)
	}
}

func pruneSmallLand(g *Grid, threshold int) {
	regions := Regions(g, TileLand)
	largest := -1
	for i := range regions {
		if largest < 0 || regions[i].Size() > regions[largest].Size() {
			largest = i
		}
	}

	removed := 0
	for i := range regions {
		if regions[i].Size() >= threshold {
			continue
		}
		// Exempt the largest region only when it is the sole landmass;
		// pruning it would erase every land tile the generator produced.
		if i == largest && len(regions) == 1 {
			continue
		}
		for _, c := range regions[i].Cells {
			g.Set(c.X, c.Y, TileWater)
		}
		removed++
	}
	if removed > 0 {
		slog.Debug("pruned undersized land regions", "count", removed, "threshold", threshold)
	}
}

func fillSmallLakes(g *Grid, threshold int) {
	filled := 0
	for _, r := range Regions(g, TileWater) {
		if r.Size() >= threshold || r.TouchesBorder(g) {
			continue
		}
		for _, c := range r.Cells {
			g.Set(c.X, c.Y, TileLand)
		}
		filled++
	}
	if filled > 0 {
		slog.Debug("filled enclosed lakes", "count", filled, "threshold", threshold)
	}
}

// Generate runs the full pipeline once: validate, synthesize, smooth, clean,
// and plan placements. The returned grid is fully processed; the placement
// result is empty (but valid) when no region qualifies as an island.
func Generate(cfg Config) (*Grid, PlacementResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, PlacementResult{}, err
	}

	g := Populate(cfg.Width, cfg.Height, cfg.Seed, cfg.FillPercent)
	for i := 0; i < cfg.SmoothingIterations; i++ {
		g = Smooth(g)
	}
	final := Process(g, cfg.LandThreshold, cfg.WaterThreshold)

	result := Plan(g, final, cfg)
	slog.Info("world generated",
		"seed", cfg.Seed,
		"size", g.String(),
		"regions", len(final),
		"islands", len(result.Islands),
		"zombies", len(result.Zombies),
		"civilians", len(result.Civilians),
	)
	return g, result, nil
}

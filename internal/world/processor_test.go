package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessForcesWaterBorder(t *testing.T) {
	g := NewGrid(12, 9)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Set(x, y, TileLand)
		}
	}
	Process(g, 1, 1)

	for x := 0; x < g.Width; x++ {
		require.Equal(t, TileWater, g.At(x, 0))
		require.Equal(t, TileWater, g.At(x, g.Height-1))
	}
	for y := 0; y < g.Height; y++ {
		require.Equal(t, TileWater, g.At(0, y))
		require.Equal(t, TileWater, g.At(g.Width-1, y))
	}
}

func TestProcessPrunesSmallLand(t *testing.T) {
	g := gridFrom(
		"~~~~~~~~~~",
		"~####~~#~~",
		"~####~~#~~",
		"~####~~~~~",
		"~~~~~~~~~~",
	)
	final := Process(g, 10, 10)

	require.Len(t, final, 1)
	assert.Equal(t, 12, final[0].Size())
	// The 2-cell column is gone.
	assert.Equal(t, 12, g.CountTiles(TileLand))
}

func TestProcessExemptsSoleLandRegion(t *testing.T) {
	g := gridFrom(
		"~~~~~~",
		"~##~~~",
		"~##~~~",
		"~~~~~~",
	)
	final := Process(g, 10, 10)

	// Undersized, but the only landmass: pruning it would erase all land.
	require.Len(t, final, 1)
	assert.Equal(t, 4, final[0].Size())
}

func TestProcessRemovesAllWhenMultipleUndersized(t *testing.T) {
	g := gridFrom(
		"~~~~~~~~",
		"~##~~#~~",
		"~##~~#~~",
		"~~~~~#~~",
		"~~~~~~~~",
	)
	final := Process(g, 10, 10)

	// Two land regions, both undersized: the sole-region exemption does not
	// apply, even to the larger one.
	assert.Empty(t, final)
	assert.Equal(t, 0, g.CountTiles(TileLand))
}

func TestProcessFillsEnclosedLakes(t *testing.T) {
	g := gridFrom(
		"~~~~~~~",
		"~#####~",
		"~#~~~#~",
		"~#####~",
		"~~~~~~~",
	)
	Process(g, 1, 10)

	for x := 2; x <= 4; x++ {
		assert.Equal(t, TileLand, g.At(x, 2), "lake cell (%d,2) should be filled", x)
	}
}

func TestProcessNeverFillsOcean(t *testing.T) {
	g := gridFrom(
		"~~~~~~~",
		"~#####~",
		"~#~~~#~",
		"~#####~",
		"~~~~~~~",
	)
	// Ocean ring is 20 cells, lake is 3; threshold 30 covers both, but only
	// the enclosed lake may be filled.
	Process(g, 1, 30)

	assert.Equal(t, TileWater, g.At(0, 0))
	assert.Equal(t, TileWater, g.At(3, 0))
	assert.Equal(t, TileLand, g.At(3, 2))
}

func TestGenerateValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	_, _, err := Generate(cfg)
	require.ErrorIs(t, err, ErrBadDimensions)

	cfg = DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	cfg.LandThreshold = 100
	_, _, err = Generate(cfg)
	require.ErrorIs(t, err, ErrBadThreshold)

	cfg = DefaultConfig()
	cfg.FillPercent = 120
	_, _, err = Generate(cfg)
	require.ErrorIs(t, err, ErrBadFillPercent)

	cfg = DefaultConfig()
	cfg.MinPerIsland, cfg.MaxPerIsland = 5, 2
	_, _, err = Generate(cfg)
	require.ErrorIs(t, err, ErrBadAgentBounds)
}

func TestGenerateIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.Seed = "test"
	cfg.FillPercent = 50

	g1, r1, err := Generate(cfg)
	require.NoError(t, err)
	g2, r2, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, g1.Cells(), g2.Cells(), "land cells must be bit-identical across runs")
	assert.Equal(t, r1, r2, "placement must be identical across runs")
}

func TestGenerateBorderInvariant(t *testing.T) {
	for _, seed := range []string{"a", "b", "c", "test"} {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = 30, 24
		cfg.Seed = seed
		g, _, err := Generate(cfg)
		require.NoError(t, err)
		for x := 0; x < g.Width; x++ {
			require.Equal(t, TileWater, g.At(x, 0), "seed %q", seed)
			require.Equal(t, TileWater, g.At(x, g.Height-1), "seed %q", seed)
		}
		for y := 0; y < g.Height; y++ {
			require.Equal(t, TileWater, g.At(0, y), "seed %q", seed)
			require.Equal(t, TileWater, g.At(g.Width-1, y), "seed %q", seed)
		}
	}
}

func TestProcessSurvivability(t *testing.T) {
	// Pruning never erases a lone surviving landmass, whatever its size.
	for _, seed := range []string{"x", "y", "z", "w", "test"} {
		g := Populate(24, 24, seed, 50)
		for i := 0; i < 5; i++ {
			g = Smooth(g)
		}
		before := g.Clone()
		forceWaterBorder(before)

		if len(Regions(before, TileLand)) != 1 {
			continue
		}
		Process(g, 1000, 10)
		assert.Greater(t, g.CountTiles(TileLand), 0, "seed %q", seed)
	}
}

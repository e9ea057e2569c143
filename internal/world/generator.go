// Raw grid synthesis — seeded circular island stamping followed by
// cellular-automaton smoothing passes that knit the stamps into coherent
// coastlines.
package world

import (
	"math"

	"github.com/talgya/archipelago/internal/rng"
)

// Island seeding constants. Stamps stay at least two cells off the border so
// the smoothing and border passes cannot strand land on the map edge.
const (
	minIslandRadius = 2
	borderMargin    = 2
	cellsPerIsland  = 300
)

// Populate synthesizes the initial land/water grid. The stream is seeded
// from the seed string, so identical inputs produce identical grids.
//
// fillPercent in [0, 100] scales the island count between 1 and the area
// budget of one island per 300 cells.
func Populate(width, height int, seed string, fillPercent float64) *Grid {
	g := NewGrid(width, height)
	stream := rng.New(seed)

	maxIslands := width * height / cellsPerIsland
	if maxIslands < 1 {
		maxIslands = 1
	}
	numIslands := int(math.Round(lerp(1, float64(maxIslands), fillPercent/100)))
	if numIslands < 1 {
		numIslands = 1
	}
	if numIslands > maxIslands {
		numIslands = maxIslands
	}

	maxRadius := min(width, height) / 4
	// When several islands compete for the same area, shrink each stamp so
	// they do not merge into a single blob before smoothing.
	effectiveMax := maxRadius/numIslands + 2
	if effectiveMax < minIslandRadius+1 {
		effectiveMax = minIslandRadius + 1
	}

	for i := 0; i < numIslands; i++ {
		cx := stream.IntRange(borderMargin, width-borderMargin)
		cy := stream.IntRange(borderMargin, height-borderMargin)
		radius := stream.IntRange(minIslandRadius, effectiveMax+1)
		stampIsland(g, cx, cy, radius)
	}

	return g
}

// stampIsland fills all in-bounds cells within radius of (cx, cy) as land.
func stampIsland(g *Grid, cx, cy, radius int) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		y := cy + dy
		if y < 0 || y >= g.Height {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := cx + dx
			if x < 0 || x >= g.Width {
				continue
			}
			if dx*dx+dy*dy <= r2 {
				g.Set(x, y, TileLand)
			}
		}
	}
}

// Smooth applies one cellular-automaton pass and returns the result as a new
// grid. Each cell counts land among its 8 neighbors in the input snapshot:
// more than 4 becomes land, fewer than 4 becomes water, exactly 4 keeps its
// value. Out-of-bounds neighbors do not count.
func Smooth(g *Grid) *Grid {
	out := NewGrid(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			n := landNeighbors(g, x, y)
			switch {
			case n > 4:
				out.Set(x, y, TileLand)
			case n < 4:
				out.Set(x, y, TileWater)
			default:
				out.Set(x, y, g.At(x, y))
			}
		}
	}
	return out
}

func landNeighbors(g *Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if g.At(nx, ny) == TileLand {
				n++
			}
		}
	}
	return n
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Visual elevation field — layered simplex noise sampled per land cell so
// renderers can give the terrain relief. Purely cosmetic: the field never
// feeds back into land/water decisions, which keeps the core pipeline
// deterministic from the seed string alone.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/archipelago/internal/rng"
)

// Elevation noise shape. Low frequency gives each island one or two broad
// summits instead of per-cell jitter.
const (
	elevationOctaves     = 3
	elevationFrequency   = 0.09
	elevationPersistence = 0.5
)

// ElevationField samples normalized terrain heights for rendering.
type ElevationField struct {
	noise opensimplex.Noise
}

// NewElevationField builds a field seeded from the same seed string as the
// rest of the pipeline.
func NewElevationField(seed string) *ElevationField {
	return &ElevationField{noise: opensimplex.NewNormalized(rng.Hash(seed))}
}

// At returns the height at a cell in [0, 1].
func (f *ElevationField) At(x, y int) float64 {
	return octaveNoise(f.noise, float64(x), float64(y), elevationOctaves, elevationFrequency, elevationPersistence)
}

// Sample returns a per-cell height map for the grid in row-major order.
// Water cells are flat zero; land cells carry the noise height.
func (f *ElevationField) Sample(g *Grid) []float64 {
	heights := make([]float64, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) == TileLand {
				heights[y*g.Width+x] = f.At(x, y)
			}
		}
	}
	return heights
}

// octaveNoise layers multiple noise frequencies for natural-looking terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

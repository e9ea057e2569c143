package render

import "github.com/talgya/archipelago/internal/world"

// Height applied to a land cell with elevation 1.0, in world units.
const maxLandHeight = 2.0

// Vertex is one mesh vertex in world space. Y is up; X/Z span the grid
// plane, centered on the origin like world.Grid.WorldPos.
type Vertex struct {
	X, Y, Z float64
}

// Mesh is an indexed triangle mesh of the grid surface.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// BuildMesh produces a quad (two triangles) per cell, scaled by cellSize.
// Water quads sit at height zero; land quads are lifted by the elevation
// sample. Vertices are not shared between quads so per-cell flat shading
// stays crisp.
func BuildMesh(g *world.Grid, heights []float64, cellSize float64) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, g.Width*g.Height*4),
		Indices:  make([]uint32, 0, g.Width*g.Height*6),
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			h := 0.0
			if g.At(x, y) == world.TileLand {
				idx := y*g.Width + x
				if idx < len(heights) {
					h = heights[idx] * maxLandHeight
				}
			}

			center := g.WorldPos(world.Cell{X: x, Y: y}, cellSize)
			half := cellSize / 2
			base := uint32(len(m.Vertices))

			m.Vertices = append(m.Vertices,
				Vertex{center.X - half, h, center.Y - half},
				Vertex{center.X + half, h, center.Y - half},
				Vertex{center.X + half, h, center.Y + half},
				Vertex{center.X - half, h, center.Y + half},
			)
			m.Indices = append(m.Indices,
				base, base+1, base+2,
				base, base+2, base+3,
			)
		}
	}
	return m
}

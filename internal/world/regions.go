// Connected-region extraction via flood fill. Regions are transient analysis
// artifacts: they are recomputed whenever the grid changes and never outlive
// the grid they were computed from.
package world

// Region is a maximal 4-connected set of same-type tiles.
type Region struct {
	Tile  Tile
	Cells []Cell
}

// Size returns the number of cells in the region.
func (r *Region) Size() int { return len(r.Cells) }

// Centroid returns the integer-truncated mean of the region's coordinates.
// For concave regions the centroid may fall outside the region itself.
func (r *Region) Centroid() Cell {
	if len(r.Cells) == 0 {
		return Cell{}
	}
	sx, sy := 0, 0
	for _, c := range r.Cells {
		sx += c.X
		sy += c.Y
	}
	return Cell{X: sx / len(r.Cells), Y: sy / len(r.Cells)}
}

// TouchesBorder reports whether any cell of the region lies on the grid
// border. Water regions touching the border are ocean, not lakes.
func (r *Region) TouchesBorder(g *Grid) bool {
	for _, c := range r.Cells {
		if g.IsBorder(c.X, c.Y) {
			return true
		}
	}
	return false
}

// 4-neighbor offsets in a fixed order so flood fill is deterministic.
var cardinal = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// Regions partitions the grid's cells of the given tile type into maximal
// 4-connected regions. Cells are scanned row-major; each unvisited matching
// cell seeds a breadth-first fill. Every matching cell lands in exactly one
// region, singletons included. O(width × height).
func Regions(g *Grid, tile Tile) []Region {
	total := g.Width * g.Height
	seen := make([]bool, total)
	var regions []Region

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if seen[idx] || g.At(x, y) != tile {
				continue
			}

			seen[idx] = true
			queue := []Cell{{X: x, Y: y}}
			var cells []Cell

			for qi := 0; qi < len(queue); qi++ {
				c := queue[qi]
				cells = append(cells, c)
				for _, d := range cardinal {
					nx, ny := c.X+d[0], c.Y+d[1]
					if !g.InBounds(nx, ny) || g.At(nx, ny) != tile {
						continue
					}
					ni := ny*g.Width + nx
					if !seen[ni] {
						seen[ni] = true
						queue = append(queue, Cell{X: nx, Y: ny})
					}
				}
			}

			regions = append(regions, Region{Tile: tile, Cells: cells})
		}
	}
	return regions
}

// Package world provides the archipelago generation pipeline: seeded grid
// synthesis, cellular-automaton smoothing, connected-region analysis,
// land/water cleanup, and entity placement planning.
package world

import (
	"fmt"
	"math"
)

// Tile is the value of one grid cell.
type Tile uint8

const (
	TileWater Tile = iota
	TileLand
)

// Cell addresses one tile by column and row.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec2 is a position in the horizontal world plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Norm returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// MoveToward returns the point reached by moving from v toward target by at
// most maxDelta. It never overshoots the target.
func (v Vec2) MoveToward(target Vec2, maxDelta float64) Vec2 {
	d := target.Sub(v)
	l := d.Len()
	if l <= maxDelta || l == 0 {
		return target
	}
	return v.Add(d.Scale(maxDelta / l))
}

// Grid is a rectangular land/water tile map stored in row-major order.
// It is owned by the generation pipeline during synthesis and replaced
// wholesale on each regeneration, never partially mutated after publication.
type Grid struct {
	Width  int
	Height int
	cells  []Tile
}

// NewGrid allocates an all-water grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, cells: make([]Tile, width*height)}
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) Tile { return g.cells[y*g.Width+x] }

// Set writes the tile at (x, y).
func (g *Grid) Set(x, y int, t Tile) { g.cells[y*g.Width+x] = t }

// Cells exposes the backing slice for read-only consumers (renderers).
func (g *Grid) Cells() []Tile { return g.cells }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Width, g.Height)
	copy(c.cells, g.cells)
	return c
}

// CountTiles returns the number of cells holding the given tile.
func (g *Grid) CountTiles(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// IsBorder reports whether (x, y) lies on the outermost ring of the grid.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || x == g.Width-1 || y == 0 || y == g.Height-1
}

// WorldPos maps a cell to the world-plane position of its center, with the
// grid centered on the origin and scaled by cellSize.
func (g *Grid) WorldPos(c Cell, cellSize float64) Vec2 {
	return Vec2{
		X: (float64(c.X) - float64(g.Width)/2 + 0.5) * cellSize,
		Y: (float64(c.Y) - float64(g.Height)/2 + 0.5) * cellSize,
	}
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, land=%d)", g.Width, g.Height, g.CountTiles(TileLand))
}

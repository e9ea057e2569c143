// Package render turns finished grids into drawable artifacts: RGBA pixel
// buffers for the debug viewer and heightfield meshes for 3D consumers.
// Pure consumers of the simulation's output, no feedback into the core.
package render

import (
	"image/color"

	"github.com/talgya/archipelago/internal/world"
)

var (
	waterColor = color.RGBA{R: 24, G: 68, B: 120, A: 255}
	landColor  = color.RGBA{R: 76, G: 140, B: 66, A: 255}
)

// GridRGBA fills buf with one RGBA pixel per cell in row-major order. Land
// cells are shaded by the matching elevation sample when heights is
// non-empty. buf must hold width×height×4 bytes.
func GridRGBA(buf []byte, g *world.Grid, heights []float64) {
	for i, t := range g.Cells() {
		c := waterColor
		if t == world.TileLand {
			c = landColor
			if i < len(heights) {
				c = shade(landColor, heights[i])
			}
		}
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// shade brightens a color toward white by the height fraction.
func shade(c color.RGBA, h float64) color.RGBA {
	lift := 0.55 * h
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*lift),
		G: uint8(float64(c.G) + (255-float64(c.G))*lift),
		B: uint8(float64(c.B) + (255-float64(c.B))*lift),
		A: c.A,
	}
}

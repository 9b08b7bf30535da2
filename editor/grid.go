package editor

import (
	"math"

	"github.com/milk9111/tilewall/common"
	"github.com/milk9111/tilewall/tile"
)

// Grid is a fixed Cols x Rows lattice of tile-sized cells centered in the canvas.
type Grid struct {
	Cols    int
	Rows    int
	Cell    float64
	Spacing float64
}

func DefaultGrid() Grid {
	return Grid{Cols: 12, Rows: 10, Cell: tile.Size, Spacing: 24}
}

// Origin is the top-left of the first cell for a canvas of the given size.
func (g Grid) Origin(canvasW, canvasH float64) (float64, float64) {
	pitch := g.Cell + g.Spacing
	w := float64(g.Cols)*pitch - g.Spacing
	h := float64(g.Rows)*pitch - g.Spacing
	return (canvasW - w) / 2, (canvasH - h) / 2
}

// Snap moves (x, y) to the nearest cell origin, clamped to the grid.
func (g Grid) Snap(x, y, canvasW, canvasH float64) (float64, float64) {
	sx, sy := g.Origin(canvasW, canvasH)
	pitch := g.Cell + g.Spacing
	col := common.Clamp(math.Round((x-sx)/pitch), 0, float64(g.Cols-1))
	row := common.Clamp(math.Round((y-sy)/pitch), 0, float64(g.Rows-1))
	return sx + col*pitch, sy + row*pitch
}

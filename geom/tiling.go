package geom

// Cell is one square of a source partitioned by TileCoverage.
type Cell struct {
	Col, Row int
	Region   Rect
}

// Origin returns the screen position of the cell's square when the whole
// source is laid out starting at (ox, oy).
func (c Cell) Origin(ox, oy float64, size int) (float64, float64) {
	return ox + float64(c.Col*size), oy + float64(c.Row*size)
}

// TileCoverage partitions a width x height source into size x size cells in
// row-major order. Cells in the last row or column are clipped at the source
// edge, so the union covers the source exactly with no overlap.
func TileCoverage(width, height, size int) []Cell {
	if width <= 0 || height <= 0 || size <= 0 {
		return nil
	}

	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	cells := make([]Cell, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := col * size
			y := row * size
			cells = append(cells, Cell{
				Col: col,
				Row: row,
				Region: Rect{
					X:      float64(x),
					Y:      float64(y),
					Width:  float64(min(size, width-x)),
					Height: float64(min(size, height-y)),
				},
			})
		}
	}
	return cells
}

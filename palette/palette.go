// Package palette derives a small set of representative colors from a frame.
package palette

import (
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// NumSwatches is the fixed palette length.
const NumSwatches = 6

// Palette is ordered brightest first by HSV value.
type Palette []colorful.Color

// Default is the palette before any extraction: all black.
func Default() Palette {
	return make(Palette, NumSwatches)
}

// SortByValue orders p brightest first, keeping ties in place.
func SortByValue(p Palette) {
	slices.SortStableFunc(p, func(a, b colorful.Color) int {
		_, _, va := a.Hsv()
		_, _, vb := b.Hsv()
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		}
		return 0
	})
}

// Colors exposes the swatches as a plain slice for recoloring.
func (p Palette) Colors() []colorful.Color {
	return p
}

func (p Palette) Clone() Palette {
	return slices.Clone(p)
}

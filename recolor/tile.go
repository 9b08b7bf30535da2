package recolor

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Tile recolors region of src into scratch using palette slots c1 and c2.
// When either slot is outside the palette the source is returned untouched
// with ok false, so the caller draws the original pixels.
func Tile(scratch *image.RGBA, src image.Image, region image.Rectangle, swatches []colorful.Color, c1, c2 int) (image.Image, bool) {
	if c1 < 0 || c1 >= len(swatches) || c2 < 0 || c2 >= len(swatches) {
		return src, false
	}
	Apply(scratch, src, region, swatches[c1], swatches[c2])
	return scratch, true
}

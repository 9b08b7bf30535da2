// Package render composites tiles and the editing overlay onto the screen.
package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilewall/tile"
)

// Config is the draw-time state shared by every tile.
type Config struct {
	ShowGradient bool
	Gradient     *ebiten.Image
	TileSize     int
}

// NewConfig uploads gradient (or the built-in fade when nil).
func NewConfig(showGradient bool, gradient image.Image) Config {
	if gradient == nil {
		gradient = DefaultGradient(tile.Size)
	}
	return Config{
		ShowGradient: showGradient,
		Gradient:     ebiten.NewImageFromImage(gradient),
		TileSize:     tile.Size,
	}
}

// DefaultGradient fades from clear at the top to half-opaque black at the
// bottom.
func DefaultGradient(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		a := uint8(128 * y / max(size-1, 1))
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{A: a})
		}
	}
	return img
}

// LoadGradient decodes the overlay image at path.
func LoadGradient(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open gradient %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode gradient %s: %w", path, err)
	}
	return img, nil
}

package tile

import (
	"image"

	"github.com/milk9111/tilewall/geom"
)

// Size is the edge length of every on-screen tile square.
const Size = 80

type Kind int

const (
	Video Kind = iota
	Image
	Camera
)

var kindNames = [...]string{"video", "image", "camera"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Tile displays Region of source number Source (within the collection for
// Kind) inside a Size x Size square at (X+OffsetX, Y+OffsetY).
type Tile struct {
	Kind    Kind
	X, Y    float64
	OffsetX float64
	OffsetY float64
	Source  int
	Region  geom.Rect
	Path    string

	Primary    bool
	ColorInput bool
	Color1     int
	Color2     int

	scratch *image.RGBA
}

// New returns a tile of kind k placed at (x, y) with the default palette slots.
func New(k Kind, x, y float64, source int, region geom.Rect, path string) *Tile {
	return &Tile{
		Kind:   k,
		X:      x,
		Y:      y,
		Source: source,
		Region: region,
		Path:   path,
		Color1: 0,
		Color2: 1,
	}
}

// Adjust adds to the draw offset, leaving the stored position untouched.
func (t *Tile) Adjust(dx, dy float64) {
	t.OffsetX += dx
	t.OffsetY += dy
}

// Bounds is the on-screen square, offset included.
func (t *Tile) Bounds() geom.Rect {
	return geom.Rect{X: t.X + t.OffsetX, Y: t.Y + t.OffsetY, Width: Size, Height: Size}
}

func (t *Tile) Contains(x, y float64) bool {
	return t.Bounds().Contains(x, y)
}

// SetColorIndices sets both palette slots used by recoloring.
func (t *Tile) SetColorIndices(c1, c2 int) {
	t.Color1 = c1
	t.Color2 = c2
}

// Scratch returns the tile's own recolor buffer sized to w x h, reallocating
// only when the size changes.
func (t *Tile) Scratch(w, h int) *image.RGBA {
	if t.scratch == nil || t.scratch.Rect.Dx() != w || t.scratch.Rect.Dy() != h {
		t.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return t.scratch
}

// Clone copies every persisted field; the scratch buffer is not shared.
func (t *Tile) Clone() *Tile {
	c := *t
	c.scratch = nil
	return &c
}

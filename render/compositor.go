package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilewall/media"
	"github.com/milk9111/tilewall/recolor"
	"github.com/milk9111/tilewall/studio"
	"github.com/milk9111/tilewall/tile"
	"golang.org/x/image/colornames"
)

const (
	swatchSize = 30
	swatchGap  = 6
)

// Compositor owns the GPU textures mirroring source frames and recolored
// tile regions.
type Compositor struct {
	sources map[media.Source]*ebiten.Image
	tiles   map[*tile.Tile]*ebiten.Image
	staging map[media.Source]*image.RGBA
}

func NewCompositor() *Compositor {
	return &Compositor{
		sources: map[media.Source]*ebiten.Image{},
		tiles:   map[*tile.Tile]*ebiten.Image{},
		staging: map[media.Source]*image.RGBA{},
	}
}

// Draw renders every tile in flat order, so cameras land above images above
// videos, then the edit overlay when s is in edit mode.
func (c *Compositor) Draw(screen *ebiten.Image, s *studio.Studio, cfg Config) {
	screen.Fill(color.Black)
	c.upload(s)

	live := make(map[*tile.Tile]bool, s.Reg.Len())
	for _, t := range s.Reg.All() {
		live[t] = true
		c.drawTile(screen, s, t, cfg)
	}
	for t, img := range c.tiles {
		if !live[t] {
			img.Deallocate()
			delete(c.tiles, t)
		}
	}

	if s.EditMode {
		c.drawOverlay(screen, s)
	}
}

// upload copies each source's current frame to its texture once per draw.
func (c *Compositor) upload(s *studio.Studio) {
	seen := map[media.Source]bool{}
	for _, t := range s.Reg.All() {
		src := s.SourceOf(t)
		if src == nil || !src.IsLoaded() || seen[src] {
			continue
		}
		seen[src] = true
		frame := c.rgba(src)
		if frame == nil {
			continue
		}
		tex := c.sources[src]
		if tex == nil || tex.Bounds().Size() != frame.Rect.Size() {
			if tex != nil {
				tex.Deallocate()
			}
			tex = ebiten.NewImage(frame.Rect.Dx(), frame.Rect.Dy())
			c.sources[src] = tex
		}
		tex.WritePixels(frame.Pix)
	}
	for src, tex := range c.sources {
		if !seen[src] {
			tex.Deallocate()
			delete(c.sources, src)
			delete(c.staging, src)
		}
	}
}

// rgba returns the frame as a tightly packed RGBA buffer at the origin.
func (c *Compositor) rgba(src media.Source) *image.RGBA {
	frame := src.Frame()
	if frame == nil {
		return nil
	}
	if f, ok := frame.(*image.RGBA); ok && f.Rect.Min == (image.Point{}) && f.Stride == 4*f.Rect.Dx() {
		return f
	}
	b := frame.Bounds()
	buf := c.staging[src]
	if buf == nil || buf.Rect.Size() != b.Size() {
		buf = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		c.staging[src] = buf
	}
	draw.Draw(buf, buf.Rect, frame, b.Min, draw.Src)
	return buf
}

func (c *Compositor) drawTile(screen *ebiten.Image, s *studio.Studio, t *tile.Tile, cfg Config) {
	src := s.SourceOf(t)
	if src == nil || !src.IsLoaded() {
		return
	}
	tex := c.sources[src]
	if tex == nil {
		return
	}
	region := t.Region.Image().Intersect(tex.Bounds())
	if region.Empty() {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = TileGeoM(t, region, cfg.TileSize)
	op.Filter = ebiten.FilterLinear

	if img := c.recolored(s, t, src, region); img != nil {
		screen.DrawImage(img, op)
	} else {
		screen.DrawImage(tex.SubImage(region).(*ebiten.Image), op)
	}

	if cfg.ShowGradient && cfg.Gradient != nil {
		gop := &ebiten.DrawImageOptions{}
		gb := cfg.Gradient.Bounds()
		gop.GeoM.Scale(float64(cfg.TileSize)/float64(gb.Dx()), float64(cfg.TileSize)/float64(gb.Dy()))
		gop.GeoM.Translate(t.X+t.OffsetX, t.Y+t.OffsetY)
		screen.DrawImage(cfg.Gradient, gop)
	}
}

// recolored returns the tile's recolored region texture, or nil to draw the
// source pixels.
func (c *Compositor) recolored(s *studio.Studio, t *tile.Tile, src media.Source, region image.Rectangle) *ebiten.Image {
	if !t.ColorInput {
		return nil
	}
	frame := c.rgba(src)
	if frame == nil {
		return nil
	}
	scratch := t.Scratch(region.Dx(), region.Dy())
	if _, ok := recolor.Tile(scratch, frame, region, s.Palette, t.Color1, t.Color2); !ok {
		return nil
	}
	img := c.tiles[t]
	if img == nil || img.Bounds().Size() != region.Size() {
		if img != nil {
			img.Deallocate()
		}
		img = ebiten.NewImage(region.Dx(), region.Dy())
		c.tiles[t] = img
	}
	img.WritePixels(scratch.Pix)
	return img
}

// TileGeoM scales a source region onto the tile square at the tile's
// offset position.
func TileGeoM(t *tile.Tile, region image.Rectangle, size int) ebiten.GeoM {
	var g ebiten.GeoM
	if region.Dx() > 0 && region.Dy() > 0 {
		g.Scale(float64(size)/float64(region.Dx()), float64(size)/float64(region.Dy()))
	}
	g.Translate(t.X+t.OffsetX, t.Y+t.OffsetY)
	return g
}

// Label is the edit-mode caption for the tile at flat index i.
func Label(i int, t *tile.Tile) string {
	if t.Primary {
		return fmt.Sprintf("%d *", i)
	}
	return fmt.Sprint(i)
}

func (c *Compositor) drawOverlay(screen *ebiten.Image, s *studio.Studio) {
	for i, t := range s.Reg.All() {
		b := t.Bounds()
		ebitenutil.DebugPrintAt(screen, Label(i, t), int(b.X)+5, int(b.Y)+3)
		if !s.Editor.Sel.Contains(i) {
			continue
		}
		clr := colornames.Yellow
		if i == s.Editor.Sel.Index {
			clr = colornames.Red
		}
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 2, clr, false)
	}

	sw := screen.Bounds().Dx()
	for i, col := range s.Palette {
		x := sw - (len(s.Palette)-i)*(swatchSize+swatchGap)
		r, g, b := col.Clamped().RGB255()
		vector.FillRect(screen, float32(x), swatchGap, swatchSize, swatchSize, color.RGBA{R: r, G: g, B: b, A: 255}, false)
		vector.StrokeRect(screen, float32(x), swatchGap, swatchSize, swatchSize, 1, colornames.White, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(i), x+2, swatchGap+swatchSize+2)
	}

	ebitenutil.DebugPrintAt(screen, InfoText(s), 8, screen.Bounds().Dy()-96)
}

// InfoText summarizes the layout and the focused tile for the info panel.
func InfoText(s *studio.Studio) string {
	var b strings.Builder
	name, ok := s.Store.Current()
	if !ok {
		name = "(unsaved)"
	}
	fmt.Fprintf(&b, "Layout: %s\n", name)
	fmt.Fprintf(&b, "Tiles: %d  Undo: %d\n", s.Reg.Len(), s.Editor.History.Len())
	t := s.Reg.At(s.Editor.Sel.Index)
	if t == nil {
		b.WriteString("No tile selected\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Tile %d (%s #%d)\n", s.Editor.Sel.Index, t.Kind, t.Source)
	fmt.Fprintf(&b, "Position: %.0f, %.0f  Offset: %.0f, %.0f\n", t.X, t.Y, t.OffsetX, t.OffsetY)
	fmt.Fprintf(&b, "Source Region: %.0f, %.0f, %.0f, %.0f\n", t.Region.X, t.Region.Y, t.Region.Width, t.Region.Height)
	fmt.Fprintf(&b, "Color input: %v (%d, %d)", t.ColorInput, t.Color1, t.Color2)
	return b.String()
}

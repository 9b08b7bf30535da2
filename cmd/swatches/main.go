// Command swatches extracts a palette from an image or GIF, prints it, and
// optionally previews the frame beside its recolored version.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilewall/media"
	"github.com/milk9111/tilewall/palette"
	"github.com/milk9111/tilewall/recolor"
)

const (
	screenWidth  = 512
	screenHeight = 512
	swatchSize   = 32
)

type previewGame struct {
	src     media.Source
	video   media.Video
	ext     *palette.Extractor
	pal     palette.Palette
	c1, c2  int
	scratch *image.RGBA

	frame    int
	last     time.Time
	original *ebiten.Image
	tinted   *ebiten.Image
}

func (g *previewGame) Update() error {
	now := time.Now()
	if g.video != nil && !g.last.IsZero() {
		g.video.Update(now.Sub(g.last))
	}
	g.last = now

	frame := 0
	if g.video != nil {
		frame = g.video.CurrentFrame()
	}
	if g.original != nil && frame == g.frame {
		return nil
	}
	g.frame = frame

	img := g.src.Frame()
	if img == nil {
		return nil
	}
	g.pal = g.ext.Extract(img)
	if b := img.Bounds(); g.scratch == nil || g.scratch.Rect.Size() != b.Size() {
		g.scratch = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	out, ok := recolor.Tile(g.scratch, img, img.Bounds(), g.pal.Colors(), g.c1, g.c2)
	if !ok {
		out = img
	}
	g.original = ebiten.NewImageFromImage(img)
	g.tinted = ebiten.NewImageFromImage(out)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x10, 0x10, 0xff})
	half := float64(screenWidth) / 2
	for i, img := range []*ebiten.Image{g.original, g.tinted} {
		if img == nil {
			continue
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		scale := min(half/float64(w), float64(screenHeight-swatchSize*2)/float64(h))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(i)*half, 0)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)
	}

	y := float32(screenHeight - swatchSize - 8)
	for i, c := range g.pal {
		x := float32(8 + i*(swatchSize+4))
		r, gg, b := c.RGB255()
		vector.FillRect(screen, x, y, swatchSize, swatchSize, color.RGBA{r, gg, b, 0xff}, false)
		if i == g.c1 || i == g.c2 {
			vector.StrokeRect(screen, x, y, swatchSize, swatchSize, 2, color.White, false)
		}
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  colors %d/%d", g.ext.Method, g.c1, g.c2), 8, int(y)-16)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func open(path string) (media.Source, media.Video, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		v := media.NewGIFVideo()
		if err := v.Load(path); err != nil {
			return nil, nil, err
		}
		v.Play()
		v.SetSpeed(1)
		return v, v, nil
	}
	s := media.NewStill()
	if err := s.Load(path); err != nil {
		return nil, nil, err
	}
	return s, nil, nil
}

func main() {
	method := flag.String("method", "onepass", "clustering method (onepass, kmeans, dominant)")
	width := flag.Int("width", 64, "width frames are downsampled to before clustering")
	c1 := flag.Int("c1", 0, "swatch mapped to shadows")
	c2 := flag.Int("c2", 1, "swatch mapped to highlights")
	show := flag.Bool("show", false, "open a preview window")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: swatches [flags] <image|gif>")
	}

	m, err := palette.ParseMethod(*method)
	if err != nil {
		log.Fatal(err)
	}
	src, video, err := open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	ext := palette.NewExtractor(m, nil)
	ext.ProcessWidth = *width
	pal := ext.Extract(src.Frame())
	for i, c := range pal {
		fmt.Printf("%d %s\n", i, c.Hex())
	}
	if !*show {
		return
	}

	g := &previewGame{src: src, video: video, ext: ext, pal: pal, c1: *c1, c2: *c2, frame: -1}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("swatches " + filepath.Base(flag.Arg(0)))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

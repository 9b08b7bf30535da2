// Package recolor maps source pixels onto a two-color gradient by brightness.
package recolor

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Brightness is the perceptual luminance of an 8-bit RGB triple in [0,1].
func Brightness(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// Apply writes region of src into dst (at dst's origin) with every pixel's RGB
// replaced by the blend of c1 toward c2 at the pixel's brightness. Alpha is
// kept. region is clipped to src; dst must be at least region-sized. src is
// never modified.
func Apply(dst *image.RGBA, src image.Image, region image.Rectangle, c1, c2 colorful.Color) {
	region = region.Intersect(src.Bounds())
	if region.Empty() {
		return
	}
	w, h := region.Dx(), region.Dy()
	if db := dst.Rect.Size(); db.X < w || db.Y < h {
		w, h = min(w, db.X), min(h, db.Y)
	}

	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			si := rgba.PixOffset(region.Min.X, region.Min.Y+y)
			di := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
			for x := 0; x < w; x++ {
				p := rgba.Pix[si : si+4 : si+4]
				r, g, b := blend(c1, c2, p[0], p[1], p[2])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = p[3]
				si += 4
				di += 4
			}
		}
		return
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := color.NRGBAModel.Convert(src.At(region.Min.X+x, region.Min.Y+y)).(color.NRGBA)
			r, g, b := blend(c1, c2, n.R, n.G, n.B)
			di := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
			dst.Pix[di+0] = r
			dst.Pix[di+1] = g
			dst.Pix[di+2] = b
			dst.Pix[di+3] = n.A
		}
	}
}

// blend is c1 lerped toward c2 at the exact brightness of (r, g, b).
func blend(c1, c2 colorful.Color, r, g, b uint8) (uint8, uint8, uint8) {
	return c1.BlendRgb(c2, Brightness(r, g, b)).Clamped().RGB255()
}

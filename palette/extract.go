package palette

import (
	"fmt"
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"golang.org/x/image/draw"
)

type Method int

const (
	// MethodOnePass seeds centroids from shuffled samples and assigns every
	// sample once. It approximates k-means and is cheap enough per tick.
	MethodOnePass Method = iota
	MethodKMeans
	MethodDominant
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	case MethodDominant:
		return "dominant"
	default:
		return "onepass"
	}
}

// ParseMethod accepts the names produced by Method.String.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "onepass":
		return MethodOnePass, nil
	case "kmeans":
		return MethodKMeans, nil
	case "dominant":
		return MethodDominant, nil
	}
	return MethodOnePass, fmt.Errorf("palette: unknown method %q", s)
}

const DefaultProcessWidth = 64

type Extractor struct {
	Swatches     int
	ProcessWidth int
	Method       Method
	Rand         *rand.Rand
}

func NewExtractor(method Method, rnd *rand.Rand) *Extractor {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Extractor{
		Swatches:     NumSwatches,
		ProcessWidth: DefaultProcessWidth,
		Method:       method,
		Rand:         rnd,
	}
}

// Extract builds a fresh palette from frame. A nil or empty frame yields nil.
func (e *Extractor) Extract(frame image.Image) Palette {
	if frame == nil || frame.Bounds().Empty() {
		return nil
	}
	small := e.downsample(frame)

	var p Palette
	switch e.Method {
	case MethodKMeans:
		p = e.kmeans(small)
		if p == nil {
			log.Println("palette: kmeans failed, falling back to one pass")
			p = e.onePass(small)
		}
	case MethodDominant:
		p = e.dominant(small)
	default:
		p = e.onePass(small)
	}
	SortByValue(p)
	return p
}

func (e *Extractor) downsample(frame image.Image) *image.RGBA {
	b := frame.Bounds()
	w := e.ProcessWidth
	if w <= 0 {
		w = DefaultProcessWidth
	}
	h := max(int(float64(w)*float64(b.Dy())/float64(b.Dx())), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), frame, b, draw.Src, nil)
	return dst
}

// samples returns every pixel as normalized HSV coordinates.
func samples(img *image.RGBA) clusters.Observations {
	b := img.Bounds()
	out := make(clusters.Observations, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
			h, s, v := col.Hsv()
			out = append(out, clusters.Coordinates{h / 360, s, v})
		}
	}
	return out
}

func toColor(c clusters.Coordinates) colorful.Color {
	if len(c) < 3 {
		return colorful.Color{}
	}
	return colorful.Hsv(c[0]*360, c[1], c[2]).Clamped()
}

func (e *Extractor) swatchCount() int {
	if e.Swatches <= 0 {
		return NumSwatches
	}
	return e.Swatches
}

func (e *Extractor) onePass(img *image.RGBA) Palette {
	k := e.swatchCount()
	data := samples(img)

	seeds := make([]int, len(data))
	for i := range seeds {
		seeds[i] = i
	}
	e.Rand.Shuffle(len(seeds), func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] })

	cc := make(clusters.Clusters, k)
	for i := range cc {
		if i < len(seeds) {
			cc[i].Center = append(clusters.Coordinates(nil), data[seeds[i]].Coordinates()...)
		} else {
			cc[i].Center = clusters.Coordinates{0, 0, 0}
		}
	}

	for _, o := range data {
		n := cc.Nearest(o)
		cc[n].Append(o)
	}

	p := make(Palette, k)
	for i := range cc {
		if len(cc[i].Observations) == 0 {
			continue
		}
		cc[i].Recenter()
		p[i] = toColor(cc[i].Center)
	}
	return p
}

func (e *Extractor) kmeans(img *image.RGBA) Palette {
	k := e.swatchCount()
	data := samples(img)
	if len(data) < k {
		return nil
	}
	cc, err := kmeans.New().Partition(data, k)
	if err != nil {
		log.Printf("palette: kmeans: %v", err)
		return nil
	}
	p := make(Palette, k)
	for i := range cc {
		if i >= k || len(cc[i].Observations) == 0 {
			continue
		}
		p[i] = toColor(cc[i].Center)
	}
	return p
}

func (e *Extractor) dominant(img *image.RGBA) Palette {
	k := e.swatchCount()
	p := make(Palette, k)
	for i, c := range dominantcolor.FindWeight(img, k) {
		if i >= k {
			break
		}
		col, _ := colorful.MakeColor(c.RGBA)
		p[i] = col
	}
	return p
}

package palette

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func assertSorted(t *testing.T, p Palette) {
	t.Helper()
	if len(p) != NumSwatches {
		t.Fatalf("palette length = %d, want %d", len(p), NumSwatches)
	}
	for i := 1; i < len(p); i++ {
		_, _, prev := p[i-1].Hsv()
		_, _, cur := p[i].Hsv()
		if cur > prev+1e-9 {
			t.Fatalf("swatch %d value %v > swatch %d value %v", i, cur, i-1, prev)
		}
	}
}

func TestDefaultIsBlack(t *testing.T) {
	p := Default()
	if len(p) != NumSwatches {
		t.Fatalf("len = %d", len(p))
	}
	for i, c := range p {
		if c != (colorful.Color{}) {
			t.Fatalf("swatch %d = %v, want black", i, c)
		}
	}
}

func TestExtractOnePass(t *testing.T) {
	cases := []struct {
		name  string
		w, h  int
		paint func(*image.RGBA)
	}{
		{"solid", 128, 72, func(img *image.RGBA) {
			fill(img, img.Rect, color.RGBA{200, 40, 40, 255})
		}},
		{"halves", 128, 128, func(img *image.RGBA) {
			fill(img, image.Rect(0, 0, 64, 128), color.RGBA{250, 250, 250, 255})
			fill(img, image.Rect(64, 0, 128, 128), color.RGBA{10, 10, 120, 255})
		}},
		{"tall", 16, 400, func(img *image.RGBA) {
			for y := 0; y < 400; y++ {
				fill(img, image.Rect(0, y, 16, y+1), color.RGBA{uint8(y % 256), 100, 50, 255})
			}
		}},
		{"tiny", 1, 1, func(img *image.RGBA) {
			img.SetRGBA(0, 0, color.RGBA{0, 255, 0, 255})
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
			c.paint(img)
			e := NewExtractor(MethodOnePass, rand.New(rand.NewSource(1)))
			assertSorted(t, e.Extract(img))
		})
	}
}

func TestExtractSolidKeepsColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill(img, img.Rect, color.RGBA{255, 0, 0, 255})
	p := NewExtractor(MethodOnePass, rand.New(rand.NewSource(7))).Extract(img)
	r, g, b := p[0].RGB255()
	if r < 250 || g > 5 || b > 5 {
		t.Fatalf("brightest swatch = %d,%d,%d, want red", r, g, b)
	}
}

func TestExtractMethods(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 96, 64))
	fill(img, image.Rect(0, 0, 32, 64), color.RGBA{240, 200, 30, 255})
	fill(img, image.Rect(32, 0, 64, 64), color.RGBA{30, 160, 60, 255})
	fill(img, image.Rect(64, 0, 96, 64), color.RGBA{20, 20, 80, 255})

	for _, m := range []Method{MethodOnePass, MethodKMeans, MethodDominant} {
		t.Run(m.String(), func(t *testing.T) {
			e := NewExtractor(m, rand.New(rand.NewSource(3)))
			assertSorted(t, e.Extract(img))
		})
	}
}

func TestExtractNilFrame(t *testing.T) {
	if p := NewExtractor(MethodOnePass, nil).Extract(nil); p != nil {
		t.Fatalf("nil frame should yield nil palette")
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodOnePass, MethodKMeans, MethodDominant} {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMethod("median"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestTrigger(t *testing.T) {
	start := time.Unix(1000, 0)

	cases := []struct {
		name    string
		run     func(tr *Trigger) bool
		wantDue bool
	}{
		{"idle", func(tr *Trigger) bool {
			return tr.Check(3, true, start.Add(time.Second))
		}, false},
		{"warmup_frame", func(tr *Trigger) bool {
			tr.Check(19, true, start)
			return tr.Check(20, true, start)
		}, true},
		{"warmup_frame_once", func(tr *Trigger) bool {
			tr.Check(20, true, start)
			return tr.Check(20, true, start)
		}, false},
		{"interval", func(tr *Trigger) bool {
			return tr.Check(3, true, start.Add(5*time.Second+time.Millisecond))
		}, true},
		{"interval_not_exceeded", func(tr *Trigger) bool {
			return tr.Check(3, true, start.Add(5*time.Second))
		}, false},
		{"manual", func(tr *Trigger) bool {
			tr.Request()
			return tr.Check(3, true, start)
		}, true},
		{"no_primary", func(tr *Trigger) bool {
			tr.Request()
			return tr.Check(20, false, start.Add(time.Minute))
		}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewTrigger(start)
			if got := c.run(tr); got != c.wantDue {
				t.Fatalf("due = %v, want %v", got, c.wantDue)
			}
		})
	}
}

func TestTriggerManualSurvivesMissingPrimary(t *testing.T) {
	start := time.Unix(0, 0)
	tr := NewTrigger(start)
	tr.Request()
	tr.Check(0, false, start)
	if !tr.Check(0, true, start) {
		t.Fatalf("manual request should fire once a primary exists")
	}
	tr.Extracted(start)
	if tr.Check(0, true, start) {
		t.Fatalf("request should be consumed after extraction")
	}
}

package media

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"math"
	"os"
	"time"
)

const defaultFrameDelay = 100 * time.Millisecond

// GIFVideo plays an animated GIF as a looping video. Negative speeds play
// backwards.
type GIFVideo struct {
	frames  []*image.RGBA
	delays  []time.Duration
	total   time.Duration
	pos     time.Duration
	speed   float64
	playing bool
}

func NewGIFVideo() *GIFVideo {
	return &GIFVideo{speed: 1}
}

func (v *GIFVideo) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("media: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return fmt.Errorf("media: decode %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return fmt.Errorf("media: decode %s: no frames", path)
	}
	v.setGIF(g)
	return nil
}

func (v *GIFVideo) setGIF(g *gif.GIF) {
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	v.frames = v.frames[:0]
	v.delays = v.delays[:0]
	v.total = 0
	for i, p := range g.Image {
		var restore *image.RGBA
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			restore = image.NewRGBA(canvas.Rect)
			copy(restore.Pix, canvas.Pix)
		}
		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)

		frame := image.NewRGBA(canvas.Rect)
		copy(frame.Pix, canvas.Pix)
		v.frames = append(v.frames, frame)

		d := defaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			d = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		v.delays = append(v.delays, d)
		v.total += d

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				copy(canvas.Pix, restore.Pix)
			}
		}
	}
	v.pos = 0
}

// SetFrames installs pre-decoded frames with a uniform delay.
func (v *GIFVideo) SetFrames(frames []image.Image, delay time.Duration) {
	v.frames = v.frames[:0]
	v.delays = v.delays[:0]
	v.total = 0
	for _, f := range frames {
		v.frames = append(v.frames, toRGBA(f))
		v.delays = append(v.delays, delay)
		v.total += delay
	}
	v.pos = 0
}

func (v *GIFVideo) Frame() image.Image {
	if len(v.frames) == 0 {
		return nil
	}
	return v.frames[v.CurrentFrame()]
}

func (v *GIFVideo) Width() int {
	if len(v.frames) == 0 {
		return 0
	}
	return v.frames[0].Rect.Dx()
}

func (v *GIFVideo) Height() int {
	if len(v.frames) == 0 {
		return 0
	}
	return v.frames[0].Rect.Dy()
}

func (v *GIFVideo) IsLoaded() bool {
	return len(v.frames) > 0
}

func (v *GIFVideo) Play() {
	v.playing = true
}

func (v *GIFVideo) Playing() bool {
	return v.playing
}

func (v *GIFVideo) SetSpeed(speed float64) {
	v.speed = speed
}

func (v *GIFVideo) Speed() float64 {
	return v.speed
}

// Update advances the playhead by dt scaled by the speed, wrapping at both ends.
func (v *GIFVideo) Update(dt time.Duration) {
	if !v.playing || v.total <= 0 {
		return
	}
	step := time.Duration(math.Round(float64(dt) * v.speed))
	v.pos = (v.pos + step) % v.total
	if v.pos < 0 {
		v.pos += v.total
	}
}

func (v *GIFVideo) CurrentFrame() int {
	t := v.pos
	for i, d := range v.delays {
		if t < d {
			return i
		}
		t -= d
	}
	return len(v.delays) - 1
}

func (v *GIFVideo) FrameCount() int {
	return len(v.frames)
}

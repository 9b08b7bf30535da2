package media

import (
	"errors"
	"image"
	"time"
)

var ErrNotLoaded = errors.New("media: source not loaded")

// Source is anything that can supply a current frame of pixels.
type Source interface {
	Load(path string) error
	Frame() image.Image
	Width() int
	Height() int
	IsLoaded() bool
}

// Video is a Source with a playhead.
type Video interface {
	Source
	Play()
	Playing() bool
	SetSpeed(speed float64)
	Speed() float64
	Update(dt time.Duration)
	CurrentFrame() int
	FrameCount() int
}

// Camera is a Source fed by a capture device.
type Camera interface {
	Source
	Setup(width, height int) error
	Update(dt time.Duration)
	Device() string
}

// Factory builds empty sources for a Library. Tests substitute fakes.
type Factory struct {
	NewVideo  func() Video
	NewImage  func() Source
	NewCamera func() Camera
}

// DefaultFactory decodes GIF videos and still images from disk and
// synthesizes camera frames.
func DefaultFactory() Factory {
	return Factory{
		NewVideo:  func() Video { return NewGIFVideo() },
		NewImage:  func() Source { return NewStill() },
		NewCamera: func() Camera { return NewPatternCamera() },
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Still is a decoded still image.
type Still struct {
	img *image.RGBA
}

func NewStill() *Still {
	return &Still{}
}

func (s *Still) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("media: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("media: decode %s: %w", path, err)
	}
	s.img = toRGBA(img)
	return nil
}

// SetImage replaces the pixels directly.
func (s *Still) SetImage(img image.Image) {
	s.img = toRGBA(img)
}

func (s *Still) Frame() image.Image {
	if s.img == nil {
		return nil
	}
	return s.img
}

func (s *Still) Width() int {
	if s.img == nil {
		return 0
	}
	return s.img.Rect.Dx()
}

func (s *Still) Height() int {
	if s.img == nil {
		return 0
	}
	return s.img.Rect.Dy()
}

func (s *Still) IsLoaded() bool {
	return s.img != nil
}

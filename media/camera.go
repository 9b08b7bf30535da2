package media

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"time"
)

// CameraPrefix starts every camera device id, e.g. "camera:0".
const CameraPrefix = "camera:"

// CameraID formats the device id for capture device n.
func CameraID(n int) string {
	return CameraPrefix + strconv.Itoa(n)
}

// ParseCameraID extracts the device number from a camera device id.
func ParseCameraID(id string) (int, error) {
	if !strings.HasPrefix(id, CameraPrefix) {
		return 0, fmt.Errorf("media: camera id %q: missing %q prefix", id, CameraPrefix)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, CameraPrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("media: camera id %q: bad device number", id)
	}
	return n, nil
}

// PatternCamera stands in for a capture device by generating a moving
// test pattern. Device capture itself is supplied by the host platform.
type PatternCamera struct {
	device string
	seed   int
	img    *image.RGBA
	phase  float64
	width  int
	height int
}

func NewPatternCamera() *PatternCamera {
	return &PatternCamera{}
}

// Load binds the camera to a device id. Setup must follow before frames exist.
func (c *PatternCamera) Load(path string) error {
	n, err := ParseCameraID(path)
	if err != nil {
		return err
	}
	c.device = path
	c.seed = n
	return nil
}

func (c *PatternCamera) Setup(width, height int) error {
	if c.device == "" {
		return ErrNotLoaded
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("media: camera %s: bad size %dx%d", c.device, width, height)
	}
	c.width, c.height = width, height
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.paint()
	return nil
}

func (c *PatternCamera) Update(dt time.Duration) {
	if c.img == nil {
		return
	}
	c.phase += dt.Seconds()
	c.paint()
}

func (c *PatternCamera) paint() {
	shift := float64(c.seed) * 0.7
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			fx := float64(x) / float64(c.width)
			fy := float64(y) / float64(c.height)
			r := 0.5 + 0.5*math.Sin(2*math.Pi*(fx+c.phase*0.1)+shift)
			g := 0.5 + 0.5*math.Sin(2*math.Pi*(fy+c.phase*0.07)+shift*2)
			b := 0.5 + 0.5*math.Sin(2*math.Pi*(fx+fy+c.phase*0.05))
			i := c.img.PixOffset(x, y)
			c.img.Pix[i+0] = uint8(r * 255)
			c.img.Pix[i+1] = uint8(g * 255)
			c.img.Pix[i+2] = uint8(b * 255)
			c.img.Pix[i+3] = 0xff
		}
	}
}

func (c *PatternCamera) Frame() image.Image {
	if c.img == nil {
		return nil
	}
	return c.img
}

func (c *PatternCamera) Width() int  { return c.width }
func (c *PatternCamera) Height() int { return c.height }

func (c *PatternCamera) IsLoaded() bool {
	return c.img != nil
}

func (c *PatternCamera) Device() string {
	return c.device
}

package media

import (
	"fmt"
	"time"
)

// Library owns every opened source, one collection per kind. Tiles refer to
// sources by index into these collections.
type Library struct {
	factory Factory

	videos     []Video
	videoPaths []string
	images     []Source
	imagePaths []string
	cameras    []Camera

	CameraWidth  int
	CameraHeight int
}

func NewLibrary(factory Factory) *Library {
	return &Library{
		factory:      factory,
		CameraWidth:  512,
		CameraHeight: 512,
	}
}

// OpenVideo loads path, starts playback at speed 1 and returns its index.
// On failure nothing is added.
func (l *Library) OpenVideo(path string) (int, error) {
	v, err := l.loadVideo(path)
	if err != nil {
		return -1, err
	}
	l.videos = append(l.videos, v)
	l.videoPaths = append(l.videoPaths, path)
	return len(l.videos) - 1, nil
}

// ReplaceVideo swaps the video at index i for a freshly opened one.
func (l *Library) ReplaceVideo(i int, path string) error {
	if i < 0 || i >= len(l.videos) {
		return fmt.Errorf("media: replace video %d: out of range", i)
	}
	v, err := l.loadVideo(path)
	if err != nil {
		return err
	}
	v.SetSpeed(l.videos[i].Speed())
	l.videos[i] = v
	l.videoPaths[i] = path
	return nil
}

func (l *Library) loadVideo(path string) (Video, error) {
	v := l.factory.NewVideo()
	if err := v.Load(path); err != nil {
		return nil, err
	}
	if !v.IsLoaded() {
		return nil, fmt.Errorf("media: video %s: %w", path, ErrNotLoaded)
	}
	v.SetSpeed(1)
	v.Play()
	return v, nil
}

func (l *Library) OpenImage(path string) (int, error) {
	img := l.factory.NewImage()
	if err := img.Load(path); err != nil {
		return -1, err
	}
	if !img.IsLoaded() {
		return -1, fmt.Errorf("media: image %s: %w", path, ErrNotLoaded)
	}
	l.images = append(l.images, img)
	l.imagePaths = append(l.imagePaths, path)
	return len(l.images) - 1, nil
}

// OpenCamera binds and sets up the capture device named by id.
func (l *Library) OpenCamera(id string) (int, error) {
	c := l.factory.NewCamera()
	if err := c.Load(id); err != nil {
		return -1, err
	}
	if err := c.Setup(l.CameraWidth, l.CameraHeight); err != nil {
		return -1, fmt.Errorf("media: camera %s: %w", id, err)
	}
	l.cameras = append(l.cameras, c)
	return len(l.cameras) - 1, nil
}

// Reset drops every source.
func (l *Library) Reset() {
	l.videos = nil
	l.videoPaths = nil
	l.images = nil
	l.imagePaths = nil
	l.cameras = nil
}

// Update advances every video and camera.
func (l *Library) Update(dt time.Duration) {
	for _, v := range l.videos {
		v.Update(dt)
	}
	for _, c := range l.cameras {
		c.Update(dt)
	}
}

func (l *Library) Video(i int) Video {
	if i < 0 || i >= len(l.videos) {
		return nil
	}
	return l.videos[i]
}

func (l *Library) Image(i int) Source {
	if i < 0 || i >= len(l.images) {
		return nil
	}
	return l.images[i]
}

func (l *Library) Camera(i int) Camera {
	if i < 0 || i >= len(l.cameras) {
		return nil
	}
	return l.cameras[i]
}

func (l *Library) NumVideos() int  { return len(l.videos) }
func (l *Library) NumImages() int  { return len(l.images) }
func (l *Library) NumCameras() int { return len(l.cameras) }

func (l *Library) VideoPaths() []string {
	return append([]string(nil), l.videoPaths...)
}

func (l *Library) ImagePaths() []string {
	return append([]string(nil), l.imagePaths...)
}

func (l *Library) VideoPath(i int) string {
	if i < 0 || i >= len(l.videoPaths) {
		return ""
	}
	return l.videoPaths[i]
}

func (l *Library) ImagePath(i int) string {
	if i < 0 || i >= len(l.imagePaths) {
		return ""
	}
	return l.imagePaths[i]
}

func (l *Library) CameraID(i int) string {
	c := l.Camera(i)
	if c == nil {
		return ""
	}
	return c.Device()
}

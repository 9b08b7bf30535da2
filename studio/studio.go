// Package studio owns the running composition: sources, tiles, palette,
// editor and layout persistence, advanced one tick at a time.
package studio

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/tilewall/config"
	"github.com/milk9111/tilewall/control"
	"github.com/milk9111/tilewall/editor"
	"github.com/milk9111/tilewall/geom"
	"github.com/milk9111/tilewall/layout"
	"github.com/milk9111/tilewall/media"
	"github.com/milk9111/tilewall/palette"
	"github.com/milk9111/tilewall/playback"
	"github.com/milk9111/tilewall/tile"
)

type Studio struct {
	Cfg *config.Config

	Reg      *tile.Registry
	Lib      *media.Library
	Playback []playback.Setting
	Display  layout.Settings

	Palette   palette.Palette
	Extractor *palette.Extractor
	Trigger   *palette.Trigger

	Control   *control.Receiver
	Modulator *playback.Modulator

	Editor  *editor.Editor
	Store   *layout.Store
	Watcher *layout.Watcher

	EditMode bool
	Locked   bool

	CanvasW, CanvasH float64

	Now func() time.Time

	scheduler *Scheduler
	clipboard Clipboard
}

// New builds a studio from cfg. Sources are opened through factory.
func New(cfg *config.Config, factory media.Factory) (*Studio, error) {
	method, err := palette.ParseMethod(cfg.Palette.Method)
	if err != nil {
		return nil, err
	}

	s := &Studio{
		Cfg:       cfg,
		Reg:       tile.NewRegistry(),
		Lib:       media.NewLibrary(factory),
		Display:   layout.Settings{ShowGradient: cfg.Tiles.ShowGradient},
		Palette:   palette.Default(),
		Extractor: palette.NewExtractor(method, nil),
		Control:   control.NewReceiver(),
		Modulator: &playback.Modulator{},
		Store:     layout.NewStore(cfg.Layout.Dir),
		Locked:    cfg.Layout.Locked,
		CanvasW:   float64(cfg.Window.Width),
		CanvasH:   float64(cfg.Window.Height),
		Now:       time.Now,
		clipboard: systemClipboard{},
	}
	s.Lib.CameraWidth = cfg.Camera.Width
	s.Lib.CameraHeight = cfg.Camera.Height
	s.Extractor.ProcessWidth = cfg.Palette.ProcessWidth

	s.Trigger = palette.NewTrigger(s.Now())
	s.Trigger.WarmupFrame = cfg.Palette.WarmupFrame
	s.Trigger.Interval = cfg.Palette.Interval()

	src, err := cfg.PlaybackScript()
	if err != nil {
		return nil, err
	}
	if src, err = playback.ResolveScript(src); err != nil {
		return nil, err
	}
	if src != "" {
		script, err := playback.CompileScript(src)
		if err != nil {
			return nil, err
		}
		s.Modulator.Script = script
	}

	s.Editor = editor.New(s.Reg, cfg.Editor.UndoCapacity)
	s.Editor.AdjustStep = cfg.Editor.AdjustStep
	s.Editor.Grid.Cols = cfg.Editor.Grid.Cols
	s.Editor.Grid.Rows = cfg.Editor.Grid.Rows
	s.Editor.Grid.Spacing = cfg.Editor.Grid.Spacing
	s.Editor.OnChange = s.Save

	s.scheduler = NewScheduler(ControlSystem{}, PlaybackSystem{}, PaletteSystem{}, LayoutWatchSystem{})

	if err := s.Store.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads the named layout, or the first stored one when name is empty.
// An empty store is not an error.
func (s *Studio) Open(name string) error {
	if name != "" && !s.Store.Select(name) {
		return fmt.Errorf("studio: no layout named %q in %s", name, s.Store.Dir)
	}
	if _, ok := s.Store.Current(); !ok {
		return nil
	}
	return s.LoadSelected()
}

// Watch starts reloading the current layout when it changes on disk.
func (s *Studio) Watch() error {
	if err := os.MkdirAll(s.Store.Dir, 0755); err != nil {
		return fmt.Errorf("studio: create %s: %w", s.Store.Dir, err)
	}
	w, err := layout.NewWatcher(s.Store.Dir)
	if err != nil {
		return fmt.Errorf("studio: watch %s: %w", s.Store.Dir, err)
	}
	s.Watcher = w
	return nil
}

func (s *Studio) Close() error {
	if s.Watcher != nil {
		return s.Watcher.Close()
	}
	return nil
}

// Update runs one tick: control messages, playback, palette, layout reloads.
func (s *Studio) Update(dt time.Duration) {
	s.scheduler.Update(s, dt)
}

// PrimaryVideo returns the loaded video marked primary, or nil.
func (s *Studio) PrimaryVideo() media.Video {
	src, ok := s.Reg.PrimarySource()
	if !ok {
		return nil
	}
	v := s.Lib.Video(src)
	if v == nil || !v.IsLoaded() {
		return nil
	}
	return v
}

// SourceOf returns the source a tile draws from, or nil when it is missing.
func (s *Studio) SourceOf(t *tile.Tile) media.Source {
	switch t.Kind {
	case tile.Video:
		if v := s.Lib.Video(t.Source); v != nil {
			return v
		}
	case tile.Image:
		if img := s.Lib.Image(t.Source); img != nil {
			return img
		}
	case tile.Camera:
		if c := s.Lib.Camera(t.Source); c != nil {
			return c
		}
	}
	return nil
}

// addTiles covers a width x height source with tiles starting at the
// configured origin.
func (s *Studio) addTiles(kind tile.Kind, src, width, height int, path string) int {
	n := 0
	for _, c := range geom.TileCoverage(width, height, tile.Size) {
		x, y := c.Origin(s.Cfg.Tiles.OriginX, s.Cfg.Tiles.OriginY, tile.Size)
		s.Reg.Add(tile.New(kind, x, y, src, c.Region, path))
		n++
	}
	return n
}

// AddVideo opens path, tiles it and saves. On failure nothing changes.
func (s *Studio) AddVideo(path string) error {
	idx, err := s.Lib.OpenVideo(path)
	if err != nil {
		log.Printf("studio: add video: %v", err)
		return err
	}
	s.Playback = append(s.Playback, playback.Setting{})
	v := s.Lib.Video(idx)
	n := s.addTiles(tile.Video, idx, v.Width(), v.Height(), path)
	log.Printf("studio: added video %s as %d tiles", path, n)
	s.Save()
	return nil
}

func (s *Studio) AddImage(path string) error {
	idx, err := s.Lib.OpenImage(path)
	if err != nil {
		log.Printf("studio: add image: %v", err)
		return err
	}
	img := s.Lib.Image(idx)
	n := s.addTiles(tile.Image, idx, img.Width(), img.Height(), path)
	log.Printf("studio: added image %s as %d tiles", path, n)
	s.Save()
	return nil
}

// AddCamera opens the next capture device.
func (s *Studio) AddCamera() error {
	id := media.CameraID(s.Lib.NumCameras())
	idx, err := s.Lib.OpenCamera(id)
	if err != nil {
		log.Printf("studio: add camera: %v", err)
		return err
	}
	c := s.Lib.Camera(idx)
	n := s.addTiles(tile.Camera, idx, c.Width(), c.Height(), id)
	log.Printf("studio: added camera %s as %d tiles", id, n)
	s.Save()
	return nil
}

// ReplaceVideo swaps the video behind the video tile at index i for path;
// every tile showing that video follows.
func (s *Studio) ReplaceVideo(i int, path string) error {
	t := s.Reg.At(i)
	if t == nil || t.Kind != tile.Video {
		return fmt.Errorf("studio: replace video: tile %d is not a video tile", i)
	}
	if err := s.Lib.ReplaceVideo(t.Source, path); err != nil {
		log.Printf("studio: replace video: %v", err)
		return err
	}
	s.Reg.Repoint(tile.Video, t.Source, t.Source, path)
	s.Save()
	return nil
}

// SetPrimarySource makes video src the palette source and requests a new
// palette. -1 clears it.
func (s *Studio) SetPrimarySource(src int) {
	s.Reg.SetPrimarySource(src)
	s.Trigger.Request()
	s.Save()
}

// SetPrimaryFromSelection makes the focused tile's video primary.
func (s *Studio) SetPrimaryFromSelection() bool {
	t := s.Reg.At(s.Editor.Sel.Index)
	if t == nil || t.Kind != tile.Video {
		return false
	}
	s.SetPrimarySource(t.Source)
	return true
}

func (s *Studio) SetColorInput(on bool) {
	s.eachSelected(func(t *tile.Tile) { t.ColorInput = on })
}

func (s *Studio) SetColorIndices(c1, c2 int) {
	s.eachSelected(func(t *tile.Tile) { t.SetColorIndices(c1, c2) })
}

func (s *Studio) eachSelected(fn func(*tile.Tile)) {
	active := s.Editor.Sel.Active()
	for _, i := range active {
		if t := s.Reg.At(i); t != nil {
			fn(t)
		}
	}
	if len(active) > 0 {
		s.Save()
	}
}

// SetPlayback stores the playback setting for video src.
func (s *Studio) SetPlayback(src int, setting playback.Setting) error {
	if src < 0 || src >= s.Lib.NumVideos() {
		return fmt.Errorf("studio: set playback: no video %d", src)
	}
	for len(s.Playback) <= src {
		s.Playback = append(s.Playback, playback.Setting{})
	}
	s.Playback[src] = setting
	s.Save()
	return nil
}

// ToggleEditMode flips edit mode. Leaving it saves and clears the selection.
func (s *Studio) ToggleEditMode() {
	if s.Locked {
		return
	}
	s.EditMode = !s.EditMode
	if !s.EditMode {
		s.Save()
		s.Editor.Sel.Clear()
	}
}

// RequestPalette asks for a palette rebuild. Only honored in edit mode.
func (s *Studio) RequestPalette() bool {
	if !s.EditMode {
		return false
	}
	s.Trigger.Request()
	return true
}

func (s *Studio) SetShowGradient(on bool) {
	s.Display.ShowGradient = on
	s.Save()
}

// AlignToGrid snaps every tile to the editor grid centered in the canvas.
func (s *Studio) AlignToGrid() bool {
	return s.Editor.AlignToGrid(s.CanvasW, s.CanvasH)
}

// Delete removes the focused tile.
func (s *Studio) Delete() bool {
	_, ok := s.Editor.Delete()
	return ok
}

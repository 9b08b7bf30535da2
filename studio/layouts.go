package studio

import (
	"errors"
	"log"

	"github.com/milk9111/tilewall/layout"
	"github.com/milk9111/tilewall/tile"
)

// Document captures the current composition.
func (s *Studio) Document() *layout.Document {
	return layout.Save(s.Reg, s.Lib, s.Playback, s.Display)
}

// Save writes the composition to the selected layout, creating one when the
// store is empty. Failures are logged.
func (s *Studio) Save() {
	doc := s.Document()
	err := s.Store.SaveCurrent(doc)
	if errors.Is(err, layout.ErrNoLayout) {
		_, err = s.Store.SaveAsNew(doc)
	}
	if err != nil {
		log.Printf("studio: save: %v", err)
	}
}

// SaveAsNew writes the composition under a new timestamped name and selects it.
func (s *Studio) SaveAsNew() (string, error) {
	return s.Store.SaveAsNew(s.Document())
}

// NewLayout drops every source and tile and starts a new empty layout.
func (s *Studio) NewLayout() (string, error) {
	s.Lib.Reset()
	s.Playback = nil
	s.setRegistry(tile.NewRegistry())
	return s.Store.SaveAsNew(s.Document())
}

// NextLayout selects and loads the following stored layout.
func (s *Studio) NextLayout() error {
	if _, ok := s.Store.Next(); !ok {
		return layout.ErrNoLayout
	}
	return s.LoadSelected()
}

func (s *Studio) PreviousLayout() error {
	if _, ok := s.Store.Prev(); !ok {
		return layout.ErrNoLayout
	}
	return s.LoadSelected()
}

// LoadSelected replaces the composition with the selected layout. Sources or
// tiles that cannot be restored are logged and skipped.
func (s *Studio) LoadSelected() error {
	doc, err := s.Store.ReadCurrent()
	if err != nil {
		return err
	}
	s.Apply(doc)
	return nil
}

// Apply replaces the composition with doc and returns the problems skipped.
func (s *Studio) Apply(doc *layout.Document) []error {
	loaded, errs := layout.Load(doc, s.Lib)
	s.Playback = loaded.Playback
	s.Display = loaded.Display
	s.setRegistry(loaded.Registry)
	s.Trigger.Request()
	name, _ := s.Store.Current()
	log.Printf("studio: loaded %q: %d tiles, %d videos, %d images, %d cameras, %d skipped",
		name, s.Reg.Len(), s.Lib.NumVideos(), s.Lib.NumImages(), s.Lib.NumCameras(), len(errs))
	return errs
}

func (s *Studio) setRegistry(reg *tile.Registry) {
	s.Reg = reg
	s.Editor.Reset(reg)
}

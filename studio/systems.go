package studio

import (
	"log"
	"time"
)

// ControlSystem applies control messages queued since the previous tick.
type ControlSystem struct{}

func (ControlSystem) Update(s *Studio, _ time.Duration) {
	s.Control.Drain()
}

// PlaybackSystem sets video speeds from their playback settings, then
// advances every video and camera.
type PlaybackSystem struct{}

func (PlaybackSystem) Update(s *Studio, dt time.Duration) {
	s.Modulator.Apply(s.Lib, s.Playback, s.Control)
	s.Lib.Update(dt)
}

// PaletteSystem rebuilds the palette from the primary video when the trigger
// fires.
type PaletteSystem struct{}

func (PaletteSystem) Update(s *Studio, _ time.Duration) {
	now := s.Now()
	v := s.PrimaryVideo()
	frame := -1
	if v != nil {
		frame = v.CurrentFrame()
	}
	if !s.Trigger.Check(frame, v != nil, now) {
		return
	}
	if p := s.Extractor.Extract(v.Frame()); p != nil {
		s.Palette = p
	}
	s.Trigger.Extracted(now)
}

// LayoutWatchSystem reloads the current layout when another program edits it.
type LayoutWatchSystem struct{}

func (LayoutWatchSystem) Update(s *Studio, _ time.Duration) {
	if s.Watcher == nil {
		return
	}
	for _, err := range s.Watcher.PollErrors() {
		log.Printf("studio: layout watch: %v", err)
	}
	changed := s.Watcher.Poll()
	if len(changed) == 0 {
		return
	}
	if err := s.Store.Refresh(); err != nil {
		log.Printf("studio: %v", err)
	}
	current, ok := s.Store.Current()
	if !ok {
		return
	}
	for _, path := range changed {
		name, ok := s.Store.NameOf(path)
		if !ok || name != current || !s.Store.ChangedOnDisk(name) {
			continue
		}
		log.Printf("studio: %s changed on disk, reloading", name)
		if err := s.LoadSelected(); err != nil {
			log.Printf("studio: reload %s: %v", name, err)
		}
		return
	}
}

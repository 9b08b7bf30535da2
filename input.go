package main

import (
	"log"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilewall/editor"
	"github.com/milk9111/tilewall/palette"
	"github.com/milk9111/tilewall/playback"
	"github.com/milk9111/tilewall/studio"
	"github.com/milk9111/tilewall/tile"
)

// Input maps keyboard and mouse events onto studio operations.
type Input struct {
	dragging bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update(s *studio.Studio) {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s.ToggleEditMode()
	}

	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	if alt && inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		if err := s.PreviousLayout(); err != nil {
			log.Printf("previous layout: %v", err)
		}
		return
	}
	if alt && inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		if err := s.NextLayout(); err != nil {
			log.Printf("next layout: %v", err)
		}
		return
	}

	if !s.EditMode {
		i.dragging = false
		return
	}

	i.updateMouse(s, editor.Mods{Shift: shift, Alt: alt})
	if i.dragging {
		return
	}

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		s.Editor.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if name, err := s.SaveAsNew(); err != nil {
			log.Printf("save as new: %v", err)
		} else {
			log.Printf("saved layout %s", name)
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		if err := s.CopyLayout(); err != nil {
			log.Printf("copy layout: %v", err)
		}
	case ctrl:
	default:
		i.updateKeys(s, shift)
	}
}

func (i *Input) updateMouse(s *studio.Studio, mods editor.Mods) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if ebuiinput.UIHovered {
			return
		}
		s.Editor.Press(x, y, mods)
		i.dragging = s.Editor.Dragging()
	case i.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.Editor.Drag(x, y)
	case i.dragging:
		s.Editor.Release()
		i.dragging = false
	}
}

func (i *Input) updateKeys(s *studio.Studio, shift bool) {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.Editor.SelectNext(shift)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.Editor.SelectPrev(shift)
	}

	dx, dy := 0.0, 0.0
	if repeating(ebiten.KeyA) {
		dx--
	}
	if repeating(ebiten.KeyD) {
		dx++
	}
	if repeating(ebiten.KeyW) {
		dy--
	}
	if repeating(ebiten.KeyS) {
		dy++
	}
	if dx != 0 || dy != 0 {
		if shift {
			s.Editor.AdjustOffset(dx, dy)
		} else {
			s.Editor.Nudge(dx, dy)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		s.Delete()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyY) {
		s.AlignToGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.RequestPalette()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.SetPrimaryFromSelection()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if name, err := s.NewLayout(); err != nil {
			log.Printf("new layout: %v", err)
		} else {
			log.Printf("created layout %s", name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.SetShowGradient(!s.Display.ShowGradient)
	}

	focused := s.Reg.At(s.Editor.Sel.Index)
	if focused == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		s.SetColorInput(!focused.ColorInput)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		s.SetColorIndices((focused.Color1+1)%palette.NumSwatches, focused.Color2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.SetColorIndices(focused.Color1, (focused.Color2+1)%palette.NumSwatches)
	}
	if focused.Kind != tile.Video {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeyO) {
		var setting playback.Setting
		if focused.Source < len(s.Playback) {
			setting = s.Playback[focused.Source]
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			setting.Mode = (setting.Mode + 1) % 2
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			setting.Input = (setting.Input + 1) % 3
		}
		if err := s.SetPlayback(focused.Source, setting); err != nil {
			log.Printf("playback: %v", err)
		}
	}
}

// repeating reports a key press plus the OS-style auto repeat while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%4 == 0)
}

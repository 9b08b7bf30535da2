// Package editor implements tile selection, dragging, nudging, grid
// alignment and undo over a tile registry.
package editor

import (
	"github.com/milk9111/tilewall/tile"
)

const DefaultAdjustStep = 1.0

type dragStart struct {
	tile *tile.Tile
	idx  int
	x, y float64
}

// Editor applies interactive edits to Reg. OnChange runs after every edit that
// should be persisted.
type Editor struct {
	Reg        *tile.Registry
	Sel        Selection
	History    *History
	Grid       Grid
	AdjustStep float64
	OnChange   func()

	dragging       bool
	pressX, pressY float64
	starts         []dragStart
}

func New(reg *tile.Registry, undoCapacity int) *Editor {
	return &Editor{
		Reg:        reg,
		Sel:        NewSelection(),
		History:    NewHistory(undoCapacity),
		Grid:       DefaultGrid(),
		AdjustStep: DefaultAdjustStep,
	}
}

// Reset drops selection, drag and undo state, e.g. after a layout load.
func (e *Editor) Reset(reg *tile.Registry) {
	e.Reg = reg
	e.Sel.Clear()
	e.History.Clear()
	e.dragging = false
	e.starts = nil
}

func (e *Editor) changed() {
	if e.OnChange != nil {
		e.OnChange()
	}
}

// HitTest returns the flat index of the topmost tile containing (x, y), or -1.
// Cameras draw above images above videos, and later tiles above earlier ones
// within a kind, which is reverse flat order.
func (e *Editor) HitTest(x, y float64) int {
	tiles := e.Reg.All()
	for i := len(tiles) - 1; i >= 0; i-- {
		if tiles[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// Press resolves a click at (x, y) into a selection change and starts a drag
// when the clicked tile ends up selected.
func (e *Editor) Press(x, y float64, mods Mods) {
	e.dragging = false
	e.starts = nil

	hit := e.HitTest(x, y)
	if hit < 0 {
		if !mods.Alt {
			e.Sel.Clear()
		}
		return
	}

	switch {
	case mods.Alt && mods.Shift:
		all := make([]int, e.Reg.Len())
		for i := range all {
			all[i] = i
		}
		e.Sel.group(hit, all)
	case mods.Shift:
		e.Sel.group(hit, e.Reg.SameSource(hit))
	case mods.Alt:
		e.Sel.toggle(hit)
	default:
		e.Sel.single(hit)
	}

	if !e.Sel.Contains(hit) {
		return
	}
	e.dragging = true
	e.pressX, e.pressY = x, y
	for _, i := range e.Sel.Active() {
		t := e.Reg.At(i)
		if t == nil {
			continue
		}
		e.starts = append(e.starts, dragStart{tile: t, idx: i, x: t.X, y: t.Y})
	}
}

// Drag moves every dragged tile by the pointer delta since Press, measured
// from its position at press time.
func (e *Editor) Drag(x, y float64) {
	if !e.dragging {
		return
	}
	dx, dy := x-e.pressX, y-e.pressY
	for _, s := range e.starts {
		s.tile.X = s.x + dx
		s.tile.Y = s.y + dy
	}
}

// Release ends a drag, recording one undo action covering the tiles that
// moved. It reports whether anything moved.
func (e *Editor) Release() bool {
	if !e.dragging {
		return false
	}
	e.dragging = false
	var moves []Move
	for _, s := range e.starts {
		if s.tile.X == s.x && s.tile.Y == s.y {
			continue
		}
		moves = append(moves, Move{
			Tile: s.tile, Index: s.idx,
			OldX: s.x, OldY: s.y,
			NewX: s.tile.X, NewY: s.tile.Y,
		})
	}
	e.starts = nil
	if len(moves) == 0 {
		return false
	}
	e.History.Record(Action{Moves: moves, Group: len(moves) > 1})
	e.changed()
	return true
}

func (e *Editor) Dragging() bool {
	return e.dragging
}

// Nudge moves the active tiles by (dx, dy) steps of AdjustStep.
func (e *Editor) Nudge(dx, dy float64) bool {
	active := e.Sel.Active()
	if len(active) == 0 {
		return false
	}
	var moves []Move
	for _, i := range active {
		t := e.Reg.At(i)
		if t == nil {
			continue
		}
		m := Move{Tile: t, Index: i, OldX: t.X, OldY: t.Y}
		t.X += dx * e.AdjustStep
		t.Y += dy * e.AdjustStep
		m.NewX, m.NewY = t.X, t.Y
		moves = append(moves, m)
	}
	e.History.Record(Action{Moves: moves, Group: len(moves) > 1})
	e.changed()
	return len(moves) > 0
}

// AdjustOffset shifts the draw offset of the active tiles. Offsets are not
// part of undo.
func (e *Editor) AdjustOffset(dx, dy float64) bool {
	active := e.Sel.Active()
	for _, i := range active {
		if t := e.Reg.At(i); t != nil {
			t.Adjust(dx*e.AdjustStep, dy*e.AdjustStep)
		}
	}
	if len(active) == 0 {
		return false
	}
	e.changed()
	return true
}

// Delete removes the focused tile and returns it.
func (e *Editor) Delete() (*tile.Tile, bool) {
	i := e.Sel.Index
	t, ok := e.Reg.Remove(i)
	if !ok {
		return nil, false
	}
	e.Sel.removed(i)
	e.changed()
	return t, true
}

// AlignToGrid snaps every tile to the grid for the given canvas size as a
// single undoable action.
func (e *Editor) AlignToGrid(canvasW, canvasH float64) bool {
	var moves []Move
	for i, t := range e.Reg.All() {
		x, y := e.Grid.Snap(t.X, t.Y, canvasW, canvasH)
		if x == t.X && y == t.Y {
			continue
		}
		moves = append(moves, Move{Tile: t, Index: i, OldX: t.X, OldY: t.Y, NewX: x, NewY: y})
		t.X, t.Y = x, y
	}
	if len(moves) == 0 {
		return false
	}
	e.History.Record(Action{Moves: moves, Group: true})
	e.changed()
	return true
}

// Undo reverts the newest recorded action.
func (e *Editor) Undo() bool {
	if !e.History.Undo(e.Reg) {
		return false
	}
	e.changed()
	return true
}

// SelectNext focuses the following tile, wrapping. The group is dropped
// unless keepGroup is set.
func (e *Editor) SelectNext(keepGroup bool) {
	e.step(1, keepGroup)
}

func (e *Editor) SelectPrev(keepGroup bool) {
	e.step(-1, keepGroup)
}

func (e *Editor) step(d int, keepGroup bool) {
	n := e.Reg.Len()
	if n == 0 {
		e.Sel.Clear()
		return
	}
	next := 0
	if e.Sel.Index >= 0 {
		next = ((e.Sel.Index+d)%n + n) % n
	} else if d < 0 {
		next = n - 1
	}
	if keepGroup && e.Sel.Group {
		e.Sel.Index = next
		return
	}
	e.Sel.single(next)
}

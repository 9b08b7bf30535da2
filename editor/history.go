package editor

import "github.com/milk9111/tilewall/tile"

const DefaultUndoCapacity = 20

// Move records one tile's position before and after an edit. Tile is the
// identity used on undo; Index is the flat index at record time.
type Move struct {
	Tile       *tile.Tile
	Index      int
	OldX, OldY float64
	NewX, NewY float64
}

// Action is one undoable edit, possibly spanning several tiles.
type Action struct {
	Moves []Move
	Group bool
}

// History is a bounded most-recent-first undo stack. There is no redo.
type History struct {
	Capacity int
	actions  []Action
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultUndoCapacity
	}
	return &History{Capacity: capacity}
}

// Record pushes a as the newest action, dropping the oldest past capacity.
func (h *History) Record(a Action) {
	if len(a.Moves) == 0 {
		return
	}
	h.actions = append([]Action{a}, h.actions...)
	if len(h.actions) > h.Capacity {
		h.actions = h.actions[:h.Capacity]
	}
}

// Undo reverts the newest action. Tiles no longer in reg are skipped.
// It reports whether an action was popped.
func (h *History) Undo(reg *tile.Registry) bool {
	if len(h.actions) == 0 {
		return false
	}
	a := h.actions[0]
	h.actions = h.actions[1:]
	for _, m := range a.Moves {
		if m.Tile == nil || reg.IndexOf(m.Tile) < 0 {
			continue
		}
		m.Tile.X = m.OldX
		m.Tile.Y = m.OldY
	}
	return true
}

func (h *History) Len() int {
	return len(h.actions)
}

// Peek returns the newest action without removing it.
func (h *History) Peek() (Action, bool) {
	if len(h.actions) == 0 {
		return Action{}, false
	}
	return h.actions[0], true
}

func (h *History) Clear() {
	h.actions = nil
}

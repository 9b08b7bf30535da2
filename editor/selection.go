package editor

import "slices"

// Mods are the modifier keys held during a click.
type Mods struct {
	Shift bool
	Alt   bool
}

// Selection tracks the focused tile and, when Group is set, a multi-tile set.
// All indices are flat registry indices.
type Selection struct {
	Index int
	Set   []int
	Group bool
}

func NewSelection() Selection {
	return Selection{Index: -1}
}

func (s *Selection) Clear() {
	s.Index = -1
	s.Set = nil
	s.Group = false
}

// Active returns the indices an operation should act on.
func (s *Selection) Active() []int {
	if s.Group {
		return slices.Clone(s.Set)
	}
	if s.Index >= 0 {
		return []int{s.Index}
	}
	return nil
}

func (s *Selection) Contains(i int) bool {
	if s.Group {
		_, ok := slices.BinarySearch(s.Set, i)
		return ok
	}
	return s.Index == i
}

func (s *Selection) single(i int) {
	s.Index = i
	s.Set = nil
	s.Group = false
}

func (s *Selection) group(index int, set []int) {
	s.Index = index
	s.Set = slices.Clone(set)
	slices.Sort(s.Set)
	s.Set = slices.Compact(s.Set)
	s.Group = len(s.Set) > 0
}

// toggle adds or removes i, promoting a prior single selection into the set.
func (s *Selection) toggle(i int) {
	if !s.Group {
		s.Set = nil
		if s.Index >= 0 {
			s.Set = []int{s.Index}
		}
		s.Group = true
	}
	if pos, ok := slices.BinarySearch(s.Set, i); ok {
		s.Set = slices.Delete(s.Set, pos, pos+1)
	} else {
		s.Set = slices.Insert(s.Set, pos, i)
	}
	switch {
	case len(s.Set) == 0:
		s.Clear()
	case slices.Contains(s.Set, i):
		s.Index = i
	case !slices.Contains(s.Set, s.Index):
		s.Index = s.Set[len(s.Set)-1]
	}
}

// removed updates indices after flat index i was deleted from the registry.
func (s *Selection) removed(i int) {
	shift := func(j int) int {
		if j > i {
			return j - 1
		}
		return j
	}
	var set []int
	for _, j := range s.Set {
		if j != i {
			set = append(set, shift(j))
		}
	}
	s.Set = set
	switch {
	case s.Index == i:
		s.Index = -1
		if len(s.Set) > 0 {
			s.Index = s.Set[len(s.Set)-1]
		}
	default:
		s.Index = shift(s.Index)
	}
	if s.Group && len(s.Set) == 0 {
		s.Group = false
	}
}

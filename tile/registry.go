package tile

// Registry holds every tile in one sequence partitioned video, image, camera.
// Flat indices follow that order and shift when tiles are removed; the *Tile
// pointer is the stable identity.
type Registry struct {
	tiles []*Tile
	// ends[k] is the exclusive end of kind k's block.
	ends [3]int
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Len() int {
	return len(r.tiles)
}

// Count returns the number of tiles of kind k.
func (r *Registry) Count(k Kind) int {
	start, end := r.Bounds(k)
	return end - start
}

// Bounds returns the [start, end) flat index range of kind k.
func (r *Registry) Bounds(k Kind) (int, int) {
	start := 0
	if k > Video {
		start = r.ends[k-1]
	}
	return start, r.ends[k]
}

// At returns the tile at flat index i, or nil when i is out of range.
func (r *Registry) At(i int) *Tile {
	if i < 0 || i >= len(r.tiles) {
		return nil
	}
	return r.tiles[i]
}

// IndexOf returns the flat index of t, or -1.
func (r *Registry) IndexOf(t *Tile) int {
	for i, cur := range r.tiles {
		if cur == t {
			return i
		}
	}
	return -1
}

// Local converts a flat index into the index within its kind's block.
func (r *Registry) Local(i int) (Kind, int, bool) {
	if i < 0 || i >= len(r.tiles) {
		return 0, 0, false
	}
	k := r.tiles[i].Kind
	start, _ := r.Bounds(k)
	return k, i - start, true
}

// Add appends t to the end of its kind's block and returns its flat index.
func (r *Registry) Add(t *Tile) int {
	if t == nil || t.Kind < Video || t.Kind > Camera {
		return -1
	}
	at := r.ends[t.Kind]
	r.tiles = append(r.tiles, nil)
	copy(r.tiles[at+1:], r.tiles[at:])
	r.tiles[at] = t
	for k := t.Kind; k <= Camera; k++ {
		r.ends[k]++
	}
	return at
}

// Remove deletes the tile at flat index i. Later indices shift down by one.
func (r *Registry) Remove(i int) (*Tile, bool) {
	if i < 0 || i >= len(r.tiles) {
		return nil, false
	}
	t := r.tiles[i]
	r.tiles = append(r.tiles[:i], r.tiles[i+1:]...)
	for k := t.Kind; k <= Camera; k++ {
		r.ends[k]--
	}
	return t, true
}

func (r *Registry) Clear() {
	r.tiles = nil
	r.ends = [3]int{}
}

// All returns the tiles in flat index order. The slice is shared; do not mutate it.
func (r *Registry) All() []*Tile {
	return r.tiles
}

// OfKind returns the block of tiles of kind k.
func (r *Registry) OfKind(k Kind) []*Tile {
	start, end := r.Bounds(k)
	return r.tiles[start:end]
}

// SameSource returns the flat indices of every tile sharing kind and source
// index with the tile at i.
func (r *Registry) SameSource(i int) []int {
	t := r.At(i)
	if t == nil {
		return nil
	}
	start, end := r.Bounds(t.Kind)
	var out []int
	for j := start; j < end; j++ {
		if r.tiles[j].Source == t.Source {
			out = append(out, j)
		}
	}
	return out
}

// SetPrimarySource marks every video tile of video source src as primary and
// clears the flag everywhere else. A negative src clears all.
func (r *Registry) SetPrimarySource(src int) {
	for _, t := range r.tiles {
		t.Primary = t.Kind == Video && src >= 0 && t.Source == src
	}
}

// PrimarySource returns the video source index of the first primary tile.
func (r *Registry) PrimarySource() (int, bool) {
	for _, t := range r.OfKind(Video) {
		if t.Primary {
			return t.Source, true
		}
	}
	return -1, false
}

// Repoint moves every tile of kind k using source from onto source to.
func (r *Registry) Repoint(k Kind, from, to int, path string) int {
	n := 0
	for _, t := range r.OfKind(k) {
		if t.Source == from {
			t.Source = to
			t.Path = path
			n++
		}
	}
	return n
}

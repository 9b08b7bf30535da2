package layout

import (
	"github.com/milk9111/tilewall/media"
	"github.com/milk9111/tilewall/playback"
	"github.com/milk9111/tilewall/tile"
)

// pathIndex assigns indices to paths in first-seen order.
type pathIndex struct {
	paths []string
	index map[string]int
}

func newPathIndex() *pathIndex {
	return &pathIndex{index: map[string]int{}}
}

func (p *pathIndex) add(path string) (int, bool) {
	if i, ok := p.index[path]; ok {
		return i, false
	}
	p.index[path] = len(p.paths)
	p.paths = append(p.paths, path)
	return len(p.paths) - 1, true
}

// Save captures the registry as a document. Source paths are listed once in
// first-use order and tile indices are renumbered to match; a source with no
// tiles is not saved. settings is indexed by the library's video index.
func Save(reg *tile.Registry, lib *media.Library, settings []playback.Setting, display Settings) *Document {
	doc := &Document{
		Settings:              display,
		VideoPaths:            []string{},
		ImagePaths:            []string{},
		VideoPlaybackSettings: []playback.Setting{},
		VideoTiles:            []TileEntry{},
		ImageTiles:            []TileEntry{},
		CameraTiles:           []TileEntry{},
	}

	videos := newPathIndex()
	for _, t := range reg.OfKind(tile.Video) {
		path := t.Path
		if path == "" {
			path = lib.VideoPath(t.Source)
		}
		i, added := videos.add(path)
		if added {
			var s playback.Setting
			if t.Source >= 0 && t.Source < len(settings) {
				s = settings[t.Source]
			}
			doc.VideoPlaybackSettings = append(doc.VideoPlaybackSettings, s)
		}
		e := entry(t, path)
		e.VideoIndex = intPtr(i)
		doc.VideoTiles = append(doc.VideoTiles, e)
	}
	doc.VideoPaths = append(doc.VideoPaths, videos.paths...)

	images := newPathIndex()
	for _, t := range reg.OfKind(tile.Image) {
		path := t.Path
		if path == "" {
			path = lib.ImagePath(t.Source)
		}
		i, _ := images.add(path)
		e := entry(t, path)
		e.ImageIndex = intPtr(i)
		doc.ImageTiles = append(doc.ImageTiles, e)
	}
	doc.ImagePaths = append(doc.ImagePaths, images.paths...)

	cameras := newPathIndex()
	for _, t := range reg.OfKind(tile.Camera) {
		id := t.Path
		if id == "" {
			id = lib.CameraID(t.Source)
		}
		i, _ := cameras.add(id)
		e := entry(t, id)
		e.CameraIndex = intPtr(i)
		doc.CameraTiles = append(doc.CameraTiles, e)
	}
	return doc
}

func entry(t *tile.Tile, path string) TileEntry {
	return TileEntry{
		Type:          t.Kind.String(),
		X:             t.X,
		Y:             t.Y,
		OffsetX:       t.OffsetX,
		OffsetY:       t.OffsetY,
		SourceRegion:  t.Region,
		IsPrimary:     t.Primary && t.Kind == tile.Video,
		UseColorInput: t.ColorInput,
		ColorIndex1:   t.Color1,
		ColorIndex2:   t.Color2,
		Path:          path,
	}
}

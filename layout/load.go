package layout

import (
	"fmt"
	"log"

	"github.com/milk9111/tilewall/media"
	"github.com/milk9111/tilewall/playback"
	"github.com/milk9111/tilewall/tile"
)

// Loaded is the result of applying a document.
type Loaded struct {
	Registry *tile.Registry
	Playback []playback.Setting
	Display  Settings
}

// Load replaces every source in lib with the ones doc names and rebuilds the
// tiles. Sources that fail to open and tiles that cannot be resolved are
// skipped; each is reported in the returned error list.
func Load(doc *Document, lib *media.Library) (*Loaded, []error) {
	var errs []error
	skip := func(err error) {
		log.Printf("layout: %v", err)
		errs = append(errs, err)
	}

	lib.Reset()
	out := &Loaded{Registry: tile.NewRegistry(), Display: doc.Settings}

	videoByPath := map[string]int{}
	videoByIndex := map[int]int{}
	for i, path := range doc.VideoPaths {
		idx, err := lib.OpenVideo(path)
		if err != nil {
			skip(fmt.Errorf("open video %s: %w", path, err))
			continue
		}
		videoByPath[path] = idx
		videoByIndex[i] = idx
		var s playback.Setting
		if i < len(doc.VideoPlaybackSettings) {
			s = doc.VideoPlaybackSettings[i]
		}
		out.Playback = append(out.Playback, s)
	}

	imageByPath := map[string]int{}
	imageByIndex := map[int]int{}
	for i, path := range doc.ImagePaths {
		idx, err := lib.OpenImage(path)
		if err != nil {
			skip(fmt.Errorf("open image %s: %w", path, err))
			continue
		}
		imageByPath[path] = idx
		imageByIndex[i] = idx
	}

	cameraByID := map[string]int{}
	for _, e := range doc.CameraTiles {
		id := cameraID(e)
		if _, ok := cameraByID[id]; ok || id == "" {
			continue
		}
		idx, err := lib.OpenCamera(id)
		if err != nil {
			skip(fmt.Errorf("open camera %s: %w", id, err))
			cameraByID[id] = -1
			continue
		}
		cameraByID[id] = idx
	}

	groups := []struct {
		fallback tile.Kind
		entries  []TileEntry
	}{
		{tile.Video, doc.VideoTiles},
		{tile.Image, doc.ImageTiles},
		{tile.Camera, doc.CameraTiles},
	}
	for _, g := range groups {
		for n, e := range g.entries {
			kind := g.fallback
			if e.Type != "" {
				k, ok := tile.ParseKind(e.Type)
				if !ok {
					skip(fmt.Errorf("%s tile %d: unknown type %q", g.fallback, n, e.Type))
					continue
				}
				kind = k
			}

			var src int
			var ok bool
			switch kind {
			case tile.Video:
				src, ok = videoByPath[e.Path]
				if !ok && e.Path == "" && e.VideoIndex != nil {
					src, ok = videoByIndex[*e.VideoIndex]
				}
			case tile.Image:
				src, ok = imageByPath[e.Path]
				if !ok && e.Path == "" && e.ImageIndex != nil {
					src, ok = imageByIndex[*e.ImageIndex]
				}
			case tile.Camera:
				src, ok = cameraByID[cameraID(e)]
				ok = ok && src >= 0
			}
			if !ok {
				skip(fmt.Errorf("%s tile %d: no source for %q", kind, n, e.Path))
				continue
			}
			out.Registry.Add(build(kind, src, e))
		}
	}

	if src, ok := out.Registry.PrimarySource(); ok {
		out.Registry.SetPrimarySource(src)
	}
	return out, errs
}

func cameraID(e TileEntry) string {
	if e.Path != "" {
		return e.Path
	}
	if e.CameraIndex != nil {
		return media.CameraID(*e.CameraIndex)
	}
	return ""
}

func build(kind tile.Kind, src int, e TileEntry) *tile.Tile {
	path := e.Path
	if kind == tile.Camera {
		path = cameraID(e)
	}
	t := tile.New(kind, e.X, e.Y, src, e.SourceRegion, path)
	t.OffsetX = e.OffsetX
	t.OffsetY = e.OffsetY
	t.Primary = e.IsPrimary && kind == tile.Video
	t.ColorInput = e.UseColorInput
	t.SetColorIndices(e.ColorIndex1, e.ColorIndex2)
	return t
}

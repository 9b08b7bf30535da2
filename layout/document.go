// Package layout converts the tile registry to and from the persisted JSON
// layout document and manages the directory of saved layouts.
package layout

import (
	"encoding/json"

	"github.com/milk9111/tilewall/geom"
	"github.com/milk9111/tilewall/playback"
)

// Settings are the display settings stored with a layout.
type Settings struct {
	ShowGradient bool `json:"showGradient"`
}

type Document struct {
	Settings              Settings           `json:"settings"`
	VideoPaths            []string           `json:"videoPaths"`
	ImagePaths            []string           `json:"imagePaths"`
	VideoPlaybackSettings []playback.Setting `json:"videoPlaybackSettings"`
	VideoTiles            []TileEntry        `json:"videoTiles"`
	ImageTiles            []TileEntry        `json:"imageTiles"`
	CameraTiles           []TileEntry        `json:"cameraTiles"`
}

// TileEntry is one persisted tile. Exactly one of the index fields is set,
// matching Type.
type TileEntry struct {
	Type          string    `json:"type,omitempty"`
	VideoIndex    *int      `json:"videoIndex,omitempty"`
	ImageIndex    *int      `json:"imageIndex,omitempty"`
	CameraIndex   *int      `json:"cameraIndex,omitempty"`
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	OffsetX       float64   `json:"offsetX"`
	OffsetY       float64   `json:"offsetY"`
	SourceRegion  geom.Rect `json:"sourceRegion"`
	IsPrimary     bool      `json:"isPrimary"`
	UseColorInput bool      `json:"useColorInput"`
	ColorIndex1   int       `json:"colorIndex1"`
	ColorIndex2   int       `json:"colorIndex2"`
	Path          string    `json:"path,omitempty"`
}

// UnmarshalJSON fills fields missing from the document with their defaults.
func (e *TileEntry) UnmarshalJSON(b []byte) error {
	type plain TileEntry
	p := plain{ColorIndex1: 0, ColorIndex2: 1}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = TileEntry(p)
	return nil
}

func intPtr(i int) *int {
	return &i
}

// Marshal encodes doc as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

package studio

import (
	"fmt"
	"sync"

	"github.com/milk9111/tilewall/layout"
	"golang.design/x/clipboard"
)

// Clipboard receives exported layout text.
type Clipboard interface {
	WriteText(b []byte) error
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

type systemClipboard struct{}

func (systemClipboard) WriteText(b []byte) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("studio: clipboard: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, b)
	return nil
}

// SetClipboard replaces the system clipboard, e.g. in tests.
func (s *Studio) SetClipboard(c Clipboard) {
	s.clipboard = c
}

// CopyLayout puts the current layout document on the clipboard as JSON.
func (s *Studio) CopyLayout() error {
	data, err := layout.Marshal(s.Document())
	if err != nil {
		return fmt.Errorf("studio: copy layout: %w", err)
	}
	return s.clipboard.WriteText(data)
}

package main

import (
	"bytes"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilewall/studio"
	"golang.org/x/image/font/gofont/goregular"
)

// Toolbar is the edit-mode button row mirroring the keyboard shortcuts.
type Toolbar struct {
	UI       *ebitenui.UI
	gradient *widget.Button
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func NewToolbar(s *studio.Studio) (*Toolbar, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	var face text.Face = &text.GoTextFace{Source: src, Size: 13}

	buttonImage := &widget.ButtonImage{
		Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
		Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
		Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
	}
	textColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 220})),
	)
	row.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}

	tb := &Toolbar{}
	button := func(label string, onClick func()) *widget.Button {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(label, &face, textColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 28),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
				tb.Sync(s)
			}),
		)
		row.AddChild(btn)
		return btn
	}

	button("Undo", func() { s.Editor.Undo() })
	button("Grid", func() { s.AlignToGrid() })
	button("Palette", func() { s.RequestPalette() })
	button("Primary", func() { s.SetPrimaryFromSelection() })
	tb.gradient = button("Gradient: Off", func() { s.SetShowGradient(!s.Display.ShowGradient) })
	button("New", func() {
		if _, err := s.NewLayout(); err != nil {
			log.Printf("new layout: %v", err)
		}
	})
	button("Save As", func() {
		if _, err := s.SaveAsNew(); err != nil {
			log.Printf("save as new: %v", err)
		}
	})
	button("Copy", func() {
		if err := s.CopyLayout(); err != nil {
			log.Printf("copy layout: %v", err)
		}
	})

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(row)
	tb.UI = &ebitenui.UI{Container: root}
	tb.Sync(s)
	return tb, nil
}

// Sync refreshes toggle labels from studio state.
func (tb *Toolbar) Sync(s *studio.Studio) {
	label := "Gradient: Off"
	if s.Display.ShowGradient {
		label = "Gradient: On"
	}
	if t := tb.gradient.Text(); t != nil {
		t.Label = label
	}
}

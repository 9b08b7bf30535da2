package main

import (
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilewall/render"
	"github.com/milk9111/tilewall/studio"
)

type Game struct {
	studio     *studio.Studio
	compositor *render.Compositor
	render     render.Config
	input      *Input
	toolbar    *Toolbar

	last time.Time
}

func NewGame(s *studio.Studio) (*Game, error) {
	var gradient image.Image
	if path := s.Cfg.Tiles.Gradient; path != "" {
		img, err := render.LoadGradient(path)
		if err != nil {
			log.Printf("using built-in gradient: %v", err)
		} else {
			gradient = img
		}
	}
	toolbar, err := NewToolbar(s)
	if err != nil {
		return nil, err
	}
	return &Game{
		studio:     s,
		compositor: render.NewCompositor(),
		render:     render.NewConfig(s.Display.ShowGradient, gradient),
		input:      NewInput(),
		toolbar:    toolbar,
	}, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	if g.studio.EditMode {
		g.toolbar.UI.Update()
	}
	g.input.Update(g.studio)
	g.studio.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.ShowGradient = g.studio.Display.ShowGradient
	g.compositor.Draw(screen, g.studio, g.render)
	if g.studio.EditMode {
		g.toolbar.Sync(g.studio)
		g.toolbar.UI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.studio.CanvasW = float64(outsideWidth)
	g.studio.CanvasH = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

package main

import (
	"flag"
	"log"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilewall/config"
	"github.com/milk9111/tilewall/control"
	"github.com/milk9111/tilewall/media"
	"github.com/milk9111/tilewall/studio"
)

type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// parseReplace splits a "tile=path" flag value.
func parseReplace(v string) (int, string, error) {
	idx, path, ok := strings.Cut(v, "=")
	if !ok || path == "" {
		return 0, "", fmt.Errorf("replace-video %q: want tile=path", v)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || i < 0 {
		return 0, "", fmt.Errorf("replace-video %q: bad tile index", v)
	}
	return i, path, nil
}

func main() {
	configPath := flag.String("config", "tilewall.yaml", "config file (.yaml, .yml or .toml)")
	layoutName := flag.String("layout", "", "layout name in the layouts dir to open (basename, no .json)")
	locked := flag.Bool("locked", false, "start locked out of edit mode")
	controlStdin := flag.Bool("control-stdin", false, "read \"/yaw 0.5\" style control lines from stdin")
	addCamera := flag.Bool("add-camera", false, "add a camera source after loading")
	var videos, images, replaces pathList
	flag.Var(&videos, "add-video", "video file to add after loading (repeatable)")
	flag.Var(&images, "add-image", "image file to add after loading (repeatable)")
	flag.Var(&replaces, "replace-video", "tile=path: swap the video shown by a video tile (repeatable)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *locked {
		cfg.Layout.Locked = true
	}

	s, err := studio.New(cfg, media.DefaultFactory())
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if err := s.Open(*layoutName); err != nil {
		log.Fatal(err)
	}
	if cfg.Layout.Watch {
		if err := s.Watch(); err != nil {
			log.Printf("layout watch disabled: %v", err)
		}
	}
	for _, p := range videos {
		_ = s.AddVideo(p)
	}
	for _, p := range images {
		_ = s.AddImage(p)
	}
	if *addCamera {
		_ = s.AddCamera()
	}
	for _, v := range replaces {
		i, path, err := parseReplace(v)
		if err != nil {
			log.Fatal(err)
		}
		if err := s.ReplaceVideo(i, path); err != nil {
			log.Printf("replace video: %v", err)
		}
	}

	if *controlStdin {
		go func() {
			err := control.ReadLines(os.Stdin, s.Control, func(err error) { log.Println(err) })
			if err != nil {
				log.Printf("control: stdin: %v", err)
			}
		}()
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(s)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

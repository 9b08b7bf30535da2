// Package config loads application settings from YAML or TOML, layered over
// the embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

type Layout struct {
	Dir string `yaml:"dir" toml:"dir"`
	// Watch reloads the current layout when it is edited on disk.
	Watch bool `yaml:"watch" toml:"watch"`
	// Locked starts outside edit mode and ignores the edit toggle.
	Locked bool `yaml:"locked" toml:"locked"`
}

type Tiles struct {
	OriginX      float64 `yaml:"origin_x" toml:"origin_x"`
	OriginY      float64 `yaml:"origin_y" toml:"origin_y"`
	ShowGradient bool    `yaml:"show_gradient" toml:"show_gradient"`
	// Gradient is an image drawn over every tile when ShowGradient is set.
	// Empty uses a built-in vertical fade.
	Gradient string `yaml:"gradient" toml:"gradient"`
}

type Camera struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

type Palette struct {
	Method          string  `yaml:"method" toml:"method"`
	ProcessWidth    int     `yaml:"process_width" toml:"process_width"`
	WarmupFrame     int     `yaml:"warmup_frame" toml:"warmup_frame"`
	IntervalSeconds float64 `yaml:"interval_seconds" toml:"interval_seconds"`
}

func (p Palette) Interval() time.Duration {
	if p.IntervalSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(p.IntervalSeconds * float64(time.Second))
}

type Playback struct {
	// Script is a tengo program or a path to one. It reads `input` and sets
	// `speed`.
	Script string `yaml:"script" toml:"script"`
}

type Grid struct {
	Cols    int     `yaml:"cols" toml:"cols"`
	Rows    int     `yaml:"rows" toml:"rows"`
	Spacing float64 `yaml:"spacing" toml:"spacing"`
}

type Editor struct {
	UndoCapacity int     `yaml:"undo_capacity" toml:"undo_capacity"`
	AdjustStep   float64 `yaml:"adjust_step" toml:"adjust_step"`
	Grid         Grid    `yaml:"grid" toml:"grid"`
}

type Config struct {
	Window   Window   `yaml:"window" toml:"window"`
	Layout   Layout   `yaml:"layout" toml:"layout"`
	Tiles    Tiles    `yaml:"tiles" toml:"tiles"`
	Camera   Camera   `yaml:"camera" toml:"camera"`
	Palette  Palette  `yaml:"palette" toml:"palette"`
	Playback Playback `yaml:"playback" toml:"playback"`
	Editor   Editor   `yaml:"editor" toml:"editor"`
}

// Default returns the embedded defaults.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return &cfg
}

// Load layers the file at path over the defaults. An empty path or a missing
// file yields the defaults. Files ending in .toml are TOML; anything else is
// YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.Width <= 0 || c.Camera.Height <= 0:
		return fmt.Errorf("camera size %dx%d must be positive", c.Camera.Width, c.Camera.Height)
	case c.Palette.ProcessWidth <= 0:
		return fmt.Errorf("palette process_width %d must be positive", c.Palette.ProcessWidth)
	case c.Editor.UndoCapacity <= 0:
		return fmt.Errorf("editor undo_capacity %d must be positive", c.Editor.UndoCapacity)
	case c.Editor.Grid.Cols <= 0 || c.Editor.Grid.Rows <= 0:
		return fmt.Errorf("editor grid %dx%d must be positive", c.Editor.Grid.Cols, c.Editor.Grid.Rows)
	}
	return nil
}

// PlaybackScript returns the script source, reading it from disk when Script
// names an existing .tengo file.
func (c *Config) PlaybackScript() (string, error) {
	s := strings.TrimSpace(c.Playback.Script)
	if strings.EqualFold(filepath.Ext(s), ".tengo") {
		data, err := os.ReadFile(s)
		if err != nil {
			return "", fmt.Errorf("config: load script %s: %w", s, err)
		}
		return string(data), nil
	}
	return s, nil
}

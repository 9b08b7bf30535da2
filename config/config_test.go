package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Editor.UndoCapacity != 20 || cfg.Editor.Grid.Cols != 12 || cfg.Editor.Grid.Rows != 10 || cfg.Editor.Grid.Spacing != 24 {
		t.Fatalf("editor defaults = %+v", cfg.Editor)
	}
	if cfg.Palette.ProcessWidth != 64 || cfg.Palette.WarmupFrame != 20 || cfg.Palette.Interval() != 5*time.Second {
		t.Fatalf("palette defaults = %+v", cfg.Palette)
	}
	if cfg.Camera.Width != 512 || cfg.Tiles.OriginX != 10 || cfg.Layout.Dir != "layouts" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	cases := []struct {
		name    string
		path    string
		wantErr bool
		check   func(*Config) bool
	}{
		{"empty_path", "", false, func(c *Config) bool { return c.Window.Width == 1280 }},
		{"missing_file", filepath.Join(dir, "nope.yaml"), false, func(c *Config) bool { return c.Window.Width == 1280 }},
		{"yaml_overlay", write("a.yaml", "palette:\n  method: kmeans\neditor:\n  undo_capacity: 5\n"), false, func(c *Config) bool {
			return c.Palette.Method == "kmeans" && c.Editor.UndoCapacity == 5 && c.Editor.Grid.Cols == 12
		}},
		{"toml_overlay", write("b.toml", "[layout]\ndir = \"shows\"\nlocked = true\n\n[camera]\nwidth = 320\n"), false, func(c *Config) bool {
			return c.Layout.Dir == "shows" && c.Layout.Locked && c.Camera.Width == 320 && c.Camera.Height == 512
		}},
		{"bad_yaml", write("c.yml", "window: [\n"), true, nil},
		{"invalid_values", write("d.yaml", "editor:\n  undo_capacity: 0\n"), true, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(c.path)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !c.check(cfg) {
				t.Fatalf("unexpected config %+v", cfg)
			}
		})
	}
}

func TestPlaybackScript(t *testing.T) {
	cfg := Default()
	cfg.Playback.Script = "speed = input * 2"
	if src, err := cfg.PlaybackScript(); err != nil || src != "speed = input * 2" {
		t.Fatalf("inline script = %q, %v", src, err)
	}

	p := filepath.Join(t.TempDir(), "map.tengo")
	if err := os.WriteFile(p, []byte("speed = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Playback.Script = p
	if src, err := cfg.PlaybackScript(); err != nil || src != "speed = 1" {
		t.Fatalf("file script = %q, %v", src, err)
	}
}

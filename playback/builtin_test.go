package playback

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestBuiltins(t *testing.T) {
	got := Builtins()
	want := []string{"deadzone", "ease", "invert"}
	if !slices.Equal(got, want) {
		t.Fatalf("Builtins() = %v, want %v", got, want)
	}
}

func TestBuiltinScripts(t *testing.T) {
	ScriptDir = t.TempDir()

	cases := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "ease", input: 0.5, want: 2.5},
		{name: "ease", input: -0.5, want: -2.5},
		{name: "invert", input: 0.5, want: -5},
		{name: "deadzone", input: 0.05, want: 0},
		{name: "deadzone.tengo", input: -0.5, want: -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := ResolveScript(BuiltinPrefix + tc.name)
			if err != nil {
				t.Fatalf("ResolveScript: %v", err)
			}
			s, err := CompileScript(src)
			if err != nil {
				t.Fatalf("CompileScript: %v", err)
			}
			got, ok := s.Eval(tc.input)
			if !ok || math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Eval(%v) = %v, %v; want %v", tc.input, got, ok, tc.want)
			}
		})
	}
}

func TestLoadScriptDiskOverride(t *testing.T) {
	ScriptDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(ScriptDir, "invert.tengo"), []byte("speed = 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := LoadScript("invert")
	if err != nil || src != "speed = 3" {
		t.Fatalf("LoadScript = %q, %v", src, err)
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected error for unknown script")
	}
	if _, err := LoadScript(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestResolveScriptInline(t *testing.T) {
	src, err := ResolveScript("speed = input")
	if err != nil || src != "speed = input" {
		t.Fatalf("ResolveScript inline = %q, %v", src, err)
	}
}

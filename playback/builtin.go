package playback

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// BuiltinPrefix selects a named script instead of inline source.
const BuiltinPrefix = "builtin:"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// ScriptDir is checked before the embedded scripts so a named script can be
// overridden on disk.
var ScriptDir = "scripts"

// LoadScript returns the source of the named script.
func LoadScript(name string) (string, error) {
	clean := cleanScriptName(name)
	if clean == "" {
		return "", fmt.Errorf("playback: load script: empty name")
	}
	if data, err := os.ReadFile(filepath.Join(ScriptDir, clean)); err == nil {
		return string(data), nil
	}
	data, err := ScriptsFS.ReadFile(path.Join("scripts", clean))
	if err != nil {
		return "", fmt.Errorf("playback: load script %s: %w", name, err)
	}
	return string(data), nil
}

// Builtins lists the embedded script names.
func Builtins() []string {
	entries, err := fs.ReadDir(ScriptsFS, "scripts")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}

// ResolveScript turns a configured script value into source: "builtin:name"
// loads a named script, anything else is returned unchanged.
func ResolveScript(value string) (string, error) {
	name, ok := strings.CutPrefix(strings.TrimSpace(value), BuiltinPrefix)
	if !ok {
		return value, nil
	}
	return LoadScript(name)
}

func cleanScriptName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "scripts/")
	s = path.Base(s)
	if s == "." || s == "/" {
		return ""
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}

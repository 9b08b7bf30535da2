package layout

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var ErrNoLayout = errors.New("layout: no layout selected")

const (
	DefaultDir = "layouts"
	namePrefix = "layout_"
	nameLayout = "20060102_150405"
	ext        = ".json"
)

// Store is a directory of layout files with one selected entry. Names are file
// names without the extension.
type Store struct {
	Dir string
	Now func() time.Time

	names    []string
	selected int
	seen     map[string][]byte
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{
		Dir:      dir,
		Now:      time.Now,
		selected: -1,
		seen:     map[string][]byte{},
	}
}

// Refresh rereads the directory, keeping the selection by name when possible.
// A missing directory is an empty store.
func (s *Store) Refresh() error {
	current, hasCurrent := s.Current()
	entries, err := os.ReadDir(s.Dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("layout: list %s: %w", s.Dir, err)
	}
	s.names = s.names[:0]
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		s.names = append(s.names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	slices.Sort(s.names)

	s.selected = -1
	if hasCurrent {
		s.Select(current)
	}
	if s.selected < 0 && len(s.names) > 0 {
		s.selected = 0
	}
	return nil
}

func (s *Store) Names() []string {
	return slices.Clone(s.names)
}

func (s *Store) Current() (string, bool) {
	if s.selected < 0 || s.selected >= len(s.names) {
		return "", false
	}
	return s.names[s.selected], true
}

// Select makes name current. It reports false if the store has no such layout.
func (s *Store) Select(name string) bool {
	i := slices.Index(s.names, name)
	if i < 0 {
		return false
	}
	s.selected = i
	return true
}

// Next selects the following layout, wrapping around.
func (s *Store) Next() (string, bool) {
	return s.step(1)
}

func (s *Store) Prev() (string, bool) {
	return s.step(-1)
}

func (s *Store) step(d int) (string, bool) {
	n := len(s.names)
	if n == 0 {
		return "", false
	}
	s.selected = ((s.selected+d)%n + n) % n
	return s.names[s.selected], true
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+ext)
}

func (s *Store) Read(name string) (*Document, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("layout: decode %s: %w", path, err)
	}
	s.seen[name] = data
	return doc, nil
}

// ReadCurrent reads the selected layout.
func (s *Store) ReadCurrent() (*Document, error) {
	name, ok := s.Current()
	if !ok {
		return nil, ErrNoLayout
	}
	return s.Read(name)
}

func (s *Store) Write(name string, doc *Document) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("layout: create %s: %w", s.Dir, err)
	}
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("layout: encode %s: %w", name, err)
	}
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("layout: write %s: %w", path, err)
	}
	s.seen[name] = data
	return nil
}

// SaveCurrent overwrites the selected layout.
func (s *Store) SaveCurrent(doc *Document) error {
	name, ok := s.Current()
	if !ok {
		return ErrNoLayout
	}
	return s.Write(name, doc)
}

// SaveAsNew writes doc under a fresh timestamped name and selects it.
func (s *Store) SaveAsNew(doc *Document) (string, error) {
	name, err := s.newName()
	if err != nil {
		return "", err
	}
	if err := s.Write(name, doc); err != nil {
		return "", err
	}
	if err := s.Refresh(); err != nil {
		return name, err
	}
	if !s.Select(name) {
		s.names = append(s.names, name)
		slices.Sort(s.names)
		s.Select(name)
	}
	log.Printf("layout: saved %s", s.Path(name))
	return name, nil
}

// newName picks the timestamped name, suffixed _2, _3... while taken.
func (s *Store) newName() (string, error) {
	base := namePrefix + s.Now().Format(nameLayout)
	name := base
	for n := 2; ; n++ {
		_, err := os.Stat(s.Path(name))
		if errors.Is(err, os.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("layout: new name %s: %w", name, err)
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

// ChangedOnDisk reports whether the file for name differs from what this
// store last read or wrote.
func (s *Store) ChangedOnDisk(name string) bool {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return false
	}
	last, ok := s.seen[name]
	return !ok || !bytes.Equal(last, data)
}

// NameOf maps a file path inside the store directory to a layout name.
func (s *Store) NameOf(path string) (string, bool) {
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return "", false
	}
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(s.Dir) {
		return "", false
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), true
}

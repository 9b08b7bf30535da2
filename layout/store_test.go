package layout

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestStoreSaveAsNewNames(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "layouts"))
	s.Now = fixedClock(time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local))

	first, err := s.SaveAsNew(&Document{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.SaveAsNew(&Document{})
	if err != nil {
		t.Fatal(err)
	}
	if first != "layout_20260304_050607" || second != "layout_20260304_050607_2" {
		t.Fatalf("names = %q, %q", first, second)
	}
	if cur, _ := s.Current(); cur != second {
		t.Fatalf("current = %q, want newest save", cur)
	}
}

func TestStoreSaveAsNewStatError(t *testing.T) {
	notDir := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(notDir, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(notDir)
	s.Now = fixedClock(time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local))

	done := make(chan error, 1)
	go func() {
		_, err := s.SaveAsNew(&Document{})
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("SaveAsNew into a file path succeeded")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("SaveAsNew did not return")
	}
}

func TestStoreNavigation(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "c.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	s := NewStore(dir)
	if err := s.Refresh(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Names(), []string{"a", "b", "c"}) {
		t.Fatalf("names = %v", s.Names())
	}

	cases := []struct {
		name string
		step func() (string, bool)
		want string
	}{
		{"next", s.Next, "b"},
		{"next_again", s.Next, "c"},
		{"next_wraps", s.Next, "a"},
		{"prev_wraps", s.Prev, "c"},
	}
	for _, c := range cases {
		got, ok := c.step()
		if !ok || got != c.want {
			t.Fatalf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing"))
	if err := s.Refresh(); err != nil {
		t.Fatalf("missing dir should be empty, got %v", err)
	}
	if err := s.SaveCurrent(&Document{}); !errors.Is(err, ErrNoLayout) {
		t.Fatalf("SaveCurrent err = %v, want ErrNoLayout", err)
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("Next on empty store should fail")
	}
	if _, err := s.ReadCurrent(); !errors.Is(err, ErrNoLayout) {
		t.Fatalf("ReadCurrent err = %v", err)
	}
}

func TestStoreChangedOnDisk(t *testing.T) {
	s := NewStore(t.TempDir())
	name, err := s.SaveAsNew(&Document{Settings: Settings{ShowGradient: true}})
	if err != nil {
		t.Fatal(err)
	}
	if s.ChangedOnDisk(name) {
		t.Fatalf("own write reported as external change")
	}
	if err := os.WriteFile(s.Path(name), []byte(`{"settings":{"showGradient":false}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if !s.ChangedOnDisk(name) {
		t.Fatalf("external write not detected")
	}
	doc, err := s.ReadCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Settings.ShowGradient {
		t.Fatalf("ReadCurrent returned stale document")
	}
}

func TestStoreNameOf(t *testing.T) {
	s := NewStore("layouts")
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{filepath.Join("layouts", "layout_1.json"), "layout_1", true},
		{filepath.Join("layouts", "x.txt"), "", false},
		{filepath.Join("other", "y.json"), "", false},
	}
	for _, c := range cases {
		got, ok := s.NameOf(c.path)
		if ok != c.ok || got != c.want {
			t.Errorf("NameOf(%q) = %q, %v", c.path, got, ok)
		}
	}
}

func TestWatcherReportsLayoutWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	target := filepath.Join(dir, "layout_x.json")
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("event for %q, want %q", got, target)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for layout write")
	}
}

func TestWatcherReportsAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	target := filepath.Join(dir, "layout_y.json")
	full := []byte(`{"settings": {"showGradient": true}}`)
	if err := os.WriteFile(target, []byte(`{"sett`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, full, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != target {
			t.Fatalf("event for %q, want %q", got, target)
		}
		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Unmarshal(data); err != nil {
			t.Fatalf("reported before the final write landed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for layout write")
	}

	select {
	case got := <-w.Events:
		t.Fatalf("burst reported twice, extra event for %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherPollErrors(t *testing.T) {
	w := &Watcher{Events: make(chan string, 1), Errors: make(chan error, 2)}
	w.Errors <- errors.New("overflow")
	w.Errors <- errors.New("removed")

	got := w.PollErrors()
	if len(got) != 2 || got[0].Error() != "overflow" || got[1].Error() != "removed" {
		t.Fatalf("PollErrors = %v", got)
	}
	if got := w.PollErrors(); len(got) != 0 {
		t.Fatalf("second PollErrors = %v, want none", got)
	}
	close(w.Errors)
	if got := w.PollErrors(); len(got) != 0 {
		t.Fatalf("PollErrors on closed channel = %v", got)
	}
}

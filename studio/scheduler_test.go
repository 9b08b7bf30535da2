package studio

import (
	"testing"
	"time"
)

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(_ *Studio, _ time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestSchedulerRunsInOrder(t *testing.T) {
	var got []string
	sched := NewScheduler(recordSystem{"control", &got}, recordSystem{"playback", &got})
	sched.Add(nil)
	sched.Add(recordSystem{"palette", &got})

	sched.Update(nil, time.Millisecond)
	sched.Update(nil, time.Millisecond)

	want := []string{"control", "playback", "palette", "control", "playback", "palette"}
	if len(got) != len(want) {
		t.Fatalf("ran %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ran %v, want %v", got, want)
		}
	}

	systems := sched.Systems()
	if len(systems) != 3 {
		t.Fatalf("Systems() len = %d, want 3", len(systems))
	}
	systems[0] = nil
	if sched.Systems()[0] == nil {
		t.Fatalf("Systems() must return a copy")
	}
}

func TestDefaultSystemOrder(t *testing.T) {
	s := newStudio(t, t.TempDir())
	systems := s.scheduler.Systems()
	cases := []struct {
		name string
		ok   bool
	}{
		{name: "control", ok: isType[ControlSystem](systems[0])},
		{name: "playback", ok: isType[PlaybackSystem](systems[1])},
		{name: "palette", ok: isType[PaletteSystem](systems[2])},
		{name: "layout watch", ok: isType[LayoutWatchSystem](systems[3])},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.ok {
				t.Fatalf("unexpected system order %T", systems)
			}
		})
	}
}

func isType[T System](s System) bool {
	_, ok := s.(T)
	return ok
}

func TestBuiltinPlaybackScript(t *testing.T) {
	cfg := newStudio(t, t.TempDir()).Cfg
	cfg.Playback.Script = "builtin:invert"
	s, err := New(cfg, factory())
	if err != nil {
		t.Fatal(err)
	}
	if s.Modulator.Script == nil {
		t.Fatalf("builtin script not compiled")
	}

	cfg.Playback.Script = "builtin:nope"
	if _, err := New(cfg, factory()); err == nil {
		t.Fatalf("expected error for unknown builtin")
	}
}

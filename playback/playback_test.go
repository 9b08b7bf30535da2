package playback

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/milk9111/tilewall/control"
	"github.com/milk9111/tilewall/media"
)

type memVideo struct{ *media.GIFVideo }

func (v memVideo) Load(string) error {
	v.SetFrames([]image.Image{image.NewRGBA(image.Rect(0, 0, 4, 4))}, time.Second)
	return nil
}

func newLibrary(t *testing.T, n int) *media.Library {
	t.Helper()
	f := media.DefaultFactory()
	f.NewVideo = func() media.Video { return memVideo{media.NewGIFVideo()} }
	lib := media.NewLibrary(f)
	for i := 0; i < n; i++ {
		if _, err := lib.OpenVideo("mem.gif"); err != nil {
			t.Fatal(err)
		}
	}
	return lib
}

func TestSpeed(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, -10},
		{0, 0},
		{0.25, 2.5},
		{1, 10},
		{4, 10},
		{-3, -10},
		{math.NaN(), 0},
		{math.Inf(1), 10},
		{math.Inf(-1), -10},
	}
	for _, c := range cases {
		if got := Speed(c.in); got != c.want {
			t.Errorf("Speed(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestModulatorSpeedNaN(t *testing.T) {
	var plain Modulator
	if got := plain.speed(math.NaN()); got != 0 {
		t.Fatalf("speed(NaN) = %v, want 0", got)
	}
	s, err := CompileScript(`speed = input * 2 + 3`)
	if err != nil {
		t.Fatal(err)
	}
	scripted := Modulator{Script: s}
	if got := scripted.speed(math.NaN()); got != 3 {
		t.Fatalf("scripted speed(NaN) = %v, want 3", got)
	}
}

func TestModulatorApply(t *testing.T) {
	lib := newLibrary(t, 3)
	rx := control.NewReceiver()
	_ = rx.Send(control.AddrPitch, 0.5)
	_ = rx.Send(control.AddrRoll, -1)
	rx.Drain()

	settings := []Setting{
		{Mode: Loop, Input: Pitch},
		{Mode: External, Input: Pitch},
	}
	lib.Video(0).SetSpeed(3)
	var m Modulator
	m.Apply(lib, settings, rx)

	want := []float64{1, 5, 1}
	for i, w := range want {
		v := lib.Video(i)
		if v.Speed() != w {
			t.Fatalf("video %d speed = %v, want %v", i, v.Speed(), w)
		}
		if !v.Playing() {
			t.Fatalf("video %d should keep playing", i)
		}
	}

	settings[1].Input = Roll
	m.Apply(lib, settings, rx)
	if got := lib.Video(1).Speed(); got != -10 {
		t.Fatalf("roll-driven speed = %v, want -10", got)
	}
}

func TestScriptSpeed(t *testing.T) {
	s, err := CompileScript(`speed = input * input * 40`)
	if err != nil {
		t.Fatal(err)
	}
	m := Modulator{Script: s}
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 2.5},
		{1, 10},
	}
	for _, c := range cases {
		if got := m.speed(c.in); got != c.want {
			t.Errorf("speed(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestScriptFallback(t *testing.T) {
	if _, err := CompileScript(`speed = (`); err == nil {
		t.Fatalf("expected compile error")
	}
	s, err := CompileScript(`speed = input + "x"`)
	if err != nil {
		t.Fatal(err)
	}
	m := Modulator{Script: s}
	if got := m.speed(0.5); got != 5 {
		t.Fatalf("failing script should fall back to linear map, got %v", got)
	}
}

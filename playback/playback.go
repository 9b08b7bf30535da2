// Package playback turns external control values into video playback speed.
package playback

import (
	"math"

	"github.com/milk9111/tilewall/common"
	"github.com/milk9111/tilewall/control"
	"github.com/milk9111/tilewall/media"
)

type Mode int

const (
	Loop Mode = iota
	External
)

type Input int

const (
	Yaw Input = iota
	Pitch
	Roll
)

func (in Input) Address() string {
	switch in {
	case Pitch:
		return control.AddrPitch
	case Roll:
		return control.AddrRoll
	default:
		return control.AddrYaw
	}
}

const (
	MinSpeed = -10.0
	MaxSpeed = 10.0
)

// Setting is the per-video playback configuration.
type Setting struct {
	Mode  Mode  `json:"mode"`
	Input Input `json:"oscType"`
}

// Values supplies the latest control value per address.
type Values interface {
	Value(address string) float64
}

// Speed maps a control value in [-1,1] linearly onto [MinSpeed,MaxSpeed],
// clamping outside values. NaN maps to 0.
func Speed(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return common.MapRange(value, -1, 1, MinSpeed, MaxSpeed)
}

// Modulator applies settings to videos each tick. The control value drives
// speed, not position.
type Modulator struct {
	Script *Script
}

// Apply sets the speed of every video according to its setting. Videos keep
// playing in both modes. Missing settings default to Loop.
func (m *Modulator) Apply(lib *media.Library, settings []Setting, values Values) {
	for i := 0; i < lib.NumVideos(); i++ {
		v := lib.Video(i)
		var s Setting
		if i < len(settings) {
			s = settings[i]
		}
		if !v.Playing() {
			v.Play()
		}
		switch s.Mode {
		case External:
			v.SetSpeed(m.speed(values.Value(s.Input.Address())))
		default:
			v.SetSpeed(1)
		}
	}
}

func (m *Modulator) speed(value float64) float64 {
	if math.IsNaN(value) {
		value = 0
	}
	if m.Script != nil {
		if s, ok := m.Script.Eval(value); ok && !math.IsNaN(s) {
			return common.Clamp(s, MinSpeed, MaxSpeed)
		}
	}
	return Speed(value)
}

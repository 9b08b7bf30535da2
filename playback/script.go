package playback

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script is a tengo program mapping the global `input` to the global `speed`.
type Script struct {
	src      string
	compiled *tengo.Compiled
	failed   bool
}

func CompileScript(src string) (*Script, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("input", 0.0)
	_ = script.Add("speed", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("playback: compile script: %w", err)
	}
	return &Script{src: src, compiled: compiled}, nil
}

// Eval runs the script for one input value. A failing script logs once and
// reports false so the caller falls back to the linear map.
func (s *Script) Eval(input float64) (float64, bool) {
	if err := s.compiled.Set("input", input); err != nil {
		return s.fail(err)
	}
	if err := s.compiled.Run(); err != nil {
		return s.fail(err)
	}
	v := s.compiled.Get("speed")
	if v.IsUndefined() {
		return s.fail(fmt.Errorf("speed undefined"))
	}
	s.failed = false
	return v.Float(), true
}

func (s *Script) fail(err error) (float64, bool) {
	if !s.failed {
		log.Printf("playback: script: %v", err)
		s.failed = true
	}
	return 0, false
}

package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plus3/pongsim/input"
)

// Input patterns for the scripted players.
const (
	PatternSine   = "sine"
	PatternRandom = "random"
	PatternHold   = "hold"
)

// Script drives both paddle axes from a deterministic pattern.
type Script struct {
	pattern string
	rng     *rand.Rand
	state   *input.State
}

func NewScript(pattern string, seed uint64, state *input.State) (*Script, error) {
	switch pattern {
	case PatternSine, PatternRandom, PatternHold:
	default:
		return nil, fmt.Errorf("unknown pattern %q", pattern)
	}
	return &Script{
		pattern: pattern,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		state:   state,
	}, nil
}

// Apply writes the axes for the given tick into the script's state.
func (s *Script) Apply(tick uint64) {
	s.state.Clear()

	switch s.pattern {
	case PatternSine:
		t := float64(tick)
		s.state.Set(input.AxisLeftPaddle, 3*math.Sin(t/20))
		s.state.Set(input.AxisRightPaddle, -3*math.Cos(t/30))
	case PatternRandom:
		for _, axis := range []string{input.AxisLeftPaddle, input.AxisRightPaddle} {
			// Leave the axis absent one tick in ten.
			if s.rng.IntN(10) == 0 {
				continue
			}
			s.state.Set(axis, s.rng.Float64()*6-3)
		}
	case PatternHold:
		s.state.Set(input.AxisLeftPaddle, 5)
		s.state.Set(input.AxisRightPaddle, -5)
	}
}

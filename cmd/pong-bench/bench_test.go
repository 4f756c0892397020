package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/pong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestNewScriptRejectsUnknownPattern(t *testing.T) {
	_, err := NewScript("zigzag", 1, input.NewState())
	assert.Error(t, err)
}

func TestRandomScriptIsSeeded(t *testing.T) {
	a, b := input.NewState(), input.NewState()
	sa, err := NewScript(PatternRandom, 7, a)
	require.NoError(t, err)
	sb, err := NewScript(PatternRandom, 7, b)
	require.NoError(t, err)

	for tick := range uint64(200) {
		sa.Apply(tick)
		sb.Apply(tick)
		require.Equal(t, a.Names(), b.Names())
		for _, name := range a.Names() {
			va, _ := a.AxisValue(name)
			vb, _ := b.AxisValue(name)
			require.Equal(t, va, vb)
			require.True(t, va >= -3 && va < 3)
		}
	}
}

func TestScriptedMatchKeepsInvariants(t *testing.T) {
	for _, pattern := range []string{PatternSine, PatternRandom, PatternHold} {
		t.Run(pattern, func(t *testing.T) {
			state := input.NewState()
			script, err := NewScript(pattern, 3, state)
			require.NoError(t, err)

			m := pong.NewMatch(pong.DefaultOptions(), state)
			for tick := range uint64(600) {
				script.Apply(tick)
				m.Tick()
				require.Empty(t, CheckInvariants(m), "tick %d", tick)
			}
		})
	}
}

func TestReportGenerate(t *testing.T) {
	m := pong.NewMatch(pong.DefaultOptions(), nil)
	for range 10 {
		m.Tick()
	}

	r := &Report{Ticks: 10, TickRate: 60, Pattern: PatternHold, Seed: 1, Walls: true}
	r.UpdateTime.Samples = []time.Duration{time.Millisecond}
	r.UpdateTime.Finalize()
	r.Collect(m)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Match Bench Report")
	assert.Contains(t, out, "**Invariant Violations:** 0")
	assert.Contains(t, out, "| PhysicsStepSystem | 10 |")
	assert.Contains(t, out, "**Entities:** 4")
	assert.Len(t, r.Bodies, 1)
}

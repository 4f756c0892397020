package pong_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/pongsim/ecs"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/pong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchSetup(t *testing.T) {
	m := pong.NewMatch(pong.DefaultOptions(), nil)

	left, lt := m.Paddle(pong.Left)
	right, rt := m.Paddle(pong.Right)
	assert.Equal(t, pong.Left, left.Side)
	assert.Equal(t, pong.Right, right.Side)
	assert.Equal(t, mgl32.Vec3{2, 50, 0}, lt.Translation)
	assert.Equal(t, mgl32.Vec3{98, 50, 0}, rt.Translation)

	ball, bt := m.Ball()
	assert.Equal(t, pong.BallRadius, ball.Radius)
	assert.Equal(t, [2]float32{75, 50}, ball.Velocity)
	assert.Equal(t, mgl32.Vec3{50, 50, 0}, bt.Translation)

	ref := ecs.ReadComponent[pong.RigidBodyRef](m.Storage(), m.BallEntity())
	require.NotNil(t, ref)
	state, ok := m.World().Lookup(ref.Handle)
	require.True(t, ok)
	assert.Equal(t, 75.0, state.Velocity.X)
	assert.Equal(t, 50.0, state.Velocity.Y)
	assert.Equal(t, -1.0, m.World().Gravity().Y)

	assert.Equal(t, pong.ArenaCamera(), m.Camera())
	assert.Equal(t, float32(1), ecs.ReadComponent[pong.Transform](m.Storage(), m.CameraEntity()).Z())
	assert.Equal(t, 1, m.World().Len())
	assert.Equal(t, 3, m.Scheduler().GetStats().SystemCount)
}

func TestMatchDefaultsTickRate(t *testing.T) {
	m := pong.NewMatch(pong.Options{}, nil)
	assert.Equal(t, 60, m.Options().TickRate)
	assert.Equal(t, time.Second/60, m.Interval())
}

func TestMatchClampsTickRate(t *testing.T) {
	m := pong.NewMatch(pong.Options{TickRate: 2e9}, nil)
	assert.Equal(t, pong.MaxTickRate, m.Options().TickRate)
	assert.Equal(t, time.Millisecond, m.Interval())
	assert.Positive(t, m.Step())
}

func TestMatchTickOrder(t *testing.T) {
	m := pong.NewMatch(pong.DefaultOptions(), nil)
	m.Tick()

	stats := m.Scheduler().GetStats()
	require.Len(t, stats.Systems, 3)
	assert.Equal(t, "PhysicsStepSystem", stats.Systems[0].Name)
	assert.Equal(t, "BodySyncSystem", stats.Systems[1].Name)
	assert.Equal(t, "PaddleInputSystem", stats.Systems[2].Name)
	assert.Equal(t, uint64(1), m.Ticks())
	assert.Equal(t, uint64(1), m.World().Ticks())
}

func TestBallFallsUnderGravity(t *testing.T) {
	m := pong.NewMatch(pong.Options{TickRate: 60, Gravity: -1}, nil)
	for range 60 {
		m.Tick()
	}

	ball, tr := m.Ball()
	assert.InDelta(t, 0, ball.Velocity[0], 1e-6)
	assert.InDelta(t, -1, ball.Velocity[1], 1e-6)
	assert.Less(t, tr.Y(), float32(50))
	assert.InDelta(t, 50, tr.X(), 1e-6)
}

func TestBallVelocityMirrorsBody(t *testing.T) {
	m := pong.NewMatch(pong.DefaultOptions(), nil)
	ref := ecs.ReadComponent[pong.RigidBodyRef](m.Storage(), m.BallEntity())

	for range 30 {
		m.Tick()
		ball, tr := m.Ball()
		state, ok := m.World().Lookup(ref.Handle)
		require.True(t, ok)
		assert.Equal(t, [2]float32{float32(state.Velocity.X), float32(state.Velocity.Y)}, ball.Velocity)
		assert.Equal(t, float32(state.Position.X), tr.X())
		assert.Equal(t, float32(state.Position.Y), tr.Y())
	}
}

func TestWallsKeepBallInArena(t *testing.T) {
	m := pong.NewMatch(pong.DefaultOptions(), nil)
	for range 600 {
		m.Tick()
		_, tr := m.Ball()
		require.True(t, tr.X() >= 0 && tr.X() <= pong.ArenaWidth, "x=%v at tick %d", tr.X(), m.Ticks())
		require.True(t, tr.Y() >= 0 && tr.Y() <= pong.ArenaHeight, "y=%v at tick %d", tr.Y(), m.Ticks())
	}
}

func TestWallsContainFastBall(t *testing.T) {
	for _, speed := range []float32{200, 1000, 3000} {
		t.Run(fmt.Sprint(speed), func(t *testing.T) {
			opts := pong.DefaultOptions()
			opts.BallVelocity = [2]float32{speed, 0.7 * speed}
			m := pong.NewMatch(opts, nil)

			for range 600 {
				m.Tick()
				_, tr := m.Ball()
				require.True(t, tr.X() >= 0 && tr.X() <= pong.ArenaWidth, "x=%v at tick %d", tr.X(), m.Ticks())
				require.True(t, tr.Y() >= 0 && tr.Y() <= pong.ArenaHeight, "y=%v at tick %d", tr.Y(), m.Ticks())
			}
		})
	}
}

func TestMaxBallSpeedScalesWithTickRate(t *testing.T) {
	assert.Equal(t, 2*pong.MaxBallSpeed(30), pong.MaxBallSpeed(60))
	assert.Greater(t, pong.MaxBallSpeed(1), 100.0)
}

func TestMatchesAreDeterministic(t *testing.T) {
	opts := pong.DefaultOptions()
	a := pong.NewMatch(opts, nil)
	b := pong.NewMatch(opts, nil)

	for range 300 {
		a.Tick()
		b.Tick()
	}

	ballA, trA := a.Ball()
	ballB, trB := b.Ball()
	assert.Equal(t, trA.Translation, trB.Translation)
	assert.Equal(t, ballA.Velocity, ballB.Velocity)
}

func TestPaddlesHoldAtArenaEdge(t *testing.T) {
	state := input.NewState()
	state.Set(input.AxisLeftPaddle, 1)
	state.Set(input.AxisRightPaddle, -1)

	m := pong.NewMatch(pong.DefaultOptions(), state)
	for range 100 {
		m.Tick()
	}

	_, lt := m.Paddle(pong.Left)
	_, rt := m.Paddle(pong.Right)
	assert.Equal(t, mgl32.Vec3{2, 92, 0}, lt.Translation)
	assert.Equal(t, mgl32.Vec3{98, 8, 0}, rt.Translation)
}

func TestMatchRunStopsOnCancel(t *testing.T) {
	m := pong.NewMatch(pong.Options{TickRate: 1000}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	m.Run(ctx)

	assert.Positive(t, m.Ticks())
	assert.Equal(t, m.Ticks(), m.World().Ticks())
}

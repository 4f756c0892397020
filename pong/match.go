// Package pong is the simulation core of a two-paddle, one-ball match.
//
// A Match owns the entity storage, the physics world and a scheduler that runs,
// once per fixed tick and in this order:
//
//  1. PhysicsStepSystem: advance the physics world by one fixed step.
//  2. BodySyncSystem: copy body positions into transforms.
//  3. PaddleInputSystem: move paddles from input, clamped to the arena.
//
// Paddles are driven by input only, so the paddle system runs last and is never
// overwritten by the sync.
package pong

import (
	"context"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/plus3/pongsim/ecs"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/physics"
)

// Options configures a match. Arena and paddle dimensions are fixed.
type Options struct {
	// TickRate is the number of fixed ticks per simulated second.
	TickRate int
	// Gravity is the vertical acceleration applied to the ball, in units/s².
	Gravity float64
	// BallVelocity is the ball's initial velocity, in units/s.
	BallVelocity [2]float32
	// Walls adds static segments along the arena edges so the ball bounces.
	Walls bool
}

// DefaultOptions returns the standard match configuration.
func DefaultOptions() Options {
	return Options{
		TickRate:     60,
		Gravity:      -1,
		BallVelocity: [2]float32{75, 50},
		Walls:        true,
	}
}

// MaxTickRate is the highest supported tick rate.
const MaxTickRate = 1000

const (
	wallRadius = 0.5
	// maxTravel keeps the ball's per-substep displacement well under its radius,
	// so contacts with the walls are found before its centre crosses one.
	maxTravel = float64(BallRadius) / 2
)

// MaxBallSpeed returns the fastest ball speed, in units/s, that the walls are
// guaranteed to contain at the given tick rate.
func MaxBallSpeed(tickRate int) float64 {
	return maxTravel * physics.MaxSubsteps * float64(tickRate)
}

// Match is one running simulation. It is not safe for concurrent use.
type Match struct {
	opts      Options
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	world     *physics.World

	camera ecs.EntityId
	left   ecs.EntityId
	right  ecs.EntityId
	ball   ecs.EntityId
}

// NewMatch builds the physics world and entities of a match and registers its
// systems. provider supplies the paddle axes each tick; nil means no input.
func NewMatch(opts Options, provider input.AxisProvider) *Match {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultOptions().TickRate
	}
	opts.TickRate = min(opts.TickRate, MaxTickRate)

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	m := &Match{
		opts:    opts,
		storage: ecs.NewStorage(registry),
		world:   physics.New(),
	}
	m.world.SetGravity(cp.Vector{Y: opts.Gravity})
	m.world.SetMaxTravel(maxTravel)
	if opts.Walls {
		m.addWalls()
	}

	m.camera = m.storage.Spawn(ArenaCamera(), NewTransform(0, 0, 1))
	m.left = m.storage.Spawn(NewPaddle(Left), NewTransform(PaddleWidth*0.5, ArenaHeight/2, 0))
	m.right = m.storage.Spawn(NewPaddle(Right), NewTransform(ArenaWidth-PaddleWidth*0.5, ArenaHeight/2, 0))
	m.ball = m.spawnBall()

	m.scheduler = ecs.NewScheduler(m.storage)
	m.scheduler.Register(&PhysicsStepSystem{World: m.world})
	m.scheduler.Register(&BodySyncSystem{World: m.world})
	m.scheduler.Register(&PaddleInputSystem{Input: provider})

	return m
}

func (m *Match) addWalls() {
	w, h := float64(ArenaWidth), float64(ArenaHeight)
	corners := []cp.Vector{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		m.world.AddStaticSegment(a, b, wallRadius, 1)
	}
}

func (m *Match) spawnBall() ecs.EntityId {
	x, y := ArenaWidth/2, ArenaHeight/2
	ball := Ball{Velocity: m.opts.BallVelocity, Radius: BallRadius}

	handle := m.world.AddBody(
		physics.Circle{Radius: float64(ball.Radius)},
		cp.Vector{X: float64(x), Y: float64(y)},
		physics.MassProperties{Density: physics.DefaultDensity, Elasticity: 1},
	)
	m.world.SetVelocity(handle, cp.Vector{X: float64(ball.Velocity[0]), Y: float64(ball.Velocity[1])})

	return m.storage.Spawn(ball, NewTransform(x, y, 0), RigidBodyRef{Handle: handle})
}

// Interval returns the wall-clock duration of one tick at the configured rate.
func (m *Match) Interval() time.Duration {
	return time.Second / time.Duration(m.opts.TickRate)
}

// Step returns the fixed simulated time of one tick, in seconds.
func (m *Match) Step() float64 {
	return m.Interval().Seconds()
}

// Tick runs one fixed step of the simulation.
func (m *Match) Tick() {
	m.scheduler.Once(m.Step())
}

// Run ticks at the configured rate until ctx is done.
func (m *Match) Run(ctx context.Context) {
	m.scheduler.Run(ctx, m.Interval())
}

func (m *Match) Options() Options           { return m.opts }
func (m *Match) Storage() *ecs.Storage      { return m.storage }
func (m *Match) Scheduler() *ecs.Scheduler  { return m.scheduler }
func (m *Match) World() *physics.World      { return m.world }
func (m *Match) Ticks() uint64              { return m.scheduler.Ticks() }
func (m *Match) BallEntity() ecs.EntityId   { return m.ball }
func (m *Match) CameraEntity() ecs.EntityId { return m.camera }

// PaddleEntity returns the entity of the paddle on the given side.
func (m *Match) PaddleEntity(side Side) ecs.EntityId {
	if side == Right {
		return m.right
	}
	return m.left
}

// Camera returns the match camera.
func (m *Match) Camera() Camera {
	return *ecs.ReadComponent[Camera](m.storage, m.camera)
}

// Paddle returns copies of a paddle and its transform.
func (m *Match) Paddle(side Side) (Paddle, Transform) {
	id := m.PaddleEntity(side)
	return *ecs.ReadComponent[Paddle](m.storage, id), *ecs.ReadComponent[Transform](m.storage, id)
}

// Ball returns copies of the ball and its transform.
func (m *Match) Ball() (Ball, Transform) {
	return *ecs.ReadComponent[Ball](m.storage, m.ball), *ecs.ReadComponent[Transform](m.storage, m.ball)
}

package pong

import (
	"math"

	"github.com/plus3/pongsim/ecs"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/physics"
)

// PhysicsStepSystem advances the physics world by the tick's fixed step.
type PhysicsStepSystem struct {
	World *physics.World
}

func (s *PhysicsStepSystem) Execute(frame *ecs.UpdateFrame) {
	s.World.Step(frame.DeltaTime)
}

// BodySyncSystem copies body positions from the physics world into transforms.
// It only reads from the world. Entities whose handle no longer resolves keep
// their last transform.
type BodySyncSystem struct {
	World  *physics.World
	Bodies ecs.Query[struct {
		*Transform
		*RigidBodyRef
		Ball *Ball `ecs:"optional"`
	}]
}

func (s *BodySyncSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Bodies.Iter() {
		state, ok := s.World.Lookup(item.RigidBodyRef.Handle)
		if !ok {
			continue
		}

		item.Transform.Translation[0] = float32(state.Position.X)
		item.Transform.Translation[1] = float32(state.Position.Y)

		if item.Ball != nil {
			item.Ball.Velocity = [2]float32{float32(state.Velocity.X), float32(state.Velocity.Y)}
		}
	}
}

// PaddleInputSystem moves paddles vertically by their side's axis value, clamped
// to the arena. It writes transforms directly; paddles have no physics body.
type PaddleInputSystem struct {
	Input   input.AxisProvider
	Paddles ecs.Query[struct {
		*Paddle
		*Transform
	}]
}

func (s *PaddleInputSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Paddles.Iter() {
		amount := s.axis(item.Paddle.Side)
		if amount == 0 {
			continue
		}
		item.Transform.SetY(ClampPaddleY(item.Transform.Y()+float32(amount), item.Paddle.Height))
	}
}

func (s *PaddleInputSystem) axis(side Side) float64 {
	if s.Input == nil {
		return 0
	}
	v, ok := s.Input.AxisValue(side.Axis())
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}

// ClampPaddleY keeps a paddle of the given height fully inside the arena vertically.
func ClampPaddleY(y, height float32) float32 {
	return max(min(y, ArenaHeight-height/2), height/2)
}

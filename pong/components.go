package pong

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/pongsim/ecs"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/physics"
)

// Arena and paddle dimensions, in world units.
const (
	ArenaWidth  float32 = 100.0
	ArenaHeight float32 = 100.0

	PaddleWidth  float32 = 4.0
	PaddleHeight float32 = 16.0

	BallRadius float32 = 2.0
)

// Side identifies which input axis and which half of the arena a paddle belongs to.
type Side uint8

const (
	Left Side = iota
	Right
)

// Axis returns the name of the input axis driving paddles on this side.
func (s Side) Axis() string {
	if s == Right {
		return input.AxisRightPaddle
	}
	return input.AxisLeftPaddle
}

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

type Paddle struct {
	Side   Side
	Width  float32
	Height float32
}

// NewPaddle returns a paddle with the standard dimensions.
func NewPaddle(side Side) Paddle {
	return Paddle{Side: side, Width: PaddleWidth, Height: PaddleHeight}
}

// Ball mirrors the velocity of the ball's physics body. The body is authoritative;
// Velocity only seeds it at spawn and is refreshed from it every tick.
type Ball struct {
	Velocity [2]float32
	Radius   float32
}

// RigidBodyRef links an entity to a body owned by the physics world.
type RigidBodyRef struct {
	Handle physics.BodyHandle
}

// Transform is the spatial state consumed by presentation code.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// NewTransform returns a transform at (x, y, z) with no rotation.
func NewTransform(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
	}
}

func (t *Transform) X() float32 { return t.Translation.X() }
func (t *Transform) Y() float32 { return t.Translation.Y() }
func (t *Transform) Z() float32 { return t.Translation.Z() }

func (t *Transform) SetXYZ(x, y, z float32) {
	t.Translation = mgl32.Vec3{x, y, z}
}

func (t *Transform) SetY(y float32) {
	t.Translation[1] = y
}

// RegisterComponents adds every component type of the match to a registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Paddle](registry)
	ecs.RegisterComponent[Ball](registry)
	ecs.RegisterComponent[RigidBodyRef](registry)
	ecs.RegisterComponent[Camera](registry)
}

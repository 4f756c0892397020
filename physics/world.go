// Package physics owns rigid-body state and advances it in fixed steps.
//
// A World keeps a table of bodies addressed by generation-checked BodyHandles and
// integrates them with a Chipmunk space. Callers never hold *cp.Body pointers; they
// read state back through Lookup, which reports a miss instead of failing.
package physics

import (
	"iter"
	"math"

	"github.com/jakecoffman/cp"
)

// BodyState is a copy of a body's dynamic state at the time of the lookup.
type BodyState struct {
	Position        cp.Vector
	Velocity        cp.Vector
	Angle           float64
	AngularVelocity float64
	Mass            float64
	Moment          float64
}

type bodySlot struct {
	generation uint32
	body       *cp.Body
	shape      *cp.Shape
}

// MaxSubsteps bounds how many integrator steps a single Step may take.
const MaxSubsteps = 256

// World is the physics resource of a match. It is not safe for concurrent use.
type World struct {
	space     *cp.Space
	slots     []bodySlot
	free      []uint32
	live      int
	ticks     uint64
	maxTravel float64
}

// New returns an empty world with zero gravity.
func New() *World {
	return &World{
		space: cp.NewSpace(),
	}
}

// SetGravity sets the constant acceleration applied to every dynamic body each step.
func (w *World) SetGravity(gravity cp.Vector) {
	w.space.SetGravity(gravity)
}

// Gravity returns the configured global acceleration.
func (w *World) Gravity() cp.Vector {
	return w.space.Gravity()
}

// AddBody registers a dynamic body with the given collision shape at position.
// Mass comes from mass (see MassProperties); the moment of inertia is derived
// from the shape and the centre of mass is the shape's centroid.
func (w *World) AddBody(shape Shape, position cp.Vector, mass MassProperties) BodyHandle {
	m := mass.massFor(shape)
	moment := shape.moment(m)
	if moment <= 0 || math.IsNaN(moment) {
		moment = math.Inf(1)
	}

	body := w.space.AddBody(cp.NewBody(m, moment))
	body.SetPosition(position)

	collider := w.space.AddShape(shape.attach(body))
	collider.SetElasticity(mass.Elasticity)
	collider.SetFriction(mass.Friction)

	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.slots))
		w.slots = append(w.slots, bodySlot{})
	}

	slot := &w.slots[index]
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	slot.body = body
	slot.shape = collider
	w.live++

	return newBodyHandle(slot.generation, index)
}

// AddStaticSegment adds immovable collision geometry from a to b.
func (w *World) AddStaticSegment(a, b cp.Vector, radius, elasticity float64) {
	segment := w.space.AddShape(cp.NewSegment(w.space.StaticBody, a, b, radius))
	segment.SetElasticity(elasticity)
	segment.SetFriction(0)
}

func (w *World) resolve(h BodyHandle) *bodySlot {
	index := h.index()
	if int(index) >= len(w.slots) {
		return nil
	}
	slot := &w.slots[index]
	if slot.body == nil || slot.generation != h.generation() {
		return nil
	}
	return slot
}

// SetVelocity overrides a body's linear velocity. It returns false for a stale handle.
func (w *World) SetVelocity(h BodyHandle, velocity cp.Vector) bool {
	slot := w.resolve(h)
	if slot == nil {
		return false
	}
	slot.body.SetVelocityVector(velocity)
	return true
}

// RemoveBody deletes a body. Every handle to it, including h, goes stale.
func (w *World) RemoveBody(h BodyHandle) bool {
	slot := w.resolve(h)
	if slot == nil {
		return false
	}

	w.space.RemoveShape(slot.shape)
	w.space.RemoveBody(slot.body)
	slot.body = nil
	slot.shape = nil
	w.free = append(w.free, h.index())
	w.live--
	return true
}

// SetMaxTravel bounds how far any body may move in one integrator step. Step
// splits dt into equal substeps so that the fastest body covers at most d per
// substep, up to MaxSubsteps. Zero disables substepping.
func (w *World) SetMaxTravel(d float64) {
	w.maxTravel = max(d, 0)
}

// Step advances every body by dt seconds: gravity, velocity and position
// integration, then contact resolution. Identical worlds stepped with identical
// dt produce identical states.
func (w *World) Step(dt float64) {
	n := w.Substeps(dt)
	h := dt / float64(n)
	for range n {
		w.space.Step(h)
	}
	w.ticks++
}

// Substeps returns how many integrator steps Step(dt) takes from the current state.
func (w *World) Substeps(dt float64) int {
	if w.maxTravel <= 0 {
		return 1
	}

	var fastest float64
	for i := range w.slots {
		if body := w.slots[i].body; body != nil {
			fastest = max(fastest, body.Velocity().Length())
		}
	}

	ratio := fastest * math.Abs(dt) / w.maxTravel
	switch {
	case !(ratio > 1):
		return 1
	case ratio >= MaxSubsteps:
		return MaxSubsteps
	}
	return int(math.Ceil(ratio))
}

// Ticks returns the number of completed steps.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Lookup returns the current state of the body, or false if h does not resolve.
func (w *World) Lookup(h BodyHandle) (BodyState, bool) {
	slot := w.resolve(h)
	if slot == nil {
		return BodyState{}, false
	}
	return stateOf(slot.body), true
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return w.live
}

// Bodies yields every live body in slot order.
func (w *World) Bodies() iter.Seq2[BodyHandle, BodyState] {
	return func(yield func(BodyHandle, BodyState) bool) {
		for i := range w.slots {
			slot := &w.slots[i]
			if slot.body == nil {
				continue
			}
			if !yield(newBodyHandle(slot.generation, uint32(i)), stateOf(slot.body)) {
				return
			}
		}
	}
}

func stateOf(body *cp.Body) BodyState {
	return BodyState{
		Position:        body.Position(),
		Velocity:        body.Velocity(),
		Angle:           body.Angle(),
		AngularVelocity: body.AngularVelocity(),
		Mass:            body.Mass(),
		Moment:          body.Moment(),
	}
}

package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Shape is the collision volume of a body. Mass properties are derived from it.
type Shape interface {
	area() float64
	moment(mass float64) float64
	attach(body *cp.Body) *cp.Shape
}

// Box is an axis-aligned rectangle centred on the body origin.
type Box struct {
	Width, Height float64
}

func (b Box) area() float64 { return b.Width * b.Height }

func (b Box) moment(mass float64) float64 {
	return cp.MomentForBox(mass, b.Width, b.Height)
}

func (b Box) attach(body *cp.Body) *cp.Shape {
	return cp.NewBox(body, b.Width, b.Height, 0)
}

// Circle is a disc centred on the body origin.
type Circle struct {
	Radius float64
}

func (c Circle) area() float64 { return math.Pi * c.Radius * c.Radius }

func (c Circle) moment(mass float64) float64 {
	return cp.MomentForCircle(mass, 0, c.Radius, cp.Vector{})
}

func (c Circle) attach(body *cp.Body) *cp.Shape {
	return cp.NewCircle(body, c.Radius, cp.Vector{})
}

// MassProperties configures how a body's mass is derived and how it responds to contacts.
// Mass wins over Density when positive; otherwise mass is Density times the shape area.
type MassProperties struct {
	Mass       float64
	Density    float64
	Elasticity float64
	Friction   float64
}

// DefaultDensity is used when neither Mass nor Density is set.
const DefaultDensity = 1.0

func (m MassProperties) massFor(shape Shape) float64 {
	if m.Mass > 0 {
		return m.Mass
	}
	density := m.Density
	if density <= 0 {
		density = DefaultDensity
	}
	if mass := density * shape.area(); mass > 0 {
		return mass
	}
	// Degenerate shapes still need a finite, positive mass to integrate.
	return density
}

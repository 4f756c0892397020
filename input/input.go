// Package input resolves named control axes for the simulation.
package input

import (
	"maps"
	"slices"
)

// Axis names read by the paddle system.
const (
	AxisLeftPaddle  = "left_paddle"
	AxisRightPaddle = "right_paddle"
)

// AxisProvider exposes the state of named input axes for the current tick.
// A missing axis reports ok == false and is treated as neutral by callers.
type AxisProvider interface {
	AxisValue(name string) (value float64, ok bool)
}

// State is a mutable axis table. The zero value is ready to use.
type State struct {
	axes map[string]float64
}

// NewState returns an empty axis table.
func NewState() *State {
	return &State{axes: make(map[string]float64)}
}

// AxisValue implements AxisProvider.
func (s *State) AxisValue(name string) (float64, bool) {
	v, ok := s.axes[name]
	return v, ok
}

// Set records the value of an axis for the current tick.
func (s *State) Set(name string, value float64) {
	if s.axes == nil {
		s.axes = make(map[string]float64)
	}
	s.axes[name] = value
}

// Unset forgets one axis.
func (s *State) Unset(name string) {
	delete(s.axes, name)
}

// Clear forgets every axis.
func (s *State) Clear() {
	clear(s.axes)
}

// Names returns the axes currently set, sorted.
func (s *State) Names() []string {
	return slices.Sorted(maps.Keys(s.axes))
}

// Func adapts a plain function to AxisProvider.
type Func func(name string) (float64, bool)

func (f Func) AxisValue(name string) (float64, bool) {
	return f(name)
}

// Package keyboard maps ebiten key codes onto named input axes.
package keyboard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pongsim/input"
)

// Emulated builds an axis out of two sets of keys: any positive key pushes the
// axis to +1, any negative key to -1, both cancel out.
type Emulated struct {
	Positive []ebiten.Key
	Negative []ebiten.Key
}

// Value returns the axis value and whether any bound key is held.
func (e Emulated) Value(pressed func(ebiten.Key) bool) (float64, bool) {
	pos := anyPressed(e.Positive, pressed)
	neg := anyPressed(e.Negative, pressed)
	if !pos && !neg {
		return 0, false
	}

	var v float64
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v, true
}

func anyPressed(keys []ebiten.Key, pressed func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// Bindings maps axis names to key pairs.
type Bindings map[string]Emulated

// DefaultBindings puts the left paddle on W/S and the right paddle on the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		input.AxisLeftPaddle: {
			Positive: []ebiten.Key{ebiten.KeyW},
			Negative: []ebiten.Key{ebiten.KeyS},
		},
		input.AxisRightPaddle: {
			Positive: []ebiten.Key{ebiten.KeyArrowUp},
			Negative: []ebiten.Key{ebiten.KeyArrowDown},
		},
	}
}

// Poll rebuilds state from the keyboard. Axes with no bound key held are left
// unset, so providers report them as absent.
func (b Bindings) Poll(state *input.State, pressed func(ebiten.Key) bool) {
	state.Clear()
	for name, axis := range b {
		if v, ok := axis.Value(pressed); ok {
			state.Set(name, v)
		}
	}
}

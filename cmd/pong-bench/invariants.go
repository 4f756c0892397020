package main

import (
	"fmt"

	"github.com/plus3/pongsim/pong"
)

const maxReportedViolations = 10

// CheckInvariants returns one message per broken arena invariant: paddles
// must stay within their clamp range at their starting x, and with walls the
// ball must stay inside the arena.
func CheckInvariants(m *pong.Match) []string {
	var violations []string

	for _, side := range []pong.Side{pong.Left, pong.Right} {
		paddle, tr := m.Paddle(side)
		lo, hi := paddle.Height/2, pong.ArenaHeight-paddle.Height/2
		if tr.Y() < lo || tr.Y() > hi {
			violations = append(violations, fmt.Sprintf("%s paddle y=%.3f outside [%.1f, %.1f]", side, tr.Y(), lo, hi))
		}

		wantX := pong.PaddleWidth / 2
		if side == pong.Right {
			wantX = pong.ArenaWidth - pong.PaddleWidth/2
		}
		if tr.X() != wantX {
			violations = append(violations, fmt.Sprintf("%s paddle x=%.3f moved from %.1f", side, tr.X(), wantX))
		}
	}

	if m.Options().Walls {
		_, tr := m.Ball()
		if tr.X() < 0 || tr.X() > pong.ArenaWidth || tr.Y() < 0 || tr.Y() > pong.ArenaHeight {
			violations = append(violations, fmt.Sprintf("ball (%.3f, %.3f) left the arena", tr.X(), tr.Y()))
		}
	}

	return violations
}

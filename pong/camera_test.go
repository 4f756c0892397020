package pong_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/pongsim/pong"
	"github.com/stretchr/testify/assert"
)

func TestCameraMapsArenaCorners(t *testing.T) {
	cam := pong.ArenaCamera()

	cases := []struct {
		world  mgl32.Vec3
		sx, sy float32
	}{
		{mgl32.Vec3{0, 0, 0}, 0, 600},
		{mgl32.Vec3{100, 0, 0}, 800, 600},
		{mgl32.Vec3{0, 100, 0}, 0, 0},
		{mgl32.Vec3{100, 100, 0}, 800, 0},
		{mgl32.Vec3{50, 50, 0}, 400, 300},
	}
	for _, c := range cases {
		x, y := cam.WorldToScreen(c.world, 800, 600)
		assert.InDelta(t, c.sx, x, 1e-3, "x of %v", c.world)
		assert.InDelta(t, c.sy, y, 1e-3, "y of %v", c.world)
	}
}

func TestCameraScale(t *testing.T) {
	sx, sy := pong.ArenaCamera().Scale(800, 600)
	assert.Equal(t, float32(8), sx)
	assert.Equal(t, float32(6), sy)
}

func TestSideAxis(t *testing.T) {
	assert.Equal(t, "left_paddle", pong.Left.Axis())
	assert.Equal(t, "right_paddle", pong.Right.Axis())
	assert.Equal(t, "left", pong.Left.String())
	assert.Equal(t, "right", pong.Right.String())
}

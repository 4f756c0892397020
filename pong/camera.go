package pong

import "github.com/go-gl/mathgl/mgl32"

// Camera is an orthographic camera over a rectangle of the world.
type Camera struct {
	Left, Right, Bottom, Top float32
}

// ArenaCamera frames the whole arena.
func ArenaCamera() Camera {
	return Camera{Left: 0, Right: ArenaWidth, Bottom: 0, Top: ArenaHeight}
}

// Projection returns the orthographic projection matrix of the camera.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Ortho2D(c.Left, c.Right, c.Bottom, c.Top)
}

// WorldToScreen maps a world position to pixel coordinates on a width x height
// target whose origin is the top-left corner.
func (c Camera) WorldToScreen(pos mgl32.Vec3, width, height int) (float32, float32) {
	ndc := c.Projection().Mul4x1(pos.Vec4(1))
	x := (ndc.X() + 1) / 2 * float32(width)
	y := (1 - ndc.Y()) / 2 * float32(height)
	return x, y
}

// Scale returns how many pixels one world unit spans horizontally and vertically.
func (c Camera) Scale(width, height int) (float32, float32) {
	return float32(width) / (c.Right - c.Left), float32(height) / (c.Top - c.Bottom)
}

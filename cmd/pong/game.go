package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/pongsim/debugui"
	debugui_ebiten "github.com/plus3/pongsim/debugui/ebiten"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/input/keyboard"
	"github.com/plus3/pongsim/pong"
)

var (
	backgroundColor = color.RGBA{16, 16, 24, 255}
	paddleColor     = color.RGBA{230, 230, 230, 255}
	ballColor       = color.RGBA{255, 200, 120, 255}
)

// Game runs one match tick per ebiten update; ebiten's TPS is the tick rate.
type Game struct {
	match    *pong.Match
	bindings keyboard.Bindings
	state    *input.State
	imgui    *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	if g.keyboardCaptured() {
		g.state.Clear()
	} else {
		g.bindings.Poll(g.state, ebiten.IsKeyPressed)
	}

	g.match.Tick()
	return nil
}

func (g *Game) keyboardCaptured() bool {
	var state *debugui.ImguiInputState
	if !g.match.Storage().ReadSingleton(&state) {
		return false
	}
	return state.WantCaptureKeyboard
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	camera := g.match.Camera()
	sx, sy := camera.Scale(w, h)

	for _, side := range []pong.Side{pong.Left, pong.Right} {
		paddle, tr := g.match.Paddle(side)
		cx, cy := camera.WorldToScreen(tr.Translation, w, h)
		pw, ph := paddle.Width*sx, paddle.Height*sy
		vector.DrawFilledRect(screen, cx-pw/2, cy-ph/2, pw, ph, paddleColor, false)
	}

	ball, tr := g.match.Ball()
	cx, cy := camera.WorldToScreen(tr.Translation, w, h)
	vector.DrawFilledCircle(screen, cx, cy, ball.Radius*sx, ballColor, true)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

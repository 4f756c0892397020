package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pongsim/config"
	"github.com/plus3/pongsim/debugui"
	debugui_ebiten "github.com/plus3/pongsim/debugui/ebiten"
	"github.com/plus3/pongsim/input"
	"github.com/plus3/pongsim/input/keyboard"
	"github.com/plus3/pongsim/pong"
)

const windowTitle = "Pong"

func main() {
	cfg, err := config.Load(flag.NewFlagSet(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	width := int(pong.ArenaWidth) * cfg.WindowScale
	height := int(pong.ArenaHeight) * cfg.WindowScale

	state := input.NewState()
	match := pong.NewMatch(cfg.MatchOptions(), state)

	game := &Game{
		match:    match,
		bindings: keyboard.DefaultBindings(),
		state:    state,
	}

	if cfg.Debug {
		game.imgui = debugui_ebiten.NewImguiBackend(windowTitle, width, height)

		debugui.RegisterComponents(match.Storage().Registry())
		debugui.Spawn(match.Storage(), match.Scheduler(), match.World())
		match.Scheduler().Register(&debugui.ImguiSystem{})
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetTPS(cfg.TickRate)

	log.Printf("Starting match at %d TPS (walls %t, debug %t)\n", cfg.TickRate, cfg.Walls, cfg.Debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game stopped: %v", err)
	}
	log.Printf("Match ended after %d ticks\n", match.Ticks())
}

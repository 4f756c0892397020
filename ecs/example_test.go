package ecs_test

import (
	"fmt"

	"github.com/plus3/pongsim/ecs"
)

type GravitySystem struct {
	Bodies ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Bodies.Iter() {
		item.Velocity.DY -= 10 * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

// ExampleScheduler shows the usual setup: register component types, spawn
// entities, register systems in the order they should run, then tick.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)

	storage := ecs.NewStorage(registry)
	id := storage.Spawn(Position{Y: 100}, Velocity{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&GravitySystem{})

	for range 4 {
		scheduler.Once(0.5)
	}

	pos := ecs.ReadComponent[Position](storage, id)
	fmt.Printf("y=%.1f after %d ticks\n", pos.Y, scheduler.Ticks())

	// Output:
	// y=75.0 after 4 ticks
}

type GameConfig struct {
	MaxPlayers int
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	config := ecs.NewSingleton[GameConfig](storage, GameConfig{MaxPlayers: 2})
	config.Get().MaxPlayers = 4

	var read *GameConfig
	storage.ReadSingleton(&read)
	fmt.Println(read.MaxPlayers)

	// Output:
	// 4
}

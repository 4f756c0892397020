// Package debugui renders Dear ImGui inspection panels for a running match.
// Panels are entities carrying an ImguiItem; ImguiSystem queues their render
// functions so they run after the tick's other systems, inside the frame the
// backend opened.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pongsim/ecs"
	"github.com/plus3/pongsim/physics"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui wants the mouse or keyboard this frame.
// Frontends should skip gameplay input polling while it is captured.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem's render function.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents adds the component types used by the panels to a registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn creates the input-state singleton and one entity per panel.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler, world *physics.World) {
	ecs.NewSingleton[ImguiInputState](storage)

	inspector := NewPhysicsInspector(world)
	stats := NewPerformanceStats(120, storage, scheduler)
	entities := NewEntityTable(storage)

	storage.Spawn(ImguiItem{Render: inspector.Render})
	storage.Spawn(ImguiItem{Render: stats.Render})
	storage.Spawn(ImguiItem{Render: entities.Render})
}

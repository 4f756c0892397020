package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pongsim/physics"
)

// BodyRow is one line of the physics inspector table.
type BodyRow struct {
	Handle   string
	Position string
	Velocity string
	Mass     string
}

// PhysicsInspector shows the body table of a physics world.
type PhysicsInspector struct {
	world *physics.World
}

func NewPhysicsInspector(world *physics.World) *PhysicsInspector {
	return &PhysicsInspector{world: world}
}

// Rows formats every live body, in handle order.
func (pi *PhysicsInspector) Rows() []BodyRow {
	rows := make([]BodyRow, 0, pi.world.Len())
	for h, state := range pi.world.Bodies() {
		rows = append(rows, BodyRow{
			Handle:   h.String(),
			Position: fmt.Sprintf("(%.2f, %.2f)", state.Position.X, state.Position.Y),
			Velocity: fmt.Sprintf("(%.2f, %.2f)", state.Velocity.X, state.Velocity.Y),
			Mass:     fmt.Sprintf("%.3f", state.Mass),
		})
	}
	return rows
}

func (pi *PhysicsInspector) Render() {
	if !imgui.BeginV("Physics", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	g := pi.world.Gravity()
	imgui.Text(fmt.Sprintf("Steps: %d", pi.world.Ticks()))
	imgui.Text(fmt.Sprintf("Gravity: (%.2f, %.2f)", g.X, g.Y))
	imgui.Text(fmt.Sprintf("Bodies: %d", pi.world.Len()))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("BodyTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Handle")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Velocity")
		imgui.TableSetupColumn("Mass")
		imgui.TableHeadersRow()

		for _, row := range pi.Rows() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.Handle)
			imgui.TableNextColumn()
			imgui.Text(row.Position)
			imgui.TableNextColumn()
			imgui.Text(row.Velocity)
			imgui.TableNextColumn()
			imgui.Text(row.Mass)
		}

		imgui.EndTable()
	}

	imgui.End()
}

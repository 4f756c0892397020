package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pongsim/ecs"
)

// EntityInfo describes one live entity.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityTable lists every entity with its archetype and component types.
type EntityTable struct {
	storage *ecs.Storage
}

func NewEntityTable(storage *ecs.Storage) *EntityTable {
	return &EntityTable{storage: storage}
}

// Entities returns every live entity sorted by id.
func (et *EntityTable) Entities() []EntityInfo {
	var entities []EntityInfo
	for _, archetype := range et.storage.Archetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].ID < entities[j].ID
	})
	return entities
}

func (et *EntityTable) Render() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, entity := range et.Entities() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ID))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	imgui.End()
}

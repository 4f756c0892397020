package ecs

import (
	"encoding/binary"
	"hash/fnv"
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// Archetype holds every entity that has exactly the same set of component types.
// Each component type gets its own column; an entity's index is its row in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn appends one row. components must hold exactly one value per column type.
func (a *Archetype) spawn(components []any) uint32 {
	row := -1
	for _, comp := range components {
		col := a.column(componentType(comp))
		if col == -1 {
			continue
		}
		row = a.storages[col].Append(comp)
	}
	return uint32(row)
}

func (a *Archetype) column(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// GetComponent returns a pointer to the component of the given type, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col := a.column(compType)
	if col == -1 {
		return nil
	}
	return a.storages[col].Get(int(entityIndex))
}

func (a *Archetype) delete(entityIndex uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) != -1
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the ids of all live entities in row order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

// componentType returns the value type of a component, looking through one pointer.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of a spawn call.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

func typeId(t reflect.Type) int {
	return int(uintptr((*iface)(unsafe.Pointer(&t)).data))
}

// hashTypes derives an archetype id from a sorted slice of types (FNV-1a over type pointers).
func hashTypes(types []reflect.Type) uint32 {
	h := fnv.New32a()
	var buf [8]byte
	for _, t := range types {
		binary.LittleEndian.PutUint64(buf[:], uint64(typeId(t)))
		h.Write(buf[:])
	}
	return h.Sum32()
}

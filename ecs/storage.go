package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every archetype and singleton of one ECS world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// order keeps archetypes in creation order so iteration is deterministic.
	order          []*Archetype
	singletons     *intmap.Map[int, *singletonEntry]
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: intmap.New[int, *singletonEntry](16),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// GetArchetype returns the archetype holding exactly the given component types, if one exists.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.archetypes.Get(hashTypes(extractComponentTypes(components)))
	return archetype
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	if archetype, ok := s.archetypes.Get(id); ok {
		if !slices.Equal(archetype.types, types) {
			panic(fmt.Sprintf("archetype id 0x%X collision: %v and %v", id, archetype.types, types))
		}
		return archetype
	}
	archetype := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

// Spawn creates a new entity with the provided components.
// Components may be passed by value or by pointer; the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes all data related to the entity ID. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || len(archetype.storages) == 0 {
		return false
	}
	return archetype.storages[0].Has(int(id.Index()))
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any previous
// value in place so that outstanding Singleton accessors keep pointing at it.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if entry := s.getSingletonEntry(t); entry != nil {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons.Put(typeId(t), &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	})
	s.singletonOrder = append(s.singletonOrder, t)
}

// ReadSingleton points *out at the singleton of type T, where out is a **T.
// It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(v.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, _ := s.singletons.Get(typeId(t))
	return entry
}

// ComponentReader is satisfied by anything that can resolve a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	offset   uintptr
	typ      reflect.Type // component type; nil for the EntityId field
	optional bool
}

// View reads entities through a struct of component pointers.
//
// T must be a struct whose fields are pointers to component types, e.g.
//
//	struct {
//		ecs.EntityId
//		*Transform
//		*Paddle
//		Ball *Ball `ecs:"optional"`
//	}
//
// Embedded pointer fields are required. Named pointer fields may be tagged
// `ecs:"optional"` and are nil when the entity lacks the component. A field of type
// EntityId receives the id of the entity being read.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{offset: field.Offset})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or ecs.EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		fields = append(fields, viewField{
			offset:   field.Offset,
			typ:      field.Type.Elem(),
			optional: optional,
		})
	}

	return &View[T]{
		storage: storage,
		fields:  fields,
	}
}

// matches reports whether the archetype carries every required component of the view.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if f.typ == nil || f.optional {
			continue
		}
		if !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columns maps each view field to the archetype column holding it (-1 when absent).
func (v *View[T]) columns(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = -1
		if f.typ != nil {
			cols[i] = archetype.column(f.typ)
		}
	}
	return cols
}

func (v *View[T]) populate(dst *T, archetype *Archetype, row int, cols []int) bool {
	base := unsafe.Pointer(dst)
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(base, f.offset)

		if f.typ == nil {
			*(*EntityId)(fieldPtr) = NewEntityId(archetype.id, uint32(row))
			continue
		}

		var component any
		if cols[i] != -1 {
			component = archetype.storages[cols[i]].Get(row)
		}
		if component == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Fill populates ptr with the entity's components.
// Returns false if the entity is missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !v.matches(archetype) {
		return false
	}
	return v.populate(ptr, archetype, int(id.Index()), v.columns(archetype))
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(archetype.storages) == 0 {
			return
		}
		cols := v.columns(archetype)
		var result T
		for row := range archetype.storages[0].Iter() {
			if !v.populate(&result, archetype, row, cols) {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

// Iter yields a populated struct for every entity with all required components,
// archetypes in creation order and rows in index order.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			for item := range v.iterArchetype(archetype) {
				if !yield(item) {
					return
				}
			}
		}
	}
}

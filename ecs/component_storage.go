package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is the type-erased view of a per-type component column.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to storage factories.
// Every Storage owns exactly one registry; two storages may share one.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers T with the registry. Spawning an entity with an
// unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage keeps components of type T in fixed-size blocks so that pointers
// handed out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
}

func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	cs.blocks[index/blockSize][index%blockSize] = value
	cs.filled[index/blockSize][index%blockSize] = true
	return index
}

func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	var zero T
	cs.blocks[index/blockSize][index%blockSize] = zero
	cs.filled[index/blockSize][index%blockSize] = false
	cs.freeSlots = append(cs.freeSlots, index)
}

func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Len() int {
	return cs.nextIndex - len(cs.freeSlots)
}

func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

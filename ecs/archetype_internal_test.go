package ecs

import (
	"hash/fnv"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hashA struct{ V int }
type hashB struct{ V int }

func TestHashTypesMatchesFNV(t *testing.T) {
	types := []reflect.Type{reflect.TypeFor[hashA](), reflect.TypeFor[hashB]()}
	sortTypes(types)

	assert.Equal(t, hashTypes(types), hashTypes(append([]reflect.Type(nil), types...)))
	assert.NotEqual(t, hashTypes(types[:1]), hashTypes(types))

	empty := fnv.New32a()
	assert.Equal(t, empty.Sum32(), hashTypes(nil))
}

func TestArchetypeIdCollisionPanics(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[hashA](registry)
	RegisterComponent[hashB](registry)
	storage := NewStorage(registry)

	// Plant an archetype for hashB under the id hashA hashes to.
	aTypes := []reflect.Type{reflect.TypeFor[hashA]()}
	bTypes := []reflect.Type{reflect.TypeFor[hashB]()}
	storage.archetypes.Put(hashTypes(aTypes), newArchetype(hashTypes(aTypes), bTypes, registry))

	assert.Panics(t, func() { storage.Spawn(hashA{V: 1}) })
	assert.NotPanics(t, func() { storage.Spawn(hashB{V: 1}) })
}

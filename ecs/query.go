package ecs

import "iter"

// Query wraps a View with per-tick caching. Execute snapshots the matching
// entities; Iter then replays the snapshot without touching archetype metadata.
// The Scheduler executes every Query field of a system right before the system runs.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	items      []T
	cacheValid bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to a storage and drops any cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.items = q.items[:0]
	q.cacheValid = false
}

// Execute rebuilds the snapshot of matching entities.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.order {
			if q.view.matches(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.items = q.items[:0]
	for _, archetype := range q.cachedArchetypes {
		for item := range q.view.iterArchetype(archetype) {
			q.items = append(q.items, item)
		}
	}

	q.cacheValid = true
}

// Len returns the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.items)
}

// Iter returns an iterator over the snapshot taken by the last Execute.
// Panics if Execute has never been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

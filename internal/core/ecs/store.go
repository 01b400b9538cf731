package ecs

import "reflect"

// StoreID identifies a component store inside a Registry. Systems declare
// their read and write sets in StoreIDs.
type StoreID int

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
	ID() StoreID
	Name() string
	bind(id StoreID)
}

// Store is a sparse set of component pointers: a dense slice iterated in
// insertion order plus an index map for O(1) lookup. Removal swaps the last
// element into the hole, so iteration order is stable within a run only as
// long as the store is not mutated.
// No reflect on the hot path, no interface{} — pure generics.
type Store[T any] struct {
	id    StoreID
	name  string
	ids   []EntityID
	dense []*T
	index map[EntityID]int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		id:    -1,
		name:  reflect.TypeFor[T]().Name(),
		ids:   make([]EntityID, 0, 64),
		dense: make([]*T, 0, 64),
		index: make(map[EntityID]int, 64),
	}
}

func (s *Store[T]) ID() StoreID     { return s.id }
func (s *Store[T]) Name() string    { return s.name }
func (s *Store[T]) bind(id StoreID) { s.id = id }

// Set attaches c to id, replacing any previous value in place so the entity
// keeps its iteration slot.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return
	}
	s.index[id] = len(s.dense)
	s.ids = append(s.ids, id)
	s.dense = append(s.dense, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.dense[i], true
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.ids[i] = s.ids[last]
		s.index[s.ids[i]] = i
	}
	s.dense[last] = nil
	s.dense = s.dense[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Each visits every component in dense order. fn must not add or remove
// components of this store; use the World command buffer for that.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, c := range s.dense {
		fn(s.ids[i], c)
	}
}

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package surface

import "sort"

// Store is the keyed object arena shared by the built-in backends.
// Objects live in a slice ordered back to front; an identifier index maps
// IDs to slots. Store implements the retained half of Surface; backends
// embed it and add rasterization.
type Store struct {
	objects []Object
	index   map[string]int
}

// NewStore creates an empty object store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Upsert adds the object or refreshes it in place, preserving draw order
// for existing IDs.
func (s *Store) Upsert(obj Object) {
	if i, ok := s.index[obj.ID]; ok {
		s.objects[i] = obj
		return
	}
	s.index[obj.ID] = len(s.objects)
	s.objects = append(s.objects, obj)
}

// Object returns the object with the given ID.
func (s *Store) Object(id string) (Object, bool) {
	i, ok := s.index[id]
	if !ok {
		return Object{}, false
	}
	return s.objects[i], true
}

// Remove deletes the object with the given ID, if present.
func (s *Store) Remove(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].ID] = j
	}
}

// Objects returns a copy of the object list in draw order, back to front.
func (s *Store) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of retained objects.
func (s *Store) Len() int { return len(s.objects) }

// Clear removes every object.
func (s *Store) Clear() {
	s.objects = s.objects[:0]
	for id := range s.index {
		delete(s.index, id)
	}
}

// Reorder sorts draw order by Z ascending. The frame guide is pinned to
// the very back; synthesized backgrounds sort behind other objects that
// share their Z. The sort is stable so equal keys keep insertion order.
func (s *Store) Reorder() {
	sort.SliceStable(s.objects, func(i, j int) bool {
		a, b := s.objects[i], s.objects[j]
		if (a.Kind == KindFrameGuide) != (b.Kind == KindFrameGuide) {
			return a.Kind == KindFrameGuide
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if (a.Kind == KindBackground) != (b.Kind == KindBackground) {
			return a.Kind == KindBackground
		}
		return false
	})
	for i, obj := range s.objects {
		s.index[obj.ID] = i
	}
}

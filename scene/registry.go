// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Package scene keeps an interactive canvas consistent with a time-indexed
// element list: it projects domain elements into visual objects, rebuilds
// scenes, and reconciles pointer gestures back into element patches.
package scene

import (
	"log/slog"
	"sync"

	"github.com/openreel/stage/element"
	"github.com/openreel/stage/internal/xlog"
)

// Entry is the registry record for one projected element: the last domain
// snapshot applied to the scene and the frame effect resolved for it.
type Entry struct {
	Element element.Element
	Effect  *element.FrameEffect
}

// Registry owns the mapping from element identifier to its last projected
// state. It is exclusively mutated by the scene package; everything else
// reads. Entries carry no ordering beyond one per live identifier.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	log     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		log:     xlog.Or(log),
	}
}

// ResolveActiveEffect returns the frame effect active at time t, or nil.
//
// Activation windows within one element are expected not to overlap; if
// they do (a data inconsistency) the first effect in declared order wins.
func (r *Registry) ResolveActiveEffect(el element.Element, t float64) *element.FrameEffect {
	for i := range el.FrameEffects {
		if el.FrameEffects[i].ActiveAt(t) {
			if matches := countActive(el.FrameEffects, t); matches > 1 {
				r.log.Warn("overlapping frame effect windows",
					"element", el.ID, "time", t, "matches", matches)
			}
			fe := el.FrameEffects[i]
			return &fe
		}
	}
	return nil
}

// Record overwrites the entry for id unconditionally.
func (r *Registry) Record(id string, el element.Element, fe *element.FrameEffect) {
	r.mu.Lock()
	r.entries[id] = Entry{Element: el, Effect: fe}
	r.mu.Unlock()
}

// Forget removes the entry for id, if present.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Lookup returns the entry for id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// IDs returns the identifiers of all live entries.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func countActive(effects []element.FrameEffect, t float64) int {
	n := 0
	for i := range effects {
		if effects[i].ActiveAt(t) {
			n++
		}
	}
	return n
}

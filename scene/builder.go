// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/internal/xlog"
	"github.com/openreel/stage/surface"
)

// ErrSurfaceNotReady is returned when a rebuild is requested before a
// rendering surface exists. The request is a logged no-op; a later rebuild
// with a surface attached recovers.
var ErrSurfaceNotReady = errors.New("scene: surface not ready")

// Builder orchestrates full and partial scene rebuilds.
//
// Individual element projections within one Rebuild are independent and
// run concurrently; the surface itself is not safe for concurrent
// mutation, so commits are serialized under the builder's lock and the
// final reorder runs only after every projection joined.
//
// A Rebuild superseded by a newer call lets in-flight projections finish,
// but results for elements absent from the newer list are discarded at
// commit instead of being applied.
type Builder struct {
	surf    surface.Surface
	proj    *Projector
	reg     *Registry
	log     *slog.Logger
	workers int

	mu   sync.Mutex
	gen  atomic.Uint64
	live map[string]struct{}
}

// NewBuilder creates a builder projecting onto surf. workers bounds the
// number of concurrent projections; values < 1 use one per CPU.
func NewBuilder(surf surface.Surface, proj *Projector, reg *Registry, log *slog.Logger, workers int) *Builder {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Builder{
		surf:    surf,
		proj:    proj,
		reg:     reg,
		log:     xlog.Or(log),
		workers: workers,
		live:    make(map[string]struct{}),
	}
}

// Rebuild projects the supplied element list for playback time t.
//
// With opts.CleanAndAdd all existing visual objects are cleared first
// (the ambient background color survives); otherwise objects refresh in
// place and objects belonging to elements no longer in the list are
// removed. Per-element failures are logged, skipped and joined into the
// returned error; they never cancel sibling projections or the final
// reorder. Rebuild returns once the scene is fully committed and ordered.
func (b *Builder) Rebuild(ctx context.Context, elements []element.Element, t float64, md geom.Metadata, opts BuildOptions) error {
	if b.surf == nil {
		b.log.Warn("rebuild requested without a surface")
		return ErrSurfaceNotReady
	}

	gen := b.gen.Add(1)

	live := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		live[el.ID] = struct{}{}
	}

	b.mu.Lock()
	b.live = live
	if opts.CleanAndAdd {
		b.surf.Clear()
	} else {
		for _, obj := range b.surf.Objects() {
			if obj.ElementID == "" {
				continue
			}
			if _, ok := live[obj.ElementID]; !ok {
				b.surf.Remove(obj.ID)
			}
		}
	}
	for _, id := range b.reg.IDs() {
		if _, ok := live[id]; !ok {
			b.reg.Forget(id)
		}
	}
	b.mu.Unlock()

	var (
		errMu sync.Mutex
		errs  []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, el := range elements {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			objs, fe, err := b.proj.Build(el, i, t, md, opts)
			if err != nil {
				b.log.Warn("skipping element", "id", el.ID, "kind", el.Kind.String(), "error", err)
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
				return nil
			}
			b.commit(gen, el, fe, objs)
			return nil
		})
	}
	_ = g.Wait() // join barrier: ordering must not run before all projections

	b.mu.Lock()
	if b.gen.Load() == gen {
		b.surf.Reorder()
	}
	b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ProjectOne refreshes a single element in place at list position idx.
// No reorder runs: geometry changes alone never affect stacking.
func (b *Builder) ProjectOne(ctx context.Context, el element.Element, idx int, t float64, md geom.Metadata, opts BuildOptions) error {
	if b.surf == nil {
		b.log.Warn("projection requested without a surface")
		return ErrSurfaceNotReady
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	objs, fe, err := b.proj.Build(el, idx, t, md, opts)
	if err != nil {
		b.log.Warn("skipping element", "id", el.ID, "kind", el.Kind.String(), "error", err)
		return err
	}

	b.mu.Lock()
	b.live[el.ID] = struct{}{}
	b.mu.Unlock()
	b.commit(b.gen.Load(), el, fe, objs)
	return nil
}

// commit applies projection results under the builder lock. When the
// rebuild that produced them has been superseded, results are applied
// only if the element is still present in the newest list.
func (b *Builder) commit(gen uint64, el element.Element, fe *element.FrameEffect, objs []surface.Object) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.gen.Load() != gen {
		if _, ok := b.live[el.ID]; !ok {
			b.log.Debug("discarding superseded projection", "id", el.ID)
			return
		}
	}
	for _, obj := range objs {
		b.surf.Upsert(obj)
	}
	b.reg.Record(el.ID, el, fe)
}

// InstallFrameGuide places the non-interactive frame boundary outline.
// Reorder keeps it at the very back regardless of stacking keys.
func (b *Builder) InstallFrameGuide(md geom.Metadata) error {
	if b.surf == nil {
		return ErrSurfaceNotReady
	}
	if !md.Valid() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.surf.Upsert(surface.Object{
		ID:     surface.FrameGuideID,
		Kind:   surface.KindFrameGuide,
		X:      md.OffsetX,
		Y:      md.OffsetY,
		Width:  md.Width - 2*md.OffsetX,
		Height: md.Height - 2*md.OffsetY,
	})
	b.surf.Reorder()
	return nil
}

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/gg"

	"github.com/openreel/stage/config"
	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/scene"
	"github.com/openreel/stage/surface"
)

// Engine is the canvas–timeline synchronization facade. It wires the
// coordinate mapper, scene registry, projector, builder and gesture
// reconciler around one rendering surface.
//
// The engine owns the surface and the registry; the external timeline
// store owns the elements and is only ever written through the patches
// emitted via the registered callbacks.
type Engine struct {
	cfg    config.Config
	log    *slog.Logger
	mapper geom.Mapper
	reg    *scene.Registry
	proj   *scene.Projector

	mu      sync.Mutex
	surf    surface.Surface
	builder *scene.Builder
	recon   *scene.Reconciler
	cb      scene.Callbacks

	lastElements []element.Element
	lastTime     float64
	lastOpts     scene.BuildOptions
	haveScene    bool
}

// New creates an engine. The zero configuration is config.Default; a
// surface may be attached now or later via AttachSurface.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: o.cfg,
		log: o.logger,
		cb:  o.callbacks,
	}
	e.reg = scene.NewRegistry(o.logger)
	e.proj = scene.NewProjector(e.reg, o.logger)
	if o.surf != nil {
		e.attach(o.surf)
	}
	if o.captions.ApplyToAll || o.captions.Style != (element.CaptionStyle{}) {
		e.lastOpts.Captions = o.captions
		if e.recon != nil {
			e.recon.SetCaptionProps(o.captions)
		}
	}
	return e, nil
}

// AttachSurface installs (or replaces) the rendering surface. Replacing a
// surface drops all previously projected objects; the next Rebuild
// repopulates it.
func (e *Engine) AttachSurface(s surface.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attach(s)
}

func (e *Engine) attach(s surface.Surface) {
	e.surf = s
	s.SetBackground(gg.Hex(e.cfg.BackgroundColor).Color())
	if l, ok := s.(interface{ SetLogger(*slog.Logger) }); ok {
		l.SetLogger(e.log)
	}
	e.builder = scene.NewBuilder(s, e.proj, e.reg, e.log, e.cfg.Workers)
	e.recon = scene.NewReconciler(e.reg, s, e.cb, e.log)
	e.recon.SetCaptionProps(e.lastOpts.Captions)
}

// Resize recomputes the video/canvas mapping and, when a scene has been
// built before, rebuilds it under the fresh transform so no stale metadata
// stays visible. It returns the metadata now in effect.
func (e *Engine) Resize(video, canvas geom.Size) geom.Metadata {
	md := e.mapper.Compute(video, canvas, e.cfg.FrameScale, e.cfg.DevicePixelRatio)
	if !md.Valid() {
		e.log.Warn("resize ignored: dimensions not ready",
			"video", video, "canvas", canvas)
		return md
	}

	e.mu.Lock()
	builder := e.builder
	elements := e.lastElements
	t := e.lastTime
	opts := e.lastOpts
	rebuild := e.haveScene
	e.mu.Unlock()

	if builder == nil {
		return md
	}
	if rebuild {
		opts.CleanAndAdd = true
		if err := builder.Rebuild(context.Background(), elements, t, md, opts); err != nil {
			e.log.Warn("rebuild after resize", "error", err)
		}
	}
	if e.cfg.FrameGuide {
		if err := builder.InstallFrameGuide(md); err != nil {
			e.log.Warn("frame guide install", "error", err)
		}
	}
	return md
}

// Metadata returns the current video/canvas mapping. Until the first
// successful Resize it reports invalid metadata.
func (e *Engine) Metadata() geom.Metadata {
	return e.mapper.Metadata()
}

// Rebuild projects the element list for playback time t. See
// scene.Builder.Rebuild for the full contract; the engine additionally
// remembers the list so a later Resize can restore the scene.
func (e *Engine) Rebuild(ctx context.Context, elements []element.Element, t float64, opts scene.BuildOptions) error {
	e.mu.Lock()
	e.lastElements = elements
	e.lastTime = t
	e.lastOpts = opts
	e.haveScene = true
	builder := e.builder
	recon := e.recon
	e.mu.Unlock()

	if builder == nil {
		e.log.Warn("rebuild requested without a surface")
		return scene.ErrSurfaceNotReady
	}
	recon.SetCaptionProps(opts.Captions)
	return builder.Rebuild(ctx, elements, t, e.mapper.Metadata(), opts)
}

// ProjectOne incrementally refreshes a single element at list position
// idx without rebuilding or reordering the rest of the scene.
func (e *Engine) ProjectOne(ctx context.Context, el element.Element, idx int, t float64) error {
	e.mu.Lock()
	builder := e.builder
	opts := e.lastOpts
	e.mu.Unlock()

	if builder == nil {
		return scene.ErrSurfaceNotReady
	}
	opts.CleanAndAdd = false
	return builder.ProjectOne(ctx, el, idx, t, e.mapper.Metadata(), opts)
}

// HandleInteraction feeds a completed pointer interaction to the gesture
// reconciler. Events are processed strictly in arrival order.
func (e *Engine) HandleInteraction(ev scene.Interaction) {
	e.mu.Lock()
	recon := e.recon
	e.mu.Unlock()

	if recon == nil {
		return
	}
	recon.Handle(ev, e.mapper.Metadata())
}

// Close releases the attached surface, if any.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.surf == nil {
		return nil
	}
	return e.surf.Close()
}

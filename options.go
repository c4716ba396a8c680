// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"log/slog"

	"github.com/openreel/stage/config"
	"github.com/openreel/stage/element"
	"github.com/openreel/stage/scene"
	"github.com/openreel/stage/surface"
)

// Option configures an Engine during creation.
//
// Example:
//
//	eng, err := stage.New(
//	    stage.WithSurface(surf),
//	    stage.WithConfig(cfg),
//	    stage.WithCallbacks(scene.Callbacks{OnUpdate: store.Apply}),
//	)
type Option func(*engineOptions)

type engineOptions struct {
	surf      surface.Surface
	cfg       config.Config
	logger    *slog.Logger
	callbacks scene.Callbacks
	captions  element.CaptionProps
}

func defaultOptions() engineOptions {
	return engineOptions{
		cfg:    config.Default(),
		logger: Logger(),
	}
}

// WithSurface attaches the rendering surface the engine drives. Without
// one, rebuilds no-op with ErrSurfaceNotReady until AttachSurface is
// called.
func WithSurface(s surface.Surface) Option {
	return func(o *engineOptions) { o.surf = s }
}

// WithConfig supplies engine configuration. The config must already be
// validated; New validates again and rejects bad values.
func WithConfig(cfg config.Config) Option {
	return func(o *engineOptions) { o.cfg = cfg }
}

// WithLogger overrides the package default logger for this engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCallbacks registers the notification sinks for selection, element
// update and caption broadcast events. Callbacks are scoped to this engine
// instance; two engines never observe each other's events.
func WithCallbacks(cb scene.Callbacks) Option {
	return func(o *engineOptions) { o.callbacks = cb }
}

// WithCaptionProps sets the initial global caption options.
func WithCaptionProps(props element.CaptionProps) Option {
	return func(o *engineOptions) { o.captions = props }
}

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Package stage keeps an interactive 2D canvas consistent with a
// time-indexed collection of video-editing timeline elements.
//
// The engine maintains a reversible affine mapping between video space and
// canvas space, projects domain elements into visual objects on a rendering
// surface, and reconciles pointer gestures on those objects back into
// type-specific patches the external timeline store applies.
//
// A minimal host looks like:
//
//	surf, _ := surface.New(surface.Options{Width: 960, Height: 540})
//	eng, _ := stage.New(
//	    stage.WithSurface(surf),
//	    stage.WithCallbacks(scene.Callbacks{
//	        OnUpdate: store.Apply,
//	        OnSelect: ui.Select,
//	    }),
//	)
//	eng.Resize(geom.Sz(1920, 1080), geom.Sz(960, 540))
//	eng.Rebuild(ctx, elements, playhead, scene.BuildOptions{})
//
// The engine owns the surface and its visual objects exclusively; the
// timeline store stays read-only to the engine except through emitted
// patches.
package stage

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package geom

import "sync"

// Metadata describes the affine mapping between video space (the logical
// coordinate system of the authored project) and canvas space (device pixels
// on the rendering surface).
//
// ScaleX/ScaleY already include the device pixel ratio and the frame scale.
// The frame scale leaves a uniform margin around the visible frame without
// changing the underlying video resolution; the leftover margin is split
// evenly, so the mapped frame stays centered.
type Metadata struct {
	// Width and Height are the canvas dimensions in device pixels.
	Width, Height float64

	// AspectRatio is the video aspect ratio (width / height).
	AspectRatio float64

	// ScaleX and ScaleY map video-space units to canvas-space units.
	ScaleX, ScaleY float64

	// FrameScale is the uniform padding factor in (0, 1] that was applied.
	FrameScale float64

	// OffsetX and OffsetY are the canvas-space coordinates of the video
	// frame's top-left corner.
	OffsetX, OffsetY float64

	forward Matrix
	inverse Matrix
	valid   bool
}

// Valid reports whether the metadata was produced from positive video and
// canvas dimensions. The zero Metadata is not valid.
func (md Metadata) Valid() bool { return md.valid }

// ToCanvas maps a video-space point to canvas space.
func (md Metadata) ToCanvas(p Point) Point {
	if !md.valid {
		return p
	}
	return md.forward.Apply(p)
}

// ToVideo maps a canvas-space point back to video space.
// ToVideo is the exact inverse of ToCanvas within floating-point tolerance.
func (md Metadata) ToVideo(p Point) Point {
	if !md.valid {
		return p
	}
	return md.inverse.Apply(p)
}

// ToCanvasSize scales a video-space size to canvas space.
func (md Metadata) ToCanvasSize(s Size) Size {
	if !md.valid {
		return s
	}
	return Size{Width: s.Width * md.ScaleX, Height: s.Height * md.ScaleY}
}

// ToVideoSize scales a canvas-space size back to video space.
func (md Metadata) ToVideoSize(s Size) Size {
	if !md.valid || md.ScaleX == 0 || md.ScaleY == 0 {
		return s
	}
	return Size{Width: s.Width / md.ScaleX, Height: s.Height / md.ScaleY}
}

// Mapper computes and retains the video/canvas mapping.
//
// Mapper never publishes a partially computed transform: when Compute is
// called with non-positive dimensions (which happens transiently during
// initial layout) the previous metadata is kept and returned unchanged.
// The zero value is ready to use and reports invalid metadata until the
// first successful Compute.
type Mapper struct {
	mu   sync.RWMutex
	meta Metadata
}

// Compute derives fresh metadata for the given video and canvas sizes.
//
// frameScale in (0, 1] uniformly shrinks the mapped frame; values outside
// that range are treated as 1. dpr is the device pixel ratio converting the
// caller's canvas size to device pixels; values <= 0 are treated as 1.
//
// If either size has a non-positive dimension the previous metadata is
// returned unchanged.
func (m *Mapper) Compute(video, canvas Size, frameScale, dpr float64) Metadata {
	if !video.Positive() || !canvas.Positive() {
		return m.Metadata()
	}
	if frameScale <= 0 || frameScale > 1 {
		frameScale = 1
	}
	if dpr <= 0 {
		dpr = 1
	}

	cw := canvas.Width * dpr
	ch := canvas.Height * dpr
	scaleX := cw / video.Width * frameScale
	scaleY := ch / video.Height * frameScale
	offsetX := cw * (1 - frameScale) / 2
	offsetY := ch * (1 - frameScale) / 2

	forward := Translate(offsetX, offsetY).Multiply(Scale(scaleX, scaleY))
	meta := Metadata{
		Width:       cw,
		Height:      ch,
		AspectRatio: video.AspectRatio(),
		ScaleX:      scaleX,
		ScaleY:      scaleY,
		FrameScale:  frameScale,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
		forward:     forward,
		inverse:     forward.Invert(),
		valid:       true,
	}

	m.mu.Lock()
	m.meta = meta
	m.mu.Unlock()
	return meta
}

// Metadata returns the most recently computed metadata.
func (m *Mapper) Metadata() Metadata {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.meta
}

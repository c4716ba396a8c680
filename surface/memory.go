// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/draw"
)

// Memory is the retained-only surface backend. It keeps the object list
// and the background color but rasterizes nothing beyond a solid fill;
// Snapshot returns the background. It backs tests and headless callers.
type Memory struct {
	*Store
	width, height int
	background    color.Color
	closed        bool
}

// NewMemory creates a retained-only surface of the given size.
func NewMemory(width, height int) *Memory {
	return &Memory{
		Store:      NewStore(),
		width:      width,
		height:     height,
		background: color.Transparent,
	}
}

// Width returns the surface width in device pixels.
func (m *Memory) Width() int { return m.width }

// Height returns the surface height in device pixels.
func (m *Memory) Height() int { return m.height }

// SetBackground sets the ambient background color.
func (m *Memory) SetBackground(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	m.background = c
}

// Background returns the ambient background color.
func (m *Memory) Background() color.Color { return m.background }

// Flush is a no-op for the retained-only backend.
func (m *Memory) Flush() error {
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Snapshot returns an image filled with the background color.
func (m *Memory) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(m.background), image.Point{}, draw.Src)
	return img
}

// Close marks the surface closed. Idempotent.
func (m *Memory) Close() error {
	m.closed = true
	return nil
}

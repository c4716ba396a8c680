// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package element

import "github.com/openreel/stage/geom"

// Patch is a type-specific update proposal for a domain element. Nil fields
// are untouched; the external timeline store applies patches in the order
// they are emitted to keep undo/redo history faithful.
type Patch struct {
	X        *float64
	Y        *float64
	Rotation *float64
	Width    *float64
	Height   *float64
	Radius   *float64

	// Frame targets the element's own frame geometry.
	Frame *FramePatch

	// FrameEffectID scopes the frame patch to a time-scoped effect instead
	// of the element's base frame.
	FrameEffectID string

	// Caption carries a shared caption style update for broadcast patches.
	Caption *CaptionStyle
}

// FramePatch updates framed-group geometry.
type FramePatch struct {
	Position geom.Point
	Size     geom.Size
	Rotation float64
}

// IsZero reports whether the patch carries no changes.
func (p Patch) IsZero() bool {
	return p.X == nil && p.Y == nil && p.Rotation == nil &&
		p.Width == nil && p.Height == nil && p.Radius == nil &&
		p.Frame == nil && p.FrameEffectID == "" && p.Caption == nil
}

// F is a helper returning a pointer to v for patch construction.
func F(v float64) *float64 { return &v }

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Package surface abstracts the rendering surface the engine synchronizes:
// a retained list of visual objects that backends may rasterize.
//
// The engine exclusively creates, updates, removes and reorders objects;
// it never draws pixels itself. Backends register themselves by name (see
// Register) the same way alternative rasterizers would.
//
// Surfaces are NOT safe for concurrent mutation. The scene builder
// serializes all writes.
package surface

import (
	"errors"
	"image"
	"image/color"
)

// FrameGuideID is the reserved object ID of the non-interactive visual
// marking the video frame boundary. It carries no element correlation and
// always sorts to the very back.
const FrameGuideID = "frame-guide"

// Kind identifies what a visual object renders as.
type Kind uint8

const (
	// KindMedia renders decoded video or image frames.
	KindMedia Kind = iota

	// KindRect renders a filled, optionally rounded rectangle.
	KindRect

	// KindCircle renders a filled circle.
	KindCircle

	// KindText renders a text run.
	KindText

	// KindBackground is the synthesized letterbox/pillarbox fill placed
	// behind scene-timeline media.
	KindBackground

	// KindFrameGuide is the frame boundary outline.
	KindFrameGuide
)

// Geometry is the screen-space placement of an object as reported by
// pointer interactions.
type Geometry struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64
}

// Object is one retained visual object. The ID is the surface handle;
// ElementID correlates it back to a domain element and is empty for
// surface artifacts such as the frame guide.
type Object struct {
	ID        string
	ElementID string
	Kind      Kind

	// Canvas-space placement. X/Y is the top-left corner; Rotation is in
	// degrees about the object center.
	X, Y          float64
	Width, Height float64
	Rotation      float64

	// Z is the declared stacking key; higher draws in front.
	Z int

	Fill         string // hex color
	Opacity      float64
	CornerRadius float64

	Text     string
	FontSize float64

	Src      string
	SnapTime float64

	// Grouped marks an object rendered as a framed group, meaning frame
	// geometry (not base props) drives its placement.
	Grouped bool
}

// Geometry returns the object's screen-space placement.
func (o Object) Geometry() Geometry {
	return Geometry{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height, Rotation: o.Rotation}
}

// Surface is the rendering surface capability the engine drives.
type Surface interface {
	// Width returns the surface width in device pixels.
	Width() int

	// Height returns the surface height in device pixels.
	Height() int

	// SetBackground sets the ambient background color. The setting
	// survives Clear.
	SetBackground(c color.Color)

	// Background returns the ambient background color.
	Background() color.Color

	// Upsert adds the object, or refreshes it in place when an object
	// with the same ID already exists. Upserting never duplicates.
	Upsert(obj Object)

	// Object returns the object with the given ID.
	Object(id string) (Object, bool)

	// Remove deletes the object with the given ID, if present.
	Remove(id string)

	// Objects returns all objects in current draw order, back to front.
	// The returned slice is a copy.
	Objects() []Object

	// Reorder sorts draw order by Z ascending. The frame guide is pinned
	// to the very back regardless of Z; synthesized backgrounds sort
	// behind other objects sharing their Z.
	Reorder()

	// Clear removes every object. The background color setting and the
	// surface dimensions are retained.
	Clear()

	// Flush rasterizes the retained object list on backends that draw.
	// Retained-only backends return nil without work.
	Flush() error

	// Snapshot returns the rasterized surface contents as an RGBA image.
	Snapshot() *image.RGBA

	// Close releases backend resources. Close is idempotent.
	Close() error
}

// ErrClosed is returned by operations on a closed surface.
var ErrClosed = errors.New("surface: closed")

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Package element defines the domain elements a video-editing timeline
// places on the canvas: clips, images, shapes, text and captions, together
// with their time-scoped frame effects.
package element

import "github.com/openreel/stage/geom"

// Kind identifies the closed set of element variants.
// Every consumer switches over Kind exhaustively; adding a variant here
// requires a handler in the scene projector.
type Kind uint8

const (
	KindVideo Kind = iota
	KindImage
	KindRect
	KindCircle
	KindText
	KindCaption
	KindBackground
)

var kindNames = [...]string{
	KindVideo:      "video",
	KindImage:      "image",
	KindRect:       "rect",
	KindCircle:     "circle",
	KindText:       "text",
	KindCaption:    "caption",
	KindBackground: "background",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsMedia reports whether the kind renders decoded media frames.
func (k Kind) IsMedia() bool {
	return k == KindVideo || k == KindImage
}

// Timeline distinguishes where on the timeline an element lives.
// Scene elements get a synthesized letterbox background behind them;
// overlay elements do not.
type Timeline uint8

const (
	TimelineScene Timeline = iota
	TimelineOverlay
)

// String returns the wire name of the timeline kind.
func (t Timeline) String() string {
	if t == TimelineScene {
		return "scene"
	}
	return "overlay"
}

// Props holds the kind-dependent visual properties of an element.
// All geometry is in video space. Fields that do not apply to a kind are
// left at their zero value.
type Props struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
	Rotation      float64 // degrees, clockwise
	Opacity       float64 // 0..1; 0 means "unset", rendered as 1
	CornerRadius  float64

	// Media fields.
	Src          string
	PlaybackRate float64 // 0 means 1
	Time         float64 // media-local offset in seconds

	// Text fields.
	Text     string
	FontSize float64
	Fill     string // hex color
}

// Frame is the geometry an element uses when it renders as a grouped,
// framed visual.
type Frame struct {
	Position geom.Point
	Size     geom.Size
	Rotation float64
}

// FrameEffect is a time-scoped override of an element's frame geometry,
// active within [Start, End).
type FrameEffect struct {
	ID            string
	Start, End    float64
	FramePosition geom.Point
	FrameSize     geom.Size
}

// ActiveAt reports whether t falls inside the effect's activation window.
func (fe FrameEffect) ActiveAt(t float64) bool {
	return t >= fe.Start && t < fe.End
}

// CaptionStyle is the shared styling applied to caption elements.
type CaptionStyle struct {
	FontSize    float64
	Color       string
	ActiveColor string

	// TextTransform is one of "", "none", "uppercase", "lowercase",
	// "capitalize".
	TextTransform string

	// Language is a BCP-47 tag used for locale-aware case mapping.
	Language string
}

// CaptionProps carries caller-supplied caption options for a rebuild.
// When ApplyToAll is set, edits to any one caption are broadcast as a
// shared style update instead of being scoped to a single element.
type CaptionProps struct {
	ApplyToAll bool
	Style      CaptionStyle
}

// Element is one timeline entry as last read from the external store.
// The engine never mutates elements; it emits patches for the store to apply.
type Element struct {
	ID           string
	Kind         Kind
	Timeline     Timeline
	Start, End   float64 // timeline placement in seconds
	Props        Props
	Frame        *Frame
	FrameEffects []FrameEffect
}

// SnapTime converts a global playback time to the media-local time of this
// element, honoring its playback rate and trim offset. The result is
// forwarded to the rendering surface so the correct source frame shows
// while scrubbing.
func (el Element) SnapTime(t float64) float64 {
	rate := el.Props.PlaybackRate
	if rate <= 0 {
		rate = 1
	}
	return (t-el.Start)*rate + el.Props.Time
}

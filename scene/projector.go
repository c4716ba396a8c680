// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/internal/xlog"
	"github.com/openreel/stage/surface"
)

// BackgroundSuffix derives the handle of the synthesized letterbox fill
// projected behind scene-timeline media.
const BackgroundSuffix = "-background"

// BuildOptions carries caller options for a rebuild or single projection.
type BuildOptions struct {
	// CleanAndAdd clears all existing visual objects (keeping the ambient
	// background color) before the supplied list is projected.
	CleanAndAdd bool

	// Captions holds global caption style overrides.
	Captions element.CaptionProps
}

// Projector turns one domain element into the visual objects that
// represent it at a playback time. Build is pure: it touches neither the
// surface nor the registry, so projections can run concurrently and the
// builder commits results under its own lock.
type Projector struct {
	reg *Registry
	log *slog.Logger
}

// NewProjector creates a projector reading effect state from reg.
func NewProjector(reg *Registry, log *slog.Logger) *Projector {
	return &Projector{reg: reg, log: xlog.Or(log)}
}

// Build produces the visual objects for el at playback time t, positioned
// through md. idx is the element's position in the caller's list and
// becomes the stacking key. Build validates first; malformed geometry
// returns *element.InvalidDataError and no objects.
//
// Build is idempotent by construction: the objects it returns carry stable
// IDs, so committing them twice refreshes rather than duplicates.
func (p *Projector) Build(el element.Element, idx int, t float64, md geom.Metadata, opts BuildOptions) ([]surface.Object, *element.FrameEffect, error) {
	if err := element.Validate(el); err != nil {
		return nil, nil, err
	}

	fe := p.reg.ResolveActiveEffect(el, t)

	var objs []surface.Object
	switch el.Kind {
	case element.KindVideo, element.KindImage:
		objs = p.buildMedia(el, fe, idx, t, md)
	case element.KindRect:
		objs = []surface.Object{p.buildShape(el, idx, md, surface.KindRect)}
	case element.KindCircle:
		objs = []surface.Object{p.buildCircle(el, idx, md)}
	case element.KindText:
		objs = []surface.Object{p.buildText(el, idx, md)}
	case element.KindCaption:
		objs = []surface.Object{p.buildCaption(el, idx, md, opts.Captions)}
	case element.KindBackground:
		objs = []surface.Object{p.buildFrameFill(el.ID, el.ID, el.Props.Fill, idx, md)}
	}
	return objs, fe, nil
}

// buildMedia projects a video or image element. An active frame effect
// supersedes the element's own geometry and the visual renders as a framed
// group; scene-timeline media additionally gets a full-frame letterbox
// fill behind it.
func (p *Projector) buildMedia(el element.Element, fe *element.FrameEffect, idx int, t float64, md geom.Metadata) []surface.Object {
	pos := geom.Pt(el.Props.X, el.Props.Y)
	size := geom.Sz(el.Props.Width, el.Props.Height)
	rotation := el.Props.Rotation
	grouped := false

	switch {
	case fe != nil:
		pos = fe.FramePosition
		size = fe.FrameSize
		grouped = true
	case el.Frame != nil:
		pos = el.Frame.Position
		size = el.Frame.Size
		rotation = el.Frame.Rotation
		grouped = true
	}

	cpos := md.ToCanvas(pos)
	csize := md.ToCanvasSize(size)

	obj := surface.Object{
		ID:           el.ID,
		ElementID:    el.ID,
		Kind:         surface.KindMedia,
		X:            cpos.X,
		Y:            cpos.Y,
		Width:        csize.Width,
		Height:       csize.Height,
		Rotation:     rotation,
		Z:            idx,
		Opacity:      el.Props.Opacity,
		CornerRadius: el.Props.CornerRadius * md.ScaleX,
		Src:          el.Props.Src,
		Grouped:      grouped,
	}
	if el.Kind == element.KindVideo {
		obj.SnapTime = el.SnapTime(t)
	}

	if el.Timeline != element.TimelineScene {
		return []surface.Object{obj}
	}

	fill := p.buildFrameFill(el.ID+BackgroundSuffix, el.ID, el.Props.Fill, idx, md)
	return []surface.Object{fill, obj}
}

func (p *Projector) buildShape(el element.Element, idx int, md geom.Metadata, kind surface.Kind) surface.Object {
	cpos := md.ToCanvas(geom.Pt(el.Props.X, el.Props.Y))
	csize := md.ToCanvasSize(geom.Sz(el.Props.Width, el.Props.Height))
	return surface.Object{
		ID:           el.ID,
		ElementID:    el.ID,
		Kind:         kind,
		X:            cpos.X,
		Y:            cpos.Y,
		Width:        csize.Width,
		Height:       csize.Height,
		Rotation:     el.Props.Rotation,
		Z:            idx,
		Fill:         el.Props.Fill,
		Opacity:      el.Props.Opacity,
		CornerRadius: el.Props.CornerRadius * md.ScaleX,
	}
}

// buildCircle derives width and height from the radius so hit-testing on
// the surface matches the element's declared bounds.
func (p *Projector) buildCircle(el element.Element, idx int, md geom.Metadata) surface.Object {
	cpos := md.ToCanvas(geom.Pt(el.Props.X, el.Props.Y))
	d := 2 * el.Props.Radius
	csize := md.ToCanvasSize(geom.Sz(d, d))
	return surface.Object{
		ID:        el.ID,
		ElementID: el.ID,
		Kind:      surface.KindCircle,
		X:         cpos.X,
		Y:         cpos.Y,
		Width:     csize.Width,
		Height:    csize.Height,
		Rotation:  el.Props.Rotation,
		Z:         idx,
		Fill:      el.Props.Fill,
		Opacity:   el.Props.Opacity,
	}
}

func (p *Projector) buildText(el element.Element, idx int, md geom.Metadata) surface.Object {
	obj := p.buildShape(el, idx, md, surface.KindText)
	obj.Text = el.Props.Text
	obj.FontSize = el.Props.FontSize * md.ScaleY
	return obj
}

// buildCaption projects a caption with caller-supplied style overrides
// layered over the element's own typography.
func (p *Projector) buildCaption(el element.Element, idx int, md geom.Metadata, props element.CaptionProps) surface.Object {
	obj := p.buildText(el, idx, md)

	style := props.Style
	if style.FontSize > 0 {
		obj.FontSize = style.FontSize * md.ScaleY
	}
	if style.Color != "" {
		obj.Fill = style.Color
	}
	obj.Text = TransformText(el.Props.Text, style)
	return obj
}

// buildFrameFill synthesizes a fill covering the full video frame,
// producing the letterbox/pillarbox backdrop.
func (p *Projector) buildFrameFill(id, elementID, fill string, idx int, md geom.Metadata) surface.Object {
	if fill == "" {
		fill = "#000000"
	}
	return surface.Object{
		ID:        id,
		ElementID: elementID,
		Kind:      surface.KindBackground,
		X:         md.OffsetX,
		Y:         md.OffsetY,
		Width:     md.Width - 2*md.OffsetX,
		Height:    md.Height - 2*md.OffsetY,
		Z:         idx,
		Fill:      fill,
	}
}

// TransformText applies a caption text transform using locale-aware case
// mapping. Unknown transforms return the text unchanged.
func TransformText(s string, style element.CaptionStyle) string {
	tag := language.Make(style.Language)
	switch style.TextTransform {
	case "uppercase":
		return cases.Upper(tag).String(s)
	case "lowercase":
		return cases.Lower(tag).String(s)
	case "capitalize":
		return cases.Title(tag).String(s)
	}
	return s
}

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"log/slog"
	"math"
	"sync"

	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/internal/xlog"
	"github.com/openreel/stage/surface"
)

// ActionKind is the transform a completed pointer interaction performed.
type ActionKind uint8

const (
	ActionMove ActionKind = iota
	ActionScaleX
	ActionScaleY
	ActionUniformScale
	ActionRotate
)

var actionNames = [...]string{
	ActionMove:         "move",
	ActionScaleX:       "scaleX",
	ActionScaleY:       "scaleY",
	ActionUniformScale: "uniformScale",
	ActionRotate:       "rotate",
}

// String returns the wire name of the action.
func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// IsScale reports whether the action resizes the target.
func (a ActionKind) IsScale() bool {
	return a == ActionScaleX || a == ActionScaleY || a == ActionUniformScale
}

// Interaction is a pointer-interaction-completed event reported by the
// rendering surface. Original and Result are the target object's screen
// geometry before and after the gesture; ScaleX/ScaleY are the gesture's
// scale factors and may be zero, in which case they are derived from the
// two geometries.
type Interaction struct {
	TargetID string
	Action   ActionKind
	Original surface.Geometry
	Result   surface.Geometry
	ScaleX   float64
	ScaleY   float64
}

// Callbacks are the notification sinks the reconciler emits into. They are
// registered at engine construction and scoped to one engine instance.
type Callbacks struct {
	// OnSelect fires for a pure click: a move gesture that ended exactly
	// where it started.
	OnSelect func(elementID string)

	// OnUpdate proposes a patch the external timeline store must apply.
	OnUpdate func(elementID string, patch element.Patch)

	// OnCaptionBroadcast carries a shared caption style update when
	// applyToAll is active. Conflicting concurrent edits resolve last
	// write wins.
	OnCaptionBroadcast func(patch element.Patch)
}

// Reconciler converts completed pointer gestures on visual objects back
// into type-specific domain patches.
//
// Events are processed strictly in arrival order under a single lock, so
// every emitted patch reaches the store in sequence and undo history
// stays faithful. Each event emits zero or one patch and the reconciler
// returns to idle.
type Reconciler struct {
	reg      *Registry
	surf     surface.Surface
	log      *slog.Logger
	cb       Callbacks
	captions element.CaptionProps

	mu sync.Mutex
}

// NewReconciler creates a reconciler reading object state from surf and
// element state from reg.
func NewReconciler(reg *Registry, surf surface.Surface, cb Callbacks, log *slog.Logger) *Reconciler {
	return &Reconciler{reg: reg, surf: surf, cb: cb, log: xlog.Or(log)}
}

// SetCaptionProps updates the caption options used for broadcast routing.
func (r *Reconciler) SetCaptionProps(props element.CaptionProps) {
	r.mu.Lock()
	r.captions = props
	r.mu.Unlock()
}

// Handle processes one interaction against the current metadata.
//
// Interactions on objects with no correlated element (surface artifacts
// such as the frame guide) are ignored silently. A move that ends at its
// starting position is a selection, not a geometry patch.
func (r *Reconciler) Handle(ev Interaction, md geom.Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.surf.Object(ev.TargetID)
	if !ok || obj.ElementID == "" {
		return
	}

	entry, ok := r.reg.Lookup(obj.ElementID)
	if !ok {
		r.log.Warn("interaction on unregistered element", "id", obj.ElementID)
		return
	}

	if ev.Action == ActionMove &&
		ev.Result.X == ev.Original.X && ev.Result.Y == ev.Original.Y {
		if r.cb.OnSelect != nil {
			r.cb.OnSelect(obj.ElementID)
		}
		return
	}

	sx, sy := ev.scaleFactors()
	el := entry.Element
	videoPos := md.ToVideo(geom.Pt(ev.Result.X, ev.Result.Y))

	switch {
	case el.Kind == element.KindCaption && r.captions.ApplyToAll:
		r.broadcastCaption(el, sy)

	case obj.Grouped:
		r.patchFrame(entry, ev, videoPos, md, sx, sy)

	case el.Kind == element.KindCircle:
		factor := sx
		if ev.Action == ActionScaleY {
			factor = sy
		}
		r.patchCircle(el, ev, videoPos, factor)

	default:
		r.patchShape(el, ev, videoPos, md)
	}
}

// broadcastCaption emits the shared caption style update instead of a
// patch scoped to the gestured element.
func (r *Reconciler) broadcastCaption(el element.Element, sy float64) {
	style := r.captions.Style
	base := style.FontSize
	if base <= 0 {
		base = el.Props.FontSize
	}
	if base > 0 {
		style.FontSize = round2(base * sy)
	}
	if r.cb.OnCaptionBroadcast != nil {
		r.cb.OnCaptionBroadcast(element.Patch{Caption: &style})
	}
}

// patchFrame updates framed-group geometry: the active frame effect when
// one applies, the element's own frame otherwise.
func (r *Reconciler) patchFrame(entry Entry, ev Interaction, videoPos geom.Point, md geom.Metadata, sx, sy float64) {
	patch := element.Patch{
		Frame: &element.FramePatch{
			Position: videoPos,
			Rotation: ev.Result.Rotation,
		},
	}

	if entry.Effect != nil {
		base := entry.Effect.FrameSize
		patch.FrameEffectID = entry.Effect.ID
		patch.Frame.Size = geom.Size{
			Width:  round2(base.Width * sx),
			Height: round2(base.Height * sy),
		}
	} else {
		patch.Frame.Size = md.ToVideoSize(geom.Sz(ev.Result.Width, ev.Result.Height))
	}

	r.emit(entry.Element.ID, patch)
}

// patchCircle scales the radius by the gesture's acting factor and
// re-derives width and height as twice the radius, rounded to two
// decimals. Circles stay circular: whichever axis the handle scaled
// drives the single radius.
func (r *Reconciler) patchCircle(el element.Element, ev Interaction, videoPos geom.Point, s float64) {
	patch := element.Patch{
		X:        element.F(videoPos.X),
		Y:        element.F(videoPos.Y),
		Rotation: element.F(ev.Result.Rotation),
	}
	if ev.Action.IsScale() {
		radius := round2(el.Props.Radius * s)
		patch.Radius = element.F(radius)
		patch.Width = element.F(round2(2 * radius))
		patch.Height = element.F(round2(2 * radius))
	}
	r.emit(el.ID, patch)
}

// patchShape updates plain rectangle/text/generic geometry.
func (r *Reconciler) patchShape(el element.Element, ev Interaction, videoPos geom.Point, md geom.Metadata) {
	patch := element.Patch{
		X:        element.F(videoPos.X),
		Y:        element.F(videoPos.Y),
		Rotation: element.F(ev.Result.Rotation),
	}
	if ev.Action.IsScale() {
		size := md.ToVideoSize(geom.Sz(ev.Result.Width, ev.Result.Height))
		patch.Width = element.F(size.Width)
		patch.Height = element.F(size.Height)
	}
	r.emit(el.ID, patch)
}

func (r *Reconciler) emit(elementID string, patch element.Patch) {
	if r.cb.OnUpdate != nil {
		r.cb.OnUpdate(elementID, patch)
	}
}

// scaleFactors returns the gesture's scale factors, deriving them from
// the before/after geometry when the surface did not report them.
func (ev Interaction) scaleFactors() (sx, sy float64) {
	sx, sy = ev.ScaleX, ev.ScaleY
	if sx == 0 {
		sx = ratio(ev.Result.Width, ev.Original.Width)
	}
	if sy == 0 {
		sy = ratio(ev.Result.Height, ev.Original.Height)
	}
	switch ev.Action {
	case ActionUniformScale:
		sy = sx
	case ActionScaleX:
		sy = 1
	case ActionScaleY:
		sx = 1
	case ActionMove, ActionRotate:
		sx, sy = 1, 1
	}
	return sx, sy
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"context"
	"testing"

	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/surface"
)

type recorder struct {
	selections []string
	updates    []struct {
		id    string
		patch element.Patch
	}
	broadcasts []element.Patch
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnSelect: func(id string) { r.selections = append(r.selections, id) },
		OnUpdate: func(id string, p element.Patch) {
			r.updates = append(r.updates, struct {
				id    string
				patch element.Patch
			}{id, p})
		},
		OnCaptionBroadcast: func(p element.Patch) { r.broadcasts = append(r.broadcasts, p) },
	}
}

// projectScene builds a one-element scene and returns the wired reconciler.
func projectScene(t *testing.T, el element.Element, rec *recorder) (*Reconciler, *surface.Memory, geom.Metadata) {
	t.Helper()
	surf := surface.NewMemory(960, 540)
	reg := NewRegistry(nil)
	b := NewBuilder(surf, NewProjector(reg, nil), reg, nil, 1)
	md := halfScaleMetadata(t)
	if err := b.Rebuild(context.Background(), []element.Element{el}, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return NewReconciler(reg, surf, rec.callbacks(), nil), surf, md
}

func TestPureClickEmitsSelection(t *testing.T) {
	var rec recorder
	r, _, md := projectScene(t, rectElement("a", 100), &rec)

	g := surface.Geometry{X: 50, Y: 0, Width: 50, Height: 50}
	r.Handle(Interaction{TargetID: "a", Action: ActionMove, Original: g, Result: g}, md)

	if len(rec.selections) != 1 || rec.selections[0] != "a" {
		t.Fatalf("selections = %v, want [a]", rec.selections)
	}
	if len(rec.updates) != 0 {
		t.Errorf("updates = %d, want 0 geometry patches for a pure click", len(rec.updates))
	}
}

func TestMovePatchesVideoSpacePosition(t *testing.T) {
	var rec recorder
	r, _, md := projectScene(t, rectElement("a", 100), &rec)

	r.Handle(Interaction{
		TargetID: "a",
		Action:   ActionMove,
		Original: surface.Geometry{X: 50, Y: 0, Width: 50, Height: 50},
		Result:   surface.Geometry{X: 150, Y: 40, Width: 50, Height: 50},
	}, md)

	if len(rec.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(rec.updates))
	}
	patch := rec.updates[0].patch
	if patch.X == nil || *patch.X != 300 || patch.Y == nil || *patch.Y != 80 {
		t.Errorf("patch position = %+v, want video space (300, 80)", patch)
	}
	if patch.Width != nil || patch.Height != nil {
		t.Error("move patch carries size fields")
	}
}

func TestScaleCircleDerivesRadiusAndBounds(t *testing.T) {
	tests := []struct {
		name       string
		ev         Interaction
		wantRadius float64
	}{
		{
			"scaleX doubles radius",
			Interaction{
				TargetID: "c",
				Action:   ActionScaleX,
				ScaleX:   2,
				Original: surface.Geometry{Width: 10, Height: 10},
				Result:   surface.Geometry{Width: 20, Height: 10},
			},
			20,
		},
		{
			"scaleY doubles radius",
			Interaction{
				TargetID: "c",
				Action:   ActionScaleY,
				ScaleY:   2,
				Original: surface.Geometry{Width: 10, Height: 10},
				Result:   surface.Geometry{Width: 10, Height: 20},
			},
			20,
		},
		{
			"uniformScale halves radius",
			Interaction{
				TargetID: "c",
				Action:   ActionUniformScale,
				ScaleX:   0.5,
				Original: surface.Geometry{Width: 10, Height: 10},
				Result:   surface.Geometry{Width: 5, Height: 5},
			},
			5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			el := element.Element{
				ID:    "c",
				Kind:  element.KindCircle,
				Props: element.Props{Radius: 10},
			}
			r, _, md := projectScene(t, el, &rec)

			r.Handle(tt.ev, md)

			if len(rec.updates) != 1 {
				t.Fatalf("updates = %d, want 1", len(rec.updates))
			}
			patch := rec.updates[0].patch
			if patch.Radius == nil || *patch.Radius != tt.wantRadius {
				t.Errorf("radius = %v, want %v", patch.Radius, tt.wantRadius)
			}
			d := 2 * tt.wantRadius
			if patch.Width == nil || *patch.Width != d || patch.Height == nil || *patch.Height != d {
				t.Errorf("bounds = %+v, want width=height=%v", patch, d)
			}
		})
	}
}

func TestScaleRectPatchesSize(t *testing.T) {
	var rec recorder
	r, _, md := projectScene(t, rectElement("a", 0), &rec)

	r.Handle(Interaction{
		TargetID: "a",
		Action:   ActionUniformScale,
		Original: surface.Geometry{Width: 50, Height: 50},
		Result:   surface.Geometry{X: 0, Y: 0, Width: 100, Height: 100, Rotation: 0},
	}, md)

	if len(rec.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(rec.updates))
	}
	patch := rec.updates[0].patch
	if patch.Width == nil || *patch.Width != 200 || patch.Height == nil || *patch.Height != 200 {
		t.Errorf("size = %+v, want video space 200x200", patch)
	}
}

func TestFrameEffectGesturePatchesEffect(t *testing.T) {
	var rec recorder
	el := element.Element{
		ID:       "clip",
		Kind:     element.KindVideo,
		Timeline: element.TimelineOverlay,
		Props:    element.Props{Width: 100, Height: 100, Src: "a.mp4"},
		FrameEffects: []element.FrameEffect{{
			ID: "fx", Start: 0, End: 10,
			FramePosition: geom.Pt(0, 0), FrameSize: geom.Sz(400, 200),
		}},
	}
	r, _, md := projectScene(t, el, &rec)

	r.Handle(Interaction{
		TargetID: "clip",
		Action:   ActionUniformScale,
		ScaleX:   1.5,
		Original: surface.Geometry{Width: 200, Height: 100},
		Result:   surface.Geometry{X: 10, Y: 20, Width: 300, Height: 150},
	}, md)

	if len(rec.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(rec.updates))
	}
	patch := rec.updates[0].patch
	if patch.FrameEffectID != "fx" {
		t.Fatalf("FrameEffectID = %q, want fx", patch.FrameEffectID)
	}
	if patch.Frame == nil {
		t.Fatal("frame patch missing")
	}
	if patch.Frame.Size.Width != 600 || patch.Frame.Size.Height != 300 {
		t.Errorf("frame size = %v, want effect size scaled by 1.5", patch.Frame.Size)
	}
	if patch.Frame.Position != md.ToVideo(geom.Pt(10, 20)) {
		t.Errorf("frame position = %v", patch.Frame.Position)
	}
}

func TestBaseFrameGestureWithoutActiveEffect(t *testing.T) {
	var rec recorder
	el := element.Element{
		ID:       "clip",
		Kind:     element.KindVideo,
		Timeline: element.TimelineOverlay,
		Props:    element.Props{Width: 100, Height: 100, Src: "a.mp4"},
		Frame:    &element.Frame{Position: geom.Pt(0, 0), Size: geom.Sz(100, 100)},
	}
	r, _, md := projectScene(t, el, &rec)

	r.Handle(Interaction{
		TargetID: "clip",
		Action:   ActionMove,
		Original: surface.Geometry{X: 0, Y: 0, Width: 50, Height: 50},
		Result:   surface.Geometry{X: 30, Y: 30, Width: 50, Height: 50, Rotation: 10},
	}, md)

	if len(rec.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(rec.updates))
	}
	patch := rec.updates[0].patch
	if patch.FrameEffectID != "" {
		t.Errorf("FrameEffectID = %q, want base frame patch", patch.FrameEffectID)
	}
	if patch.Frame == nil || patch.Frame.Rotation != 10 {
		t.Errorf("frame patch = %+v", patch.Frame)
	}
}

func TestCaptionApplyToAllBroadcasts(t *testing.T) {
	var rec recorder
	el := element.Element{
		ID:    "cap",
		Kind:  element.KindCaption,
		Props: element.Props{Width: 400, Height: 80, Text: "hi", FontSize: 40},
	}
	r, _, md := projectScene(t, el, &rec)
	r.SetCaptionProps(element.CaptionProps{
		ApplyToAll: true,
		Style:      element.CaptionStyle{FontSize: 40, Color: "#FFF"},
	})

	r.Handle(Interaction{
		TargetID: "cap",
		Action:   ActionUniformScale,
		ScaleX:   1.5,
		Original: surface.Geometry{Width: 200, Height: 40},
		Result:   surface.Geometry{Width: 300, Height: 60},
	}, md)

	if len(rec.broadcasts) != 1 {
		t.Fatalf("broadcasts = %d, want 1", len(rec.broadcasts))
	}
	if len(rec.updates) != 0 {
		t.Error("applyToAll gesture also emitted a scoped update")
	}
	style := rec.broadcasts[0].Caption
	if style == nil || style.FontSize != 60 {
		t.Errorf("broadcast style = %+v, want FontSize 60", style)
	}
}

func TestInteractionOnArtifactIgnored(t *testing.T) {
	var rec recorder
	r, surf, md := projectScene(t, rectElement("a", 0), &rec)
	surf.Upsert(surface.Object{ID: surface.FrameGuideID, Kind: surface.KindFrameGuide})

	r.Handle(Interaction{TargetID: surface.FrameGuideID, Action: ActionMove,
		Result: surface.Geometry{X: 5}}, md)
	r.Handle(Interaction{TargetID: "no-such-object", Action: ActionMove}, md)

	if len(rec.selections)+len(rec.updates)+len(rec.broadcasts) != 0 {
		t.Error("artifact interaction produced notifications")
	}
}

func TestActionKindStrings(t *testing.T) {
	tests := []struct {
		a    ActionKind
		want string
	}{
		{ActionMove, "move"},
		{ActionScaleX, "scaleX"},
		{ActionScaleY, "scaleY"},
		{ActionUniformScale, "uniformScale"},
		{ActionRotate, "rotate"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

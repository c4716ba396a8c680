// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/surface"
)

func newTestBuilder(t *testing.T) (*Builder, *surface.Memory, *Registry) {
	t.Helper()
	surf := surface.NewMemory(960, 540)
	reg := NewRegistry(nil)
	proj := NewProjector(reg, nil)
	return NewBuilder(surf, proj, reg, nil, 4), surf, reg
}

func rectElement(id string, x float64) element.Element {
	return element.Element{
		ID:    id,
		Kind:  element.KindRect,
		Props: element.Props{X: x, Width: 100, Height: 100, Fill: "#336699"},
	}
}

func TestRebuildSkipsMalformedElements(t *testing.T) {
	b, surf, _ := newTestBuilder(t)
	md := halfScaleMetadata(t)

	elements := []element.Element{
		rectElement("ok-1", 0),
		{ID: "broken", Kind: element.KindRect, Props: element.Props{Height: 50}},
		rectElement("ok-2", 200),
	}

	err := b.Rebuild(context.Background(), elements, 0, md, BuildOptions{})
	var ide *element.InvalidDataError
	if !errors.As(err, &ide) {
		t.Fatalf("err = %v, want joined *element.InvalidDataError", err)
	}
	if ide.Field != "width" {
		t.Errorf("field = %q, want width", ide.Field)
	}
	if surf.Len() != 2 {
		t.Errorf("objects = %d, want exactly the two valid elements", surf.Len())
	}
	for _, id := range []string{"ok-1", "ok-2"} {
		if _, ok := surf.Object(id); !ok {
			t.Errorf("valid element %q missing from scene", id)
		}
	}
}

func TestRebuildCleanAndAddPreservesBackground(t *testing.T) {
	b, surf, reg := newTestBuilder(t)
	md := halfScaleMetadata(t)
	bg := color.RGBA{R: 5, G: 6, B: 7, A: 255}
	surf.SetBackground(bg)

	if err := b.Rebuild(context.Background(), []element.Element{rectElement("a", 0)}, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("first rebuild: %v", err)
	}

	if err := b.Rebuild(context.Background(), nil, 0, md, BuildOptions{CleanAndAdd: true}); err != nil {
		t.Fatalf("empty rebuild: %v", err)
	}
	if surf.Len() != 0 {
		t.Errorf("objects = %d after clean empty rebuild, want 0", surf.Len())
	}
	if surf.Background() != bg {
		t.Error("background color lost across cleanAndAdd")
	}
	if reg.Len() != 0 {
		t.Errorf("registry entries = %d, want 0", reg.Len())
	}
}

func TestRebuildRemovesDepartedElements(t *testing.T) {
	b, surf, reg := newTestBuilder(t)
	md := halfScaleMetadata(t)
	ctx := context.Background()

	if err := b.Rebuild(ctx, []element.Element{rectElement("keep", 0), rectElement("drop", 100)}, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if err := b.Rebuild(ctx, []element.Element{rectElement("keep", 0)}, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if _, ok := surf.Object("drop"); ok {
		t.Error("departed element still on surface")
	}
	if _, ok := reg.Lookup("drop"); ok {
		t.Error("departed element still in registry")
	}
	if _, ok := surf.Object("keep"); !ok {
		t.Error("surviving element removed")
	}
}

func TestRebuildStacking(t *testing.T) {
	b, surf, _ := newTestBuilder(t)
	md := halfScaleMetadata(t)

	if err := b.InstallFrameGuide(md); err != nil {
		t.Fatalf("InstallFrameGuide: %v", err)
	}

	elements := []element.Element{
		{
			ID:       "clip",
			Kind:     element.KindVideo,
			Timeline: element.TimelineScene,
			Props:    element.Props{Width: 1920, Height: 1080, Src: "a.mp4"},
		},
		rectElement("overlay", 0),
	}
	if err := b.Rebuild(context.Background(), elements, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	objs := surf.Objects()
	want := []string{surface.FrameGuideID, "clip" + BackgroundSuffix, "clip", "overlay"}
	if len(objs) != len(want) {
		t.Fatalf("objects = %d, want %d", len(objs), len(want))
	}
	for i, id := range want {
		if objs[i].ID != id {
			t.Errorf("draw order[%d] = %q, want %q", i, objs[i].ID, id)
		}
	}
}

func TestRebuildIdempotent(t *testing.T) {
	b, surf, _ := newTestBuilder(t)
	md := halfScaleMetadata(t)
	ctx := context.Background()
	elements := []element.Element{rectElement("a", 0), rectElement("b", 100)}

	for i := 0; i < 3; i++ {
		if err := b.Rebuild(ctx, elements, 0, md, BuildOptions{}); err != nil {
			t.Fatalf("rebuild %d: %v", i, err)
		}
	}
	if surf.Len() != 2 {
		t.Errorf("objects = %d after repeated rebuilds, want 2", surf.Len())
	}
}

func TestRebuildWithoutSurface(t *testing.T) {
	reg := NewRegistry(nil)
	b := NewBuilder(nil, NewProjector(reg, nil), reg, nil, 1)

	err := b.Rebuild(context.Background(), []element.Element{rectElement("a", 0)}, 0, geom.Metadata{}, BuildOptions{})
	if !errors.Is(err, ErrSurfaceNotReady) {
		t.Errorf("err = %v, want ErrSurfaceNotReady", err)
	}
}

func TestProjectOneRefreshesInPlace(t *testing.T) {
	b, surf, _ := newTestBuilder(t)
	md := halfScaleMetadata(t)
	ctx := context.Background()

	el := rectElement("a", 0)
	if err := b.ProjectOne(ctx, el, 0, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("ProjectOne: %v", err)
	}
	el.Props.X = 400
	if err := b.ProjectOne(ctx, el, 0, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("ProjectOne: %v", err)
	}

	if surf.Len() != 1 {
		t.Fatalf("objects = %d, want 1 (refresh, not duplicate)", surf.Len())
	}
	obj, _ := surf.Object("a")
	if obj.X != 200 { // 400 video units at half scale
		t.Errorf("X = %v, want refreshed 200", obj.X)
	}
}

func TestRebuildCanceledContext(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	md := halfScaleMetadata(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Rebuild(ctx, []element.Element{rectElement("a", 0)}, 0, md, BuildOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCommitDiscardsSupersededProjection(t *testing.T) {
	b, surf, reg := newTestBuilder(t)
	md := halfScaleMetadata(t)

	first := []element.Element{rectElement("keep", 0), rectElement("gone", 200)}
	if err := b.Rebuild(context.Background(), first, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	staleGen := b.gen.Load()

	// a newer, shorter list supersedes the first rebuild
	if err := b.Rebuild(context.Background(), []element.Element{rectElement("keep", 0)}, 0, md, BuildOptions{}); err != nil {
		t.Fatalf("superseding rebuild: %v", err)
	}

	// a projection from the first rebuild finishing late: its element left
	// the list, so the commit must be discarded
	gone := rectElement("gone", 200)
	objs, fe, err := b.proj.Build(gone, 1, 0, md, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b.commit(staleGen, gone, fe, objs)

	if _, ok := surf.Object("gone"); ok {
		t.Error("departed element recommitted by a superseded projection")
	}
	if _, ok := reg.Lookup("gone"); ok {
		t.Error("departed element re-registered by a superseded projection")
	}

	// a stale-generation commit for a still-live element refreshes in place
	keep := rectElement("keep", 400)
	objs, fe, err = b.proj.Build(keep, 0, 0, md, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b.commit(staleGen, keep, fe, objs)

	obj, ok := surf.Object("keep")
	if !ok {
		t.Fatal("live element missing after stale commit")
	}
	if obj.X != 200 {
		t.Errorf("keep X = %v, want 200", obj.X)
	}
}

// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Command stagedemo builds a small timeline scene, projects it onto the
// raster surface backend and writes the result as a PNG.
package main

import (
	"context"
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/openreel/stage"
	"github.com/openreel/stage/config"
	"github.com/openreel/stage/element"
	"github.com/openreel/stage/geom"
	"github.com/openreel/stage/scene"
	"github.com/openreel/stage/surface"
)

func main() {
	var (
		width    = flag.Int("width", 960, "canvas width")
		height   = flag.Int("height", 540, "canvas height")
		output   = flag.String("output", "scene.png", "output file")
		cfgPath  = flag.String("config", "", "optional YAML config file")
		playhead = flag.Float64("time", 2.5, "playback time in seconds")
	)
	flag.Parse()

	stage.SetLogger(slog.Default())

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	surf, err := surface.NewByName("raster", surface.Options{
		Width:    *width,
		Height:   *height,
		FontPath: cfg.FontPath,
	})
	if err != nil {
		log.Fatalf("create surface: %v", err)
	}

	eng, err := stage.New(stage.WithSurface(surf), stage.WithConfig(cfg))
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}
	defer eng.Close()

	elements := demoElements()
	video := element.ResolveVideoSize(elements[0].Props, geom.Size{})
	eng.Resize(video, geom.Sz(float64(*width), float64(*height)))

	if err := eng.Rebuild(context.Background(), elements, *playhead, scene.BuildOptions{CleanAndAdd: true}); err != nil {
		log.Printf("rebuild finished with skipped elements: %v", err)
	}

	if err := surf.Flush(); err != nil {
		log.Printf("flush: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, surf.Snapshot()); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	log.Printf("scene written to %s (%dx%d, %d elements)", *output, *width, *height, len(elements))
}

func demoElements() []element.Element {
	return []element.Element{
		{
			ID:       "clip-1",
			Kind:     element.KindVideo,
			Timeline: element.TimelineScene,
			Start:    0,
			End:      10,
			Props: element.Props{
				X: 0, Y: 0, Width: 1920, Height: 1080,
				Src: "intro.mp4", PlaybackRate: 1,
			},
			FrameEffects: []element.FrameEffect{{
				ID:            "fx-zoom",
				Start:         2,
				End:           4,
				FramePosition: geom.Pt(160, 90),
				FrameSize:     geom.Sz(1600, 900),
			}},
		},
		{
			ID:   "lower-third",
			Kind: element.KindRect,
			Props: element.Props{
				X: 120, Y: 860, Width: 900, Height: 140,
				Fill: "#1E2A4A", Opacity: 0.85, CornerRadius: 12,
			},
		},
		{
			ID:   "title",
			Kind: element.KindText,
			Props: element.Props{
				X: 160, Y: 880, Width: 820, Height: 100,
				Text: "Weekly Update", FontSize: 64, Fill: "#FFFFFF",
			},
		},
		{
			ID:   "badge",
			Kind: element.KindCircle,
			Props: element.Props{
				X: 1700, Y: 80, Radius: 60, Fill: "#E5484D",
			},
		},
		{
			ID:   "caption-1",
			Kind: element.KindCaption,
			Props: element.Props{
				X: 460, Y: 720, Width: 1000, Height: 90,
				Text: "welcome back everyone", FontSize: 48, Fill: "#F5D90A",
			},
		},
	}
}

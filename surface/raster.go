// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/openreel/stage/internal/xlog"
)

// MediaProvider resolves a media source to a decoded frame at a media-local
// time. Decoding is the caller's concern (and may be asynchronous behind a
// cache); the surface only asks for the frame it is about to draw.
type MediaProvider interface {
	Fetch(src string, snapTime float64) (image.Image, error)
}

// Raster is the drawing surface backend. It rasterizes the retained object
// list through a gg context on Flush. Objects missing media or fonts fall
// back to placeholder fills so one unresolved asset never blanks the scene.
type Raster struct {
	*Store
	dc         *gg.Context
	background color.Color
	media      MediaProvider
	log        *slog.Logger
	hasFont    bool
	closed     bool
}

// NewRaster creates a rasterizing surface of the given size. A font is
// loaded from opts.FontPath when set; without one, text objects render as
// placeholder boxes.
func NewRaster(opts Options) (*Raster, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("surface: raster needs positive dimensions")
	}
	r := &Raster{
		Store:      NewStore(),
		dc:         gg.NewContext(opts.Width, opts.Height),
		background: color.Transparent,
		log:        xlog.Nop(),
	}
	if opts.FontPath != "" {
		if err := r.dc.LoadFontFace(opts.FontPath, 24); err != nil {
			return nil, err
		}
		r.hasFont = true
	}
	return r, nil
}

// SetMediaProvider installs the frame source used for media objects.
func (r *Raster) SetMediaProvider(p MediaProvider) { r.media = p }

// SetLogger installs the logger for backend diagnostics. Silent by default.
func (r *Raster) SetLogger(l *slog.Logger) { r.log = xlog.Or(l) }

// Width returns the surface width in device pixels.
func (r *Raster) Width() int { return r.dc.Width() }

// Height returns the surface height in device pixels.
func (r *Raster) Height() int { return r.dc.Height() }

// SetBackground sets the ambient background color.
func (r *Raster) SetBackground(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	r.background = c
}

// Background returns the ambient background color.
func (r *Raster) Background() color.Color { return r.background }

// Flush rasterizes the retained object list in draw order.
// Per-object draw failures are joined and returned after the full pass.
func (r *Raster) Flush() error {
	if r.closed {
		return ErrClosed
	}

	r.dc.ClearWithColor(gg.FromColor(r.background))

	var errs []error
	for _, obj := range r.Store.Objects() {
		if err := r.draw(obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot rasterizes and returns the surface contents.
func (r *Raster) Snapshot() *image.RGBA {
	if err := r.Flush(); err != nil {
		r.log.Warn("raster flush during snapshot", "error", err)
	}
	img := r.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	xdraw.Copy(out, image.Point{}, img, img.Bounds(), xdraw.Src, nil)
	return out
}

// Close releases the drawing context. Idempotent.
func (r *Raster) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.dc.Close()
}

func (r *Raster) draw(obj Object) error {
	r.dc.Push()
	defer r.dc.Pop()

	if obj.Rotation != 0 {
		cx := obj.X + obj.Width/2
		cy := obj.Y + obj.Height/2
		r.dc.RotateAbout(obj.Rotation*math.Pi/180, cx, cy)
	}

	switch obj.Kind {
	case KindMedia:
		return r.drawMedia(obj)
	case KindRect, KindBackground:
		r.setFill(obj.Fill, obj.Opacity)
		if obj.CornerRadius > 0 {
			r.dc.DrawRoundedRectangle(obj.X, obj.Y, obj.Width, obj.Height, obj.CornerRadius)
		} else {
			r.dc.DrawRectangle(obj.X, obj.Y, obj.Width, obj.Height)
		}
		return r.dc.Fill()
	case KindCircle:
		r.setFill(obj.Fill, obj.Opacity)
		r.dc.DrawCircle(obj.X+obj.Width/2, obj.Y+obj.Height/2, obj.Width/2)
		return r.dc.Fill()
	case KindText:
		if !r.hasFont {
			r.setFill(obj.Fill, 0.25)
			r.dc.DrawRectangle(obj.X, obj.Y, obj.Width, obj.Height)
			return r.dc.Fill()
		}
		r.setFill(obj.Fill, obj.Opacity)
		r.dc.DrawStringAnchored(obj.Text, obj.X+obj.Width/2, obj.Y+obj.Height/2, 0.5, 0.5)
		return nil
	case KindFrameGuide:
		r.dc.SetRGBA(1, 1, 1, 0.6)
		r.dc.SetLineWidth(1)
		r.dc.DrawRectangle(obj.X, obj.Y, obj.Width, obj.Height)
		return r.dc.Stroke()
	}
	return nil
}

func (r *Raster) drawMedia(obj Object) error {
	if r.media == nil {
		r.setFill("#222222", obj.Opacity)
		r.dc.DrawRectangle(obj.X, obj.Y, obj.Width, obj.Height)
		return r.dc.Fill()
	}

	frame, err := r.media.Fetch(obj.Src, obj.SnapTime)
	if err != nil {
		r.setFill("#222222", obj.Opacity)
		r.dc.DrawRectangle(obj.X, obj.Y, obj.Width, obj.Height)
		if fillErr := r.dc.Fill(); fillErr != nil {
			return fillErr
		}
		return err
	}

	w := int(math.Round(obj.Width))
	h := int(math.Round(obj.Height))
	if w <= 0 || h <= 0 {
		return nil
	}

	// Pre-scale on the CPU so the context draws 1:1.
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)

	opacity := obj.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	r.dc.DrawImageEx(gg.ImageBufFromImage(scaled), gg.DrawImageOptions{
		X:             obj.X,
		Y:             obj.Y,
		Interpolation: gg.InterpBilinear,
		Opacity:       opacity,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (r *Raster) setFill(hex string, opacity float64) {
	if hex == "" {
		hex = "#000000"
	}
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	col := gg.Hex(hex)
	r.dc.SetRGBA(col.R, col.G, col.B, col.A*opacity)
}

func init() {
	Register("raster", 50, func(opts Options) (Surface, error) {
		return NewRaster(opts)
	}, nil)
}

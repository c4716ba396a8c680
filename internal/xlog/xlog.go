// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

// Package xlog provides the silent default logger shared by all engine
// packages. Components receive their logger explicitly at construction;
// a nil logger falls back to the no-op handler so logging stays
// zero-cost until the host opts in.
package xlog

import (
	"context"
	"log/slog"
)

// nopHandler discards all records. Enabled returns false so callers skip
// message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that silently discards all output.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

// Or returns l, or the no-op logger when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

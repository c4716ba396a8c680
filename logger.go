// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"log/slog"
	"sync/atomic"

	"github.com/openreel/stage/internal/xlog"
)

// loggerPtr stores the package default logger. Accessed atomically so
// SetLogger can race with engine construction on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(xlog.Nop())
}

// SetLogger configures the default logger new engines inherit when no
// WithLogger option is given. By default the engine produces no output.
// Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: per-element projection diagnostics
//   - [slog.LevelWarn]: skipped elements, stale transforms, missing surface
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = xlog.Nop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package default logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

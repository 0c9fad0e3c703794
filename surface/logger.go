// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record; Enabled is false so arguments are never
// formatted.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler     { return d }
func (d discard) WithGroup(string) slog.Handler          { return d }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

func init() {
	current.Store(silent)
}

func slogger() *slog.Logger { return current.Load() }

// Logger returns the logger used by the surface package and the host.
func Logger() *slog.Logger { return current.Load() }

// SetLogger replaces the package logger. It is safe to call concurrently
// with logging. Nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

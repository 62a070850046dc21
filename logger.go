// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package voxel

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/voxel/internal/gpu"
	"github.com/gogpu/voxel/shaders"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for voxel and all its sub-packages.
// By default, voxel produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by voxel:
//   - [slog.LevelDebug]: buffer uploads, draw ring growth, frame statistics
//   - [slog.LevelInfo]: renderer creation, pipeline builds, shader reloads
//   - [slog.LevelWarn]: a shader reload failed and the old pipeline was kept
//
// Example:
//
//	voxel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gpu.SetLogger(l)
	shaders.SetLogger(l)
}

// Logger returns the current logger used by voxel.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

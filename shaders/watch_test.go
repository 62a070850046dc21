// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsChangedShader(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "block.wgsl"), []byte("// edited\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var names []string
	for len(names) == 0 {
		if err := w.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		names = w.Drain()
	}
	for _, n := range names {
		if n != "block" {
			t.Errorf("Drain() returned %q, want only block", n)
		}
	}
	if got := w.Drain(); got != nil {
		t.Errorf("second Drain() = %v, want nil", got)
	}
}

func TestWatcherCoalesces(t *testing.T) {
	w := &Watcher{pending: map[string]struct{}{}, notify: make(chan struct{}, 1)}
	w.queue("block")
	w.queue("world")
	w.queue("block")

	got := w.Drain()
	if len(got) != 2 || got[0] != "block" || got[1] != "world" {
		t.Errorf("Drain() = %v, want [block world]", got)
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("NewWatcher(absent) error = nil, want error")
	}
}

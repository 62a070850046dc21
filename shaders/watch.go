// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports shader sources that change in a directory.
//
// Change notifications are coalesced: a name is queued at most once until
// it is drained, so a burst of editor writes produces a single rebuild.
type Watcher struct {
	fs   *fsnotify.Watcher
	dir  string
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
	order   []string
	closed  bool

	notify chan struct{}
}

// NewWatcher starts watching dir for changes to *.wgsl files.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w := &Watcher{
		fs:      fw,
		dir:     dir,
		done:    make(chan struct{}),
		pending: make(map[string]struct{}),
		notify:  make(chan struct{}, 1),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name, ok := shaderName(e.Name)
			if !ok {
				continue
			}
			slogger().Debug("shaders: source changed", "name", name, "op", e.Op.String())
			w.queue(name)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slogger().Warn("shaders: watch error", "dir", w.dir, "err", err)

		case <-w.done:
			return
		}
	}
}

func shaderName(file string) (string, bool) {
	base := filepath.Base(file)
	if !strings.HasSuffix(base, Ext) {
		return "", false
	}
	return strings.TrimSuffix(base, Ext), true
}

func (w *Watcher) queue(name string) {
	w.mu.Lock()
	if _, ok := w.pending[name]; !ok {
		w.pending[name] = struct{}{}
		w.order = append(w.order, name)
	}
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Drain returns the names changed since the last call, in the order they
// were first seen. It never blocks.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.order) == 0 {
		return nil
	}
	out := w.order
	w.order = nil
	clear(w.pending)
	return out
}

// Wait blocks until at least one change is pending or ctx is done.
func (w *Watcher) Wait(ctx context.Context) error {
	select {
	case <-w.notify:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

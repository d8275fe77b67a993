// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// DefaultDebounce collapses the burst of events an editor emits per save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a dataset file. It watches the parent
// directory so atomic rename-on-save is seen as well.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher prepares a watcher for path. A zero debounce uses
// DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		fw:       fw,
		done:     make(chan struct{}),
	}, nil
}

// Run calls onChange once per quiet period following writes, creates, or
// renames of the watched file. It blocks until ctx is done or Stop is
// called.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.V(1).Info("dataset changed")
			onChange(ctx)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Error(err, "watch error")

		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends Run and releases the underlying watcher. Safe to call more than
// once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/unitary/internal/index"
	"github.com/papapumpkin/unitary/internal/telemetry"
)

// Reload is the outcome of reloading a watched catalog. On success Index
// holds a fresh index with the new catalog installed; on failure Err is set
// and the previous index remains the one to use.
type Reload struct {
	Path   string
	Index  *index.Index
	Report Report
	Err    error
}

// Watcher monitors a catalog file for changes using fsnotify and reinstalls
// it into a new index after each burst of writes.
type Watcher struct {
	Path    string
	Changes <-chan Reload // Read-only external channel

	changes chan Reload // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
	opts    []Option
}

// NewWatcher creates a new watcher for the catalog at path.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
		opts:    opts,
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// that editors replacing the file by rename are noticed.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	debounce := buildOptions(w.opts).debounce
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.changes <- w.reload()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

func (w *Watcher) reload() Reload {
	r := Reload{Path: w.Path}
	f, err := LoadFile(w.Path)
	if err != nil {
		r.Err = err
		return r
	}
	idx := index.New()
	report, err := Install(context.Background(), idx, f, w.opts...)
	if err != nil {
		r.Err = err
		return r
	}
	r.Index, r.Report = idx, report

	o := buildOptions(w.opts)
	_ = o.emitter.Emit(telemetry.Event{
		Kind:   telemetry.KindCatalogReloaded,
		Source: w.Path,
		Data:   map[string]int{"families": report.Families},
	})
	return r
}

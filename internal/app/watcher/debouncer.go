package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer coalesces rapid file events into one callback per quiet period.
// Callbacks never overlap; changes seen while one runs are delivered by the next.
type Debouncer interface {
	Trigger(file string)
	Stop()
}

type debouncer struct {
	duration time.Duration
	callback func(files []string)
	timer    *time.Timer
	files    map[string]struct{}
	mu       sync.Mutex
	running  sync.Mutex
	stopped  bool
}

// NewDebouncer creates a Debouncer calling callback with the sorted set of changed files
func NewDebouncer(duration time.Duration, callback func(files []string)) Debouncer {
	return &debouncer{
		duration: duration,
		callback: callback,
		files:    make(map[string]struct{}),
	}
}

// Trigger records a change and restarts the quiet period
func (d *debouncer) Trigger(file string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, d.fire)
}

// Stop drops pending changes and waits for a running callback to return
func (d *debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.files = make(map[string]struct{})
	d.mu.Unlock()

	d.running.Lock()
	defer d.running.Unlock()
}

func (d *debouncer) fire() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()

	if d.stopped || len(d.files) == 0 {
		d.mu.Unlock()
		return
	}

	files := make([]string, 0, len(d.files))
	for f := range d.files {
		files = append(files, f)
	}

	d.files = make(map[string]struct{})
	d.timer = nil

	d.mu.Unlock()

	sort.Strings(files)
	d.callback(files)
}

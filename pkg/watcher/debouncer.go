package watcher

import (
	"sync"
	"time"

	"github.com/vanderheijden86/filetree/pkg/clock"
)

// DefaultDebounceDuration coalesces the burst of events an editor's save
// produces into one reload.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer runs the last triggered callback once triggers stop arriving.
type Debouncer struct {
	clock    clock.Clock
	duration time.Duration

	mu    sync.Mutex
	timer clock.Timer
	gen   uint64
}

// NewDebouncer returns a debouncer on the wall clock. A non-positive
// duration selects DefaultDebounceDuration.
func NewDebouncer(d time.Duration) *Debouncer {
	return newDebouncer(d, clock.System())
}

func newDebouncer(d time.Duration, c clock.Clock) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{clock: c, duration: d}
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration { return d.duration }

// Trigger schedules fn, replacing any callback still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.duration, func() {
		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the waiting callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

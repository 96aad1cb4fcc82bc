// Package search debounces the search box: keystrokes are held back until
// typing pauses, then the latest text is committed as the query.
package search

import (
	"sync"
	"time"

	"github.com/vanderheijden86/filetree/pkg/clock"
	"github.com/vanderheijden86/filetree/pkg/debug"
)

// DefaultDelay is how long typing must pause before a query is committed.
const DefaultDelay = 300 * time.Millisecond

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the wall clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(d *Debouncer) {
		d.clock = c
	}
}

// WithDelay sets the pause length. Non-positive values keep DefaultDelay.
func WithDelay(delay time.Duration) Option {
	return func(d *Debouncer) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// Debouncer commits the most recent input once no newer input has arrived
// for the configured delay. At most one commit is pending at a time.
type Debouncer struct {
	clock  clock.Clock
	delay  time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   clock.Timer
	pending string
	armed   bool
	stopped bool
	gen     uint64
}

// New returns a debouncer that hands committed text to commit. commit runs
// on the clock's goroutine, so it should only forward the text (for
// example with tea.Program.Send).
func New(commit func(string), opts ...Option) *Debouncer {
	d := &Debouncer{
		clock:  clock.System(),
		delay:  DefaultDelay,
		commit: commit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the configured pause length.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Input records text and restarts the delay.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = text
	d.armed = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	text := d.pending
	d.armed = false
	d.timer = nil
	d.mu.Unlock()

	debug.Log("search: commit %q", text)
	d.commit(text)
}

// Pending returns the text waiting to be committed.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.armed
}

// Flush commits text immediately, discarding anything pending. The clear
// button and Escape use it so clearing never lags.
func (d *Debouncer) Flush(text string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.armed = false
	d.pending = text
	d.mu.Unlock()

	d.commit(text)
}

// Stop disarms the pending commit. Nothing is committed afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.armed = false
	d.stopped = true
}

package server

import (
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of triggers, once delay has passed
// without a newer one. Each owner gets its own Debouncer.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling whatever was pending. It is a no-op after
// Stop.
func (d *Debouncer) Trigger(fn func()) {
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
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := !d.stopped && d.gen == gen
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Stop cancels the pending call and disables the debouncer. It reports
// whether a call was still pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer == nil {
		return false
	}
	return d.timer.Stop()
}

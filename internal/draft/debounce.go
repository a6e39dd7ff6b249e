// Package draft schedules calculator autosaves and purges stale drafts.
package draft

import (
	"sync"
	"time"
)

const DefaultDelay = 2 * time.Second

// Debouncer runs only the last triggered save, once no trigger came for delay.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64
	running sync.WaitGroup
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger replaces the pending save with fn and restarts the idle timer.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	fn()
}

// Cancel discards the pending save and waits for one already running.
// It reports whether a save was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	had := d.pending != nil
	d.stopLocked()
	d.gen++
	d.pending = nil
	d.mu.Unlock()

	d.running.Wait()
	return had
}

// Flush runs the pending save now, in the caller's goroutine.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.stopLocked()
	d.gen++
	d.pending = nil
	d.mu.Unlock()

	// запущенное старое сохранение не должно перезаписать новое
	d.running.Wait()

	if fn == nil {
		return false
	}
	fn()
	return true
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

package parameters

import (
	"sync"
	"time"
)

// Debouncer forwards only the last value received within a quiet period.
// Delivery goes through deliver so the callback runs on the control thread.
type Debouncer[S any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	latest  S
	deliver func(func())
	target  func(S)
}

func NewDebouncer[S any](delay time.Duration, deliver func(func()), target func(S)) *Debouncer[S] {
	return &Debouncer[S]{delay: delay, deliver: deliver, target: target}
}

// Push records v and restarts the quiet period. With a zero delay v is
// forwarded immediately.
func (d *Debouncer[S]) Push(v S) {
	if d.delay <= 0 {
		d.target(v)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	d.latest = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire hands the value of generation gen to deliver. A later Push or Stop
// bumps the generation, so a stale timer or a stale queued delivery is
// dropped.
func (d *Debouncer[S]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.timer = nil
	d.mu.Unlock()

	d.deliver(func() {
		if !d.current(gen) {
			return
		}
		d.target(v)
	})
}

func (d *Debouncer[S]) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// Stop drops any pending value.
func (d *Debouncer[S]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

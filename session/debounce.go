package session

import (
	"sync"
	"time"
)

// Timer is a stoppable pending invocation.
type Timer interface {
	Stop() bool
}

// Clock schedules functions after a delay. The indirection exists so
// tests can drive time by hand instead of sleeping.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the real wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// Debouncer coalesces a burst of triggers into a single invocation. Each
// update kind (file status refresh, project recount) owns exactly one
// Debouncer: Trigger discards the pending timer, so only the latest
// trigger's delay counts and earlier pending invocations are dropped,
// never queued.
type Debouncer struct {
	clock Clock
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	pending Timer
}

// NewDebouncer creates a debouncer firing fn after delay of quiet.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		clock: SystemClock(),
		delay: delay,
		fn:    fn,
	}
}

// WithClock replaces the clock. For tests.
func (d *Debouncer) WithClock(clock Clock) *Debouncer {
	if clock != nil {
		d.clock = clock
	}
	return d
}

// Trigger (re)starts the delay. A pending invocation is discarded.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.clock.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
	d.fn()
}

// Stop discards any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

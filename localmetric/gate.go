package localmetric

import "time"

// Gate decides when a goroutine-local tree should self-flush: it caches the
// time of the previous flush and reports Due once a threshold elapsed.
// Checking the gate on every mutating access amortizes the cost of merging
// into the shared metric across many uncontended increments, at the price
// of a bounded staleness window.
//
// A Gate belongs to a single goroutine-local tree and needs no locking.
type Gate struct {
	threshold time.Duration
	last      time.Time
	now       func() time.Time
}

// NewGate returns a gate armed at the current time.
func NewGate(threshold time.Duration) Gate {
	return newGateAt(threshold, time.Now)
}

// newGateAt allows tests to supply their own clock.
func newGateAt(threshold time.Duration, now func() time.Time) Gate {
	return Gate{threshold: threshold, last: now(), now: now}
}

// Due reports whether the threshold elapsed since the previous flush.
func (g *Gate) Due() bool {
	return g.now().Sub(g.last) >= g.threshold
}

// Reset re-arms the gate at the current time. Callers invoke it after
// flushing, whether the flush was implicit or forced.
func (g *Gate) Reset() {
	g.last = g.now()
}

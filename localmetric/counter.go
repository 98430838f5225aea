package localmetric

import "github.com/prometheus/client_golang/prometheus"

// Counter accumulates increments locally and forwards them to a shared
// prometheus.Counter on Flush. It must only be used by the goroutine that
// owns it; the hot path is a plain float64 addition.
type Counter struct {
	shared prometheus.Counter
	delta  float64
}

// NewCounter wraps an already resolved shared counter.
func NewCounter(shared prometheus.Counter) *Counter {
	return &Counter{shared: shared}
}

// Inc adds 1 to the pending delta.
func (c *Counter) Inc() {
	c.delta++
}

// Add adds v to the pending delta. It panics if v is negative, matching
// prometheus.Counter.
func (c *Counter) Add(v float64) {
	if v < 0 {
		panic("localmetric: counter cannot decrease in value")
	}
	c.delta += v
}

// Delta returns the pending, not yet flushed value.
func (c *Counter) Delta() float64 {
	return c.delta
}

// Flush merges the pending delta into the shared counter and resets it.
// Flushing a zero delta does not touch the shared metric.
func (c *Counter) Flush() {
	if c.delta == 0 {
		return
	}
	c.shared.Add(c.delta)
	c.delta = 0
}

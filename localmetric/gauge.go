package localmetric

import "github.com/prometheus/client_golang/prometheus"

// Gauge tracks a value locally and writes it through to a shared
// prometheus.Gauge on Flush. Unlike Counter, Flush publishes the current
// value rather than a delta. It must only be used by the goroutine that
// owns it.
type Gauge struct {
	shared prometheus.Gauge
	value  float64
	dirty  bool
}

// NewGauge wraps an already resolved shared gauge.
func NewGauge(shared prometheus.Gauge) *Gauge {
	return &Gauge{shared: shared}
}

// Set replaces the local value.
func (g *Gauge) Set(v float64) {
	g.value = v
	g.dirty = true
}

// Inc adds 1 to the local value.
func (g *Gauge) Inc() {
	g.Add(1)
}

// Dec subtracts 1 from the local value.
func (g *Gauge) Dec() {
	g.Add(-1)
}

// Add adds v to the local value.
func (g *Gauge) Add(v float64) {
	g.value += v
	g.dirty = true
}

// Value returns the current local value.
func (g *Gauge) Value() float64 {
	return g.value
}

// Flush publishes the local value to the shared gauge if it changed since
// the previous flush.
func (g *Gauge) Flush() {
	if !g.dirty {
		return
	}
	g.shared.Set(g.value)
	g.dirty = false
}

package localmetric

import "github.com/prometheus/client_golang/prometheus"

// Histogram buffers observations locally and replays them into a shared
// prometheus.Observer on Flush. It must only be used by the goroutine that
// owns it.
type Histogram struct {
	shared prometheus.Observer
	buf    []float64
}

// NewHistogram wraps an already resolved shared observer.
func NewHistogram(shared prometheus.Observer) *Histogram {
	return &Histogram{shared: shared}
}

// Observe buffers one observation.
func (h *Histogram) Observe(v float64) {
	h.buf = append(h.buf, v)
}

// Pending returns the number of buffered, not yet flushed observations.
func (h *Histogram) Pending() int {
	return len(h.buf)
}

// Flush replays every buffered observation into the shared observer and
// empties the buffer, keeping its capacity for reuse.
func (h *Histogram) Flush() {
	for _, v := range h.buf {
		h.shared.Observe(v)
	}
	h.buf = h.buf[:0]
}

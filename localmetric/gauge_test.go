package localmetric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGauge_FlushPublishesValue(t *testing.T) {
	shared := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test"})
	g := NewGauge(shared)

	g.Set(10)
	g.Inc()
	g.Dec()
	g.Add(-2.5)

	assert.Equal(t, 7.5, g.Value())
	assert.Equal(t, 0.0, testutil.ToFloat64(shared), "shared must stay untouched before flush")

	g.Flush()

	assert.Equal(t, 7.5, testutil.ToFloat64(shared))
}

func TestGauge_FlushIsValueNotDelta(t *testing.T) {
	shared := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test"})
	g := NewGauge(shared)

	g.Set(5)
	g.Flush()
	g.Set(5)
	g.Flush()

	assert.Equal(t, 5.0, testutil.ToFloat64(shared))
}

func TestGauge_CleanFlushSkipsShared(t *testing.T) {
	shared := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test"})
	shared.Set(42)
	g := NewGauge(shared)

	g.Flush()

	assert.Equal(t, 42.0, testutil.ToFloat64(shared), "an untouched gauge must not overwrite the shared value")
}

package localmetric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestGate_DueAfterThreshold(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	g := newGateAt(time.Second, clock.now)

	assert.False(t, g.Due())

	clock.advance(999 * time.Millisecond)
	assert.False(t, g.Due())

	clock.advance(time.Millisecond)
	assert.True(t, g.Due())
}

func TestGate_ResetRearms(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	g := newGateAt(time.Second, clock.now)

	clock.advance(2 * time.Second)
	assert.True(t, g.Due())

	g.Reset()
	assert.False(t, g.Due())

	clock.advance(time.Second)
	assert.True(t, g.Due())
}

func TestGate_ZeroThresholdIsAlwaysDue(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	g := newGateAt(0, clock.now)

	assert.True(t, g.Due())
	g.Reset()
	assert.True(t, g.Due())
}

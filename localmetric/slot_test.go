package localmetric

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_GetIsStablePerGoroutine(t *testing.T) {
	var built int
	s := NewSlot(func() *int {
		built++
		return new(int)
	})

	first := s.Get()
	second := s.Get()

	assert.Same(t, first, second)
	assert.Equal(t, 1, built)
}

func TestSlot_GoroutinesGetIndependentInstances(t *testing.T) {
	s := NewSlot(func() *int { return new(int) })

	mine := s.Get()
	*mine = 1

	var wg sync.WaitGroup
	results := make([]*int, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.Get()
		}()
	}
	wg.Wait()

	seen := map[*int]bool{mine: true}
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, 0, *r, "a fresh goroutine must get a fresh instance")
		assert.False(t, seen[r], "instances must not be shared across goroutines")
		seen[r] = true
	}
}

func TestSlot_LoadDoesNotConstruct(t *testing.T) {
	s := NewSlot(func() *int { return new(int) })

	_, ok := s.Load()
	assert.False(t, ok)

	got := s.Get()
	loaded, ok := s.Load()
	assert.True(t, ok)
	assert.Same(t, got, loaded)
}

func TestSlot_ForgetDiscards(t *testing.T) {
	s := NewSlot(func() *int { return new(int) })

	first := s.Get()
	s.Forget()

	_, ok := s.Load()
	assert.False(t, ok)

	second := s.Get()
	assert.NotSame(t, first, second)
}

package localmetric

import (
	"sync"

	"github.com/petermattis/goid"
)

// Slot is goroutine-local storage for one metric's local tree. Get returns
// the calling goroutine's instance, constructing it on first access; the
// returned pointer is stable for the goroutine's lifetime, so repeated
// resolutions through a delegator always reach the same leaf.
//
// After first access the hot path is a lock-free sync.Map load keyed by the
// goroutine ID; the instance itself is only ever mutated by its owning
// goroutine and needs no further synchronization.
type Slot[T any] struct {
	roots   sync.Map // goroutine id -> *T
	newRoot func() *T
}

// NewSlot creates a slot whose per-goroutine instances are built by
// newRoot.
func NewSlot[T any](newRoot func() *T) *Slot[T] {
	return &Slot[T]{newRoot: newRoot}
}

// Get returns the calling goroutine's instance, constructing it if needed.
func (s *Slot[T]) Get() *T {
	id := goid.Get()
	if v, ok := s.roots.Load(id); ok {
		return v.(*T)
	}
	root := s.newRoot()
	// No race on Store: the key is the calling goroutine's own ID.
	s.roots.Store(id, root)
	return root
}

// Load returns the calling goroutine's instance without constructing one.
func (s *Slot[T]) Load() (*T, bool) {
	v, ok := s.roots.Load(goid.Get())
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Forget discards the calling goroutine's instance, if any. Worker pools
// that recycle goroutines can call it after a final flush to release the
// tree.
func (s *Slot[T]) Forget() {
	s.roots.Delete(goid.Get())
}

package plan

import "sync/atomic"

// Context carries the generation-order counter for one generator
// invocation. Every metric definition planned through the same Context gets
// a unique scope number which is baked into all of its derived type names,
// so two metrics sharing a struct-name prefix never collide.
//
// The counter is atomic so a Context shared across concurrent generator
// invocations still hands out unique scopes; within one invocation the
// single-pass pipeline makes numbering deterministic.
type Context struct {
	scope atomic.Int64
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) nextScope() int {
	return int(c.scope.Add(1)) - 1
}

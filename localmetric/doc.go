// Package localmetric provides goroutine-local shadows of shared
// Prometheus metrics. A shadow is owned by exactly one goroutine and is
// mutated without any synchronization; Flush merges its pending state into
// the shared metric, which carries its own internal locking.
//
// Generated code (see cmd/promstatic) composes these shadows into
// per-goroutine trees held in a Slot and gates implicit flushing with a
// Gate. Goroutines that exit before a final flush strand their pending
// deltas; callers that care should flush on worker teardown.
package localmetric

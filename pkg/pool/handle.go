package pool

import (
	"sync/atomic"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Handle lifecycle states. A handle moves CheckedOut -> Returning exactly
// once, then terminates in Returned (idle inside its pool) or Discarded.
// Idle handles inside a pool sit in the Returned state until the next
// checkout flips them back to CheckedOut.
const (
	stateCheckedOut int32 = iota
	stateReturning
	stateReturned
	stateDiscarded
)

// origin is the back-reference a handle resolves at release time. It must
// never keep the owning pool alive past its natural lifetime: tryPut either
// accepts the reset builder or reports that the handle must discard it
// (pool full or already torn down).
type origin interface {
	tryPut(pb *PooledBuilder) bool
}

// PooledBuilder is an exclusively-owned handle around one checked-out
// flatbuffers.Builder. The embedded builder makes every serialization
// operation available on the handle directly.
//
// A handle is not safe for concurrent use, matching the underlying builder.
// Release may be called at most meaningfully once; further calls are no-ops.
type PooledBuilder struct {
	*flatbuffers.Builder

	home    origin
	state   atomic.Int32
	drained atomic.Bool
}

// newPooledBuilder allocates a fresh builder with the given buffer capacity,
// already in the CheckedOut state (the zero state value).
func newPooledBuilder(home origin, capacity int) *PooledBuilder {
	return &PooledBuilder{
		Builder: flatbuffers.NewBuilder(capacity),
		home:    home,
	}
}

// Release returns the builder to its origin pool, or discards it when the
// pool is full, already closed, or the handle was drained during teardown.
// The reset happens before any pool lock is taken, so lock hold time stays
// minimal. Exactly one of Returned/Discarded is reached per checkout.
func (pb *PooledBuilder) Release() {
	if !pb.state.CompareAndSwap(stateCheckedOut, stateReturning) {
		return
	}

	if pb.drained.Load() {
		pb.Builder = nil
		pb.state.Store(stateDiscarded)
		return
	}

	pb.Reset()

	// The handle becomes pool-owned the instant tryPut succeeds, so the
	// state must read Returned before the push is visible to other
	// goroutines.
	pb.state.Store(stateReturned)
	if !pb.home.tryPut(pb) {
		pb.Builder = nil
		pb.state.Store(stateDiscarded)
	}
}

// drain marks an idle handle as ineligible for return and frees its builder.
// Called only during pool teardown, on handles popped from the idle queue.
func (pb *PooledBuilder) drain() {
	pb.drained.Store(true)
	pb.Builder = nil
	pb.state.Store(stateDiscarded)
}

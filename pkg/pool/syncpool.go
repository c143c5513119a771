package pool

import (
	"sync"
	"sync/atomic"

	flatbuffers "github.com/google/flatbuffers/go"
)

// SyncPool is a generic object pool built on sync.Pool: unbounded, with the
// runtime free to reclaim idle objects at any GC. It is the Go-native
// recycling strategy the bounded pools in this package are measured against,
// and is handy for types beyond builders.
//
// Type parameter T can be any type, but pointer types are recommended for
// efficiency. The pool is safe for concurrent use.
type SyncPool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		gets      int64
		allocated int64
		inUse     int64
	}
}

// NewSyncPool creates a pool with custom allocation and reset functions.
// The new function is called when the pool is empty; the reset function, if
// non-nil, is called before an object re-enters the pool.
func NewSyncPool[T any](new func() T, reset func(T)) *SyncPool[T] {
	p := &SyncPool[T]{
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return new()
	}
	return p
}

// Get retrieves an object from the pool, allocating when empty.
func (p *SyncPool[T]) Get() T {
	atomic.AddInt64(&p.stats.gets, 1)
	atomic.AddInt64(&p.stats.inUse, 1)
	return p.pool.Get().(T)
}

// Put returns an object to the pool for reuse, resetting it first when a
// reset function was provided.
func (p *SyncPool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns the total gets, total allocations (misses), objects
// currently checked out, and hits (gets served without allocating).
func (p *SyncPool[T]) Stats() (gets, allocated, inUse, hits int64) {
	gets = atomic.LoadInt64(&p.stats.gets)
	allocated = atomic.LoadInt64(&p.stats.allocated)
	inUse = atomic.LoadInt64(&p.stats.inUse)
	return gets, allocated, inUse, gets - allocated
}

// NewSyncBuilderPool returns the sync.Pool-backed builder baseline used in
// the comparative benchmarks: unbounded, GC-managed recycling of
// flatbuffers builders with the given initial buffer capacity.
func NewSyncBuilderPool(capacity int) *SyncPool[*flatbuffers.Builder] {
	return NewSyncPool(
		func() *flatbuffers.Builder { return flatbuffers.NewBuilder(capacity) },
		func(b *flatbuffers.Builder) { b.Reset() },
	)
}

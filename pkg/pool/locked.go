package pool

import (
	"sync"
)

// Default sizing for the process-wide pools, matching the historical
// defaults of this design: 32 builders pre-allocated, at most 1024 idle,
// 64-byte initial buffers.
const (
	DefaultInitSize       = 32
	DefaultMaxSize        = 1024
	DefaultBufferCapacity = 64
)

// LockedPool is a mutex-guarded builder pool. Get pops an idle builder (or
// allocates) while holding the lock; a releasing handle resets its builder
// first and re-acquires the lock only for the bounded push. It is the
// simplest of the pool variants and serves as the contention baseline.
type LockedPool struct {
	mu       sync.Mutex
	idle     []*PooledBuilder
	max      int
	capacity int
	stats    poolStats
}

// NewLockedPool creates a locked pool pre-populated with initial builders,
// holding at most max idle builders, each newly allocated builder starting
// with the given buffer capacity. initial <= max is enforced by raising max
// when needed.
func NewLockedPool(initial, max, capacity int) *LockedPool {
	initial, max, capacity = normalizeSizes(initial, max, capacity)

	p := &LockedPool{
		idle:     make([]*PooledBuilder, 0, max),
		max:      max,
		capacity: capacity,
	}
	for i := 0; i < initial; i++ {
		pb := newPooledBuilder(p, capacity)
		pb.state.Store(stateReturned)
		p.idle = append(p.idle, pb)
	}
	return p
}

// Get returns an idle builder from the pool, or a freshly allocated one when
// the pool is empty. The lock is released before the caller touches the
// builder.
func (p *LockedPool) Get() *PooledBuilder {
	p.stats.gets.Increment()

	p.mu.Lock()
	var pb *PooledBuilder
	if n := len(p.idle); n > 0 {
		pb = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	}
	p.mu.Unlock()

	if pb != nil {
		p.stats.hits.Increment()
		pb.state.Store(stateCheckedOut)
		return pb
	}

	p.stats.misses.Increment()
	return newPooledBuilder(p, p.capacity)
}

// tryPut pushes a reset builder back under the lock, respecting the maximum
// pool size. The caller already reset the builder outside the lock.
func (p *LockedPool) tryPut(pb *PooledBuilder) bool {
	p.mu.Lock()
	if len(p.idle) >= p.max {
		p.mu.Unlock()
		p.stats.discards.Increment()
		return false
	}
	p.idle = append(p.idle, pb)
	p.mu.Unlock()

	p.stats.returns.Increment()
	return true
}

// Stats returns a snapshot of pool activity.
func (p *LockedPool) Stats() Stats {
	p.mu.Lock()
	idle := len(p.idle)
	p.mu.Unlock()
	return p.stats.snapshot(idle)
}

var (
	lockedOnce   sync.Once
	lockedGlobal *LockedPool
)

// GetLocked returns a builder from the process-wide locked pool. The pool is
// created lazily on first use with the package defaults. Release the handle
// when done:
//
//	b := pool.GetLocked()
//	defer b.Release()
func GetLocked() *PooledBuilder {
	lockedOnce.Do(func() {
		lockedGlobal = NewLockedPool(DefaultInitSize, DefaultMaxSize, DefaultBufferCapacity)
	})
	return lockedGlobal.Get()
}

// normalizeSizes clamps negative sizes and enforces initial <= max. Every
// pool constructor funnels through here so the coupling between the two
// sizes lives in exactly one place.
func normalizeSizes(initial, max, capacity int) (int, int, int) {
	if initial < 0 {
		initial = 0
	}
	if max < 0 {
		max = 0
	}
	if capacity < 0 {
		capacity = 0
	}
	if initial > max {
		max = initial
	}
	return initial, max, capacity
}

package pool

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ajitpratap0/flatpool/pkg/lockfree"
	"github.com/ajitpratap0/flatpool/pkg/logger"
	"github.com/ajitpratap0/flatpool/pkg/metrics"
)

// PoolBuilder configures and materializes an independently-owned bounded
// lock-free pool. Methods chain:
//
//	p := pool.NewLocal().InitialSize(0).MaxSize(64).BufferCapacity(1024).Build()
type PoolBuilder struct {
	initial  int
	max      int
	capacity int
	name     string
	logger   *zap.Logger
}

// NewLocal starts a pool configuration with the package defaults.
func NewLocal() *PoolBuilder {
	return &PoolBuilder{
		initial:  DefaultInitSize,
		max:      DefaultMaxSize,
		capacity: DefaultBufferCapacity,
	}
}

// InitialSize sets how many builders are pre-allocated at Build time.
// Setting it above the current maximum raises the maximum to match.
func (b *PoolBuilder) InitialSize(n int) *PoolBuilder {
	if n < 0 {
		n = 0
	}
	b.initial = n
	if b.max < n {
		b.max = n
	}
	return b
}

// MaxSize sets the hard bound on idle builders. Setting it below the current
// initial size lowers the initial size to match.
func (b *PoolBuilder) MaxSize(n int) *PoolBuilder {
	if n < 0 {
		n = 0
	}
	b.max = n
	if b.initial > n {
		b.initial = n
	}
	return b
}

// BufferCapacity sets the initial buffer capacity of newly allocated
// builders. Builders already inside a pool keep whatever capacity they have.
func (b *PoolBuilder) BufferCapacity(n int) *PoolBuilder {
	if n < 0 {
		n = 0
	}
	b.capacity = n
	return b
}

// Name attaches a stable name used as the Prometheus label for this pool.
// Unnamed pools record no metrics.
func (b *PoolBuilder) Name(name string) *PoolBuilder {
	b.name = name
	return b
}

// Logger overrides the logger used by the pool. Defaults to the global
// logger scoped to "flatpool".
func (b *PoolBuilder) Logger(l *zap.Logger) *PoolBuilder {
	b.logger = l
	return b
}

// Build materializes the pool: a bounded lock-free queue pre-populated with
// the configured number of freshly allocated builders.
func (b *PoolBuilder) Build() *Pool {
	initial, max, capacity := normalizeSizes(b.initial, b.max, b.capacity)

	log := b.logger
	if log == nil {
		log = logger.Named("flatpool")
	}
	if b.name != "" {
		log = log.With(zap.String("pool", b.name))
	}

	shared := &poolShared{
		queue: lockfree.NewBoundedQueue[*PooledBuilder](max),
		name:  b.name,
	}
	for i := 0; i < initial; i++ {
		pb := newPooledBuilder(shared, capacity)
		pb.state.Store(stateReturned)
		shared.queue.Enqueue(pb)
	}
	metrics.SetIdle(b.name, shared.queue.Len())

	log.Debug("pool built",
		zap.Int("initial_size", initial),
		zap.Int("max_size", max),
		zap.Int("buffer_capacity", capacity))

	return &Pool{
		name:     b.name,
		capacity: capacity,
		shared:   shared,
		logger:   log,
	}
}

// poolShared is the state a handle's back-reference resolves against: the
// idle queue plus the liveness flag. Handles hold this, never the Pool
// wrapper, so a pool can be torn down while checkouts are outstanding.
type poolShared struct {
	queue  *lockfree.BoundedQueue[*PooledBuilder]
	closed atomic.Bool
	name   string
	stats  poolStats
}

// tryPut returns a reset builder to the idle queue. It fails when the pool
// has been closed or the queue is at capacity; the handle then discards.
func (s *poolShared) tryPut(pb *PooledBuilder) bool {
	if s.closed.Load() || !s.queue.Enqueue(pb) {
		s.stats.discards.Increment()
		metrics.RecordReturn(s.name, false)
		return false
	}
	s.stats.returns.Increment()
	metrics.RecordReturn(s.name, true)
	metrics.SetIdle(s.name, s.queue.Len())
	return true
}

// Pool is a bounded lock-free builder pool owned by whoever built it. A Pool
// value is cheap to copy; every copy shares the same internal queue, and so
// does every handle the pool issues.
type Pool struct {
	name     string
	capacity int
	shared   *poolShared
	logger   *zap.Logger
}

// Get pops an idle builder from the pool, or allocates a fresh one with the
// configured buffer capacity when the pool is empty. Never blocks.
func (p *Pool) Get() *PooledBuilder {
	s := p.shared
	s.stats.gets.Increment()

	if pb, ok := s.queue.Dequeue(); ok {
		s.stats.hits.Increment()
		metrics.RecordGet(p.name, true)
		metrics.SetIdle(p.name, s.queue.Len())
		pb.state.Store(stateCheckedOut)
		return pb
	}

	s.stats.misses.Increment()
	metrics.RecordGet(p.name, false)
	return newPooledBuilder(s, p.capacity)
}

// Close marks the pool as gone and immediately reclaims every idle builder
// by draining the queue. Outstanding handles remain usable; when they are
// eventually released their builders are discarded rather than returned
// into a dead queue. Close is idempotent and safe to race with releases.
//
// Get after Close still works but always allocates, and every such builder
// is discarded on release.
func (p *Pool) Close() {
	s := p.shared
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	reclaimed := 0
	for {
		pb, ok := s.queue.Dequeue()
		if !ok {
			break
		}
		pb.drain()
		s.stats.discards.Increment()
		reclaimed++
	}

	metrics.SetIdle(p.name, 0)
	metrics.RecordClose(p.name)
	p.logger.Debug("pool closed", zap.Int("idle_reclaimed", reclaimed))
}

// Stats returns a snapshot of pool activity.
func (p *Pool) Stats() Stats {
	return p.shared.stats.snapshot(p.shared.queue.Len())
}

// Cap returns the configured maximum number of idle builders.
func (p *Pool) Cap() int {
	return p.shared.queue.Cap()
}

package pool

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ajitpratap0/flatpool/pkg/logger"
)

// The process-wide lock-free pool. It exists because some call sites have no
// natural owner to hold a Pool value; the singleton is built lazily on the
// first Get with whatever sizes were configured up to that point.
var (
	globalOnce  sync.Once
	globalPool  *Pool
	globalBuilt atomic.Bool

	globalInit atomic.Int64
	globalMax  atomic.Int64
	globalCap  atomic.Int64
)

func init() {
	globalInit.Store(DefaultInitSize)
	globalMax.Store(DefaultMaxSize)
	globalCap.Store(DefaultBufferCapacity)
}

// Get returns a builder from the process-wide lock-free pool, allocating a
// fresh one when the pool is empty. Release the handle when done:
//
//	b := pool.Get()
//	defer b.Release()
func Get() *PooledBuilder {
	globalOnce.Do(buildGlobalPool)
	return globalPool.Get()
}

func buildGlobalPool() {
	globalPool = NewLocal().
		InitialSize(int(globalInit.Load())).
		MaxSize(int(globalMax.Load())).
		BufferCapacity(int(globalCap.Load())).
		Name("global").
		Build()
	globalBuilt.Store(true)
}

// SetGlobalInitSize changes how many builders the process-wide pool
// pre-allocates on first use. Raising it above the current maximum raises
// the maximum to match. Once the pool has been used the underlying queue is
// fixed; calling this afterwards is accepted but has no effect.
func SetGlobalInitSize(n int) {
	if globalSizingLocked("init_size") {
		return
	}
	if n < 0 {
		n = 0
	}
	globalInit.Store(int64(n))
	if globalMax.Load() < int64(n) {
		globalMax.Store(int64(n))
	}
}

// SetGlobalMaxSize changes the hard bound on idle builders in the
// process-wide pool. Lowering it below the current initial size lowers the
// initial size to match. No effect after the pool's first use.
func SetGlobalMaxSize(n int) {
	if globalSizingLocked("max_size") {
		return
	}
	if n < 0 {
		n = 0
	}
	globalMax.Store(int64(n))
	if globalInit.Load() > int64(n) {
		globalInit.Store(int64(n))
	}
}

// SetGlobalBufferCapacity changes the initial buffer capacity of builders
// newly allocated by the process-wide pool. The value never applies
// retroactively to builders already pooled, and has no effect after the
// pool's first use.
func SetGlobalBufferCapacity(n int) {
	if globalSizingLocked("buffer_capacity") {
		return
	}
	if n < 0 {
		n = 0
	}
	globalCap.Store(int64(n))
}

// GlobalStats returns activity counters for the process-wide lock-free
// pool. The zero snapshot is returned before first use.
func GlobalStats() Stats {
	if !globalBuilt.Load() {
		return Stats{}
	}
	return globalPool.Stats()
}

// globalSizingLocked reports whether the global pool already exists, in
// which case sizing calls are documented no-ops.
func globalSizingLocked(option string) bool {
	if !globalBuilt.Load() {
		return false
	}
	logger.Named("flatpool").Debug("global pool already in use; sizing change ignored",
		zap.String("option", option))
	return true
}

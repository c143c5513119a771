// Package flatpool provides reusable object pools for FlatBuffers builders.
//
// Serialization-heavy services churn through builder buffers; pooling them
// keeps allocation cost off the hot path. The repository ships three pool
// variants with identical checkout semantics:
//
//   - pkg/pool.Get: a process-wide pool backed by a lock-free bounded queue,
//     the default choice for production use
//   - pkg/pool.GetLocked: a mutex-guarded reference pool with the same
//     behavior, useful as a baseline when comparing implementations
//   - pkg/pool.NewLocal: independently-owned pools with per-pool sizing,
//     statistics, and an explicit Close
//
// All variants hand out *pool.PooledBuilder handles that embed a
// *flatbuffers.Builder and return themselves to their pool via Release.
//
// Supporting packages:
//
//   - pkg/lockfree: the bounded MPMC queue the pools are built on
//   - pkg/logger: structured logging (zap)
//   - pkg/metrics: Prometheus counters and gauges for named pools
//
// cmd/flatpool-bench compares the variants against sync.Pool and against
// unpooled allocation.
package flatpool

// Package pool implements bounded, reusable-builder pooling for flatbuffers
// serialization. Constructing a flatbuffers.Builder for every message costs
// an allocation plus internal bookkeeping; the pools here amortize that cost
// by recycling builders across call sites and goroutines.
//
// # Architecture
//
// Three pool variants are exposed side by side so workloads can be measured
// against each other:
//
//   - Process-wide locked pool: a mutex-guarded slice behind GetLocked().
//     Simplest correctness; contention scales with lock hold time. Kept as
//     the reference baseline.
//   - Process-wide lock-free pool: a bounded MPMC queue behind Get(), built
//     lazily on first use and sized by the SetGlobal* functions.
//   - Local pools: independently-owned bounded lock-free pools produced by
//     NewLocal()...Build(), for call sites that can partition work and want
//     to avoid cross-component contention.
//
// Production callers should default to the lock-free designs; the locked
// variant exists for comparison.
//
// # Handles
//
// Every checkout returns a *PooledBuilder, an exclusively-owned handle that
// embeds the underlying *flatbuffers.Builder. All builder operations
// (CreateString, Prepend*, Finish, FinishedBytes, ...) are available on the
// handle directly, so a pooled builder is indistinguishable from a fresh one
// except for performance.
//
// Release the handle when the message is done, typically with defer:
//
//	b := pool.Get()
//	defer b.Release()
//
//	name := b.CreateString("something fun")
//	b.StartObject(1)
//	b.PrependUOffsetTSlot(0, name, 0)
//	b.Finish(b.EndObject())
//	payload := b.FinishedBytes()
//
// Release resets the builder and attempts a non-blocking return to its
// origin pool. Pool-empty and pool-full are expected steady states, never
// errors: an empty pool allocates, a full (or already closed) pool silently
// discards. Every builder stored inside a pool is in the reset state.
//
// # Local pool lifecycle
//
//	p := pool.NewLocal().
//	    InitialSize(16).
//	    MaxSize(256).
//	    BufferCapacity(1024).
//	    Name("ingest").
//	    Build()
//	defer p.Close()
//
//	b := p.Get()
//	defer b.Release()
//
// Close reclaims all idle builders immediately. Handles still outstanding
// stay fully usable; when they are eventually released their builders are
// discarded instead of returned, so nothing leaks and nothing is returned
// into a dead pool.
//
// # Sizing
//
// Pools take three plain numeric tunables: the initial size (builders
// pre-allocated), the maximum size (hard bound on idle builders), and the
// per-builder buffer capacity (applied to newly allocated builders only).
// Setting initial above maximum raises maximum to match, and vice versa, so
// initial <= maximum always holds. The process-wide lock-free pool accepts
// size changes only before its first use; later calls are no-ops, not
// errors.
//
// # Observability
//
// Every pool tracks gets, hits, misses, returns, and discards via atomic
// counters exposed through Stats(). Pools built with a Name additionally
// record Prometheus metrics (see pkg/metrics).
package pool

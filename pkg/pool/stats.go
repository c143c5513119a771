package pool

import (
	"github.com/ajitpratap0/flatpool/pkg/lockfree"
)

// poolStats holds the atomic activity counters shared by all pool variants.
type poolStats struct {
	gets     lockfree.AtomicCounter
	hits     lockfree.AtomicCounter
	misses   lockfree.AtomicCounter
	returns  lockfree.AtomicCounter
	discards lockfree.AtomicCounter
}

func (s *poolStats) snapshot(idle int) Stats {
	return Stats{
		Gets:     s.gets.Get(),
		Hits:     s.hits.Get(),
		Misses:   s.misses.Get(),
		Returns:  s.returns.Get(),
		Discards: s.discards.Get(),
		Idle:     idle,
	}
}

// Stats is a point-in-time snapshot of pool activity, useful for monitoring
// pool efficiency and detecting leaks.
type Stats struct {
	// Gets is the total number of checkouts.
	Gets uint64
	// Hits is the number of checkouts satisfied by a recycled builder.
	Hits uint64
	// Misses is the number of checkouts that allocated a fresh builder.
	Misses uint64
	// Returns is the number of releases that pushed a builder back.
	Returns uint64
	// Discards is the number of builders dropped on release or teardown.
	Discards uint64
	// Idle is the number of builders currently inside the pool.
	Idle int
}

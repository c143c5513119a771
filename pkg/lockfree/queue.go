// Package lockfree provides lock-free data structures for high-performance concurrent processing
package lockfree

import (
	"runtime"
	"sync/atomic"
)

// BoundedQueue implements a lock-free multi-producer multi-consumer queue
// using sequence numbers for ordering and cache-line padding to avoid false
// sharing. Enqueue and Dequeue never block; both fail fast when the queue is
// full or empty.
//
// The backing ring is sized to the next power of 2 for efficient masking,
// but the queue enforces the exact capacity passed to NewBoundedQueue: the
// number of items inside the queue never exceeds it.
type BoundedQueue[T any] struct {
	buffer   []slot[T]
	capacity uint64
	mask     uint64

	// Separate enqueue and dequeue indices on different cache lines
	enqueuePos atomic.Uint64
	_padding1  [7]uint64 //nolint:unused

	dequeuePos atomic.Uint64
	_padding2  [7]uint64 //nolint:unused
}

// slot represents a queue slot with sequence number for ordering
type slot[T any] struct {
	sequence atomic.Uint64
	data     T
}

// NewBoundedQueue creates a new multi-producer multi-consumer queue holding
// at most capacity items. A capacity of zero yields a queue that rejects
// every Enqueue.
func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity < 0 {
		capacity = 0
	}

	// Round the ring up to the next power of 2
	cells := uint64(1)
	for cells < uint64(capacity) {
		cells <<= 1
	}

	q := &BoundedQueue[T]{
		buffer:   make([]slot[T], cells),
		capacity: uint64(capacity),
		mask:     cells - 1,
	}

	// Initialize sequence numbers
	for i := uint64(0); i < cells; i++ {
		q.buffer[i].sequence.Store(i)
	}

	return q
}

// Enqueue adds an item to the queue.
// Returns true if successful, false if the queue is full.
// This method is safe for multiple concurrent producers.
func (q *BoundedQueue[T]) Enqueue(item T) bool {
	for {
		pos := q.enqueuePos.Load()

		// Enforce the configured capacity, not the ring size. The dequeue
		// index only grows, so a successful CAS below can never push the
		// fill level past capacity.
		if pos-q.dequeuePos.Load() >= q.capacity {
			return false
		}

		s := &q.buffer[pos&q.mask]
		seq := s.sequence.Load()

		diff := int64(seq) - int64(pos)

		if diff == 0 {
			// Slot is ready for enqueue
			if q.enqueuePos.CompareAndSwap(pos, pos+1) {
				// We own this slot
				s.data = item
				s.sequence.Store(pos + 1)
				return true
			}
		} else if diff < 0 {
			// Ring is full
			return false
		}

		// Slot not ready yet, retry
		runtime.Gosched()
	}
}

// Dequeue removes an item from the queue.
// Returns the item and true if successful, the zero value and false if empty.
// This method is safe for multiple concurrent consumers.
func (q *BoundedQueue[T]) Dequeue() (T, bool) {
	var zero T
	for {
		pos := q.dequeuePos.Load()
		s := &q.buffer[pos&q.mask]
		seq := s.sequence.Load()

		diff := int64(seq) - int64(pos+1)

		if diff == 0 {
			// Slot is ready for dequeue
			if q.dequeuePos.CompareAndSwap(pos, pos+1) {
				// We own this slot
				item := s.data
				s.data = zero // drop the reference so the GC can reclaim it
				s.sequence.Store(pos + uint64(len(q.buffer)))
				return item, true
			}
		} else if diff < 0 {
			// Queue is empty
			return zero, false
		}

		// Slot not ready yet, retry
		runtime.Gosched()
	}
}

// Len returns the current number of items in the queue.
// This is an approximation in concurrent scenarios.
func (q *BoundedQueue[T]) Len() int {
	head := q.dequeuePos.Load()
	tail := q.enqueuePos.Load()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Cap returns the configured maximum number of items.
func (q *BoundedQueue[T]) Cap() int {
	return int(q.capacity)
}

// IsEmpty returns true if the queue is empty.
// This check is atomic but may be stale in concurrent scenarios.
func (q *BoundedQueue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// IsFull returns true if the queue is at capacity.
// This check is atomic but may be stale in concurrent scenarios.
func (q *BoundedQueue[T]) IsFull() bool {
	return uint64(q.Len()) >= q.capacity
}

// AtomicCounter provides a lock-free counter for statistics and metrics collection
// with atomic operations for thread-safe updates.
type AtomicCounter struct {
	value atomic.Uint64
}

// Increment atomically increments the counter by one.
func (c *AtomicCounter) Increment() {
	c.value.Add(1)
}

// Add atomically adds the given delta value to the counter.
func (c *AtomicCounter) Add(delta uint64) {
	c.value.Add(delta)
}

// Get returns the current value of the counter atomically.
func (c *AtomicCounter) Get() uint64 {
	return c.value.Load()
}

// Reset atomically resets the counter to zero.
func (c *AtomicCounter) Reset() {
	c.value.Store(0)
}

// Package pool provides example usage of the builder pool variants.
package pool_test

import (
	"fmt"

	"github.com/ajitpratap0/flatpool/pkg/pool"
)

// Example demonstrates the process-wide lock-free pool: get a builder,
// serialize a message, and release the handle back to the pool.
func Example() {
	b := pool.Get()
	defer b.Release() // Always release handles when done

	name := b.CreateString("something fun")
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, name, 0)
	b.Finish(b.EndObject())

	fmt.Println(len(b.FinishedBytes()) > 0)

	// Output:
	// true
}

// ExampleNewLocal shows an independently-owned pool with explicit sizing.
func ExampleNewLocal() {
	p := pool.NewLocal().
		InitialSize(0).
		MaxSize(2).
		BufferCapacity(64).
		Build()
	defer p.Close()

	// First checkout allocates; the release makes the builder idle.
	b := p.Get()
	b.CreateString("recycle me")
	b.Release()

	// The next checkout reuses the recycled builder, fully reset.
	b = p.Get()
	defer b.Release()

	stats := p.Stats()
	fmt.Printf("hits: %d, empty: %v\n", stats.Hits, b.Offset() == 0)

	// Output:
	// hits: 1, empty: true
}

// ExampleGetLocked uses the mutex-guarded reference pool.
func ExampleGetLocked() {
	b := pool.GetLocked()
	defer b.Release()

	payload := b.CreateString("locked baseline")
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, payload, 0)
	b.Finish(b.EndObject())

	fmt.Println(len(b.FinishedBytes()) > 0)

	// Output:
	// true
}

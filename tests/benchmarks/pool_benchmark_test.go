// Package benchmarks compares the builder pool variants against each other
// and against allocating a fresh builder per message.
//
// Run with: go test -bench=. -benchmem ./tests/benchmarks/
package benchmarks

import (
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/ajitpratap0/flatpool/pkg/pool"
)

const benchPayload = "the quick brown fox jumps over the lazy dog"

func buildMessage(b *flatbuffers.Builder, payload string) []byte {
	off := b.CreateString(payload)
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, off, 0)
	b.Finish(b.EndObject())
	return b.FinishedBytes()
}

func BenchmarkLockedPool(b *testing.B) {
	p := pool.NewLockedPool(pool.DefaultInitSize, pool.DefaultMaxSize, pool.DefaultBufferCapacity)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pb := p.Get()
		buildMessage(pb.Builder, benchPayload)
		pb.Release()
	}
}

func BenchmarkLockedPoolParallel(b *testing.B) {
	p := pool.NewLockedPool(pool.DefaultInitSize, pool.DefaultMaxSize, pool.DefaultBufferCapacity)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			h := p.Get()
			buildMessage(h.Builder, benchPayload)
			h.Release()
		}
	})
}

func BenchmarkGlobalPool(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pb := pool.Get()
		buildMessage(pb.Builder, benchPayload)
		pb.Release()
	}
}

func BenchmarkGlobalPoolParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			h := pool.Get()
			buildMessage(h.Builder, benchPayload)
			h.Release()
		}
	})
}

func BenchmarkLocalPool(b *testing.B) {
	p := pool.NewLocal().
		InitialSize(pool.DefaultInitSize).
		MaxSize(pool.DefaultMaxSize).
		BufferCapacity(pool.DefaultBufferCapacity).
		Build()
	defer p.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pb := p.Get()
		buildMessage(pb.Builder, benchPayload)
		pb.Release()
	}
}

func BenchmarkLocalPoolParallel(b *testing.B) {
	p := pool.NewLocal().
		InitialSize(pool.DefaultInitSize).
		MaxSize(pool.DefaultMaxSize).
		BufferCapacity(pool.DefaultBufferCapacity).
		Build()
	defer p.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			h := p.Get()
			buildMessage(h.Builder, benchPayload)
			h.Release()
		}
	})
}

func BenchmarkSyncPool(b *testing.B) {
	p := pool.NewSyncBuilderPool(pool.DefaultBufferCapacity)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder := p.Get()
		buildMessage(builder, benchPayload)
		p.Put(builder)
	}
}

func BenchmarkSyncPoolParallel(b *testing.B) {
	p := pool.NewSyncBuilderPool(pool.DefaultBufferCapacity)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			builder := p.Get()
			buildMessage(builder, benchPayload)
			p.Put(builder)
		}
	})
}

func BenchmarkUnpooled(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buildMessage(flatbuffers.NewBuilder(pool.DefaultBufferCapacity), benchPayload)
	}
}

func BenchmarkUnpooledParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buildMessage(flatbuffers.NewBuilder(pool.DefaultBufferCapacity), benchPayload)
		}
	})
}

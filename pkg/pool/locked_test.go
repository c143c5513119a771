package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedPool_GetAllocatesWhenEmpty(t *testing.T) {
	p := NewLockedPool(0, 2, 64)

	b := p.Get()
	require.NotNil(t, b)
	require.NotNil(t, b.Builder)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(0), stats.Hits)

	b.Release()
}

func TestLockedPool_RecyclesSameInstance(t *testing.T) {
	p := NewLockedPool(0, 2, 64)

	first := p.Get()
	finishMessage(first, "hello")
	first.Release()
	require.Equal(t, 1, p.Stats().Idle)

	second := p.Get()
	assert.Same(t, first, second)
	assert.Zero(t, second.Offset(), "recycled builder must be reset")

	second.Release()
}

func TestLockedPool_Prepopulation(t *testing.T) {
	p := NewLockedPool(4, 8, 64)
	assert.Equal(t, 4, p.Stats().Idle)

	b := p.Get()
	assert.Zero(t, b.Offset())
	assert.Equal(t, uint64(1), p.Stats().Hits)
	b.Release()
}

func TestLockedPool_ReleaseBeyondCapacityDiscards(t *testing.T) {
	p := NewLockedPool(0, 1, 64)

	first := p.Get()
	second := p.Get()
	require.NotSame(t, first, second)

	first.Release()
	second.Release()

	stats := p.Stats()
	assert.Equal(t, 1, stats.Idle)
	assert.Equal(t, uint64(1), stats.Returns)
	assert.Equal(t, uint64(1), stats.Discards)
}

func TestLockedPool_InitialAboveMaxRaisesMax(t *testing.T) {
	p := NewLockedPool(10, 4, 64)
	assert.Equal(t, 10, p.Stats().Idle)
	assert.Equal(t, 10, p.max)
}

func TestLockedPool_ConcurrentUse(t *testing.T) {
	const workers = 8
	p := NewLockedPool(0, 4, 64)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				b := p.Get()
				finishMessage(b, "payload")
				b.Release()
			}
		}()
	}
	wg.Wait()

	stats := p.Stats()
	assert.LessOrEqual(t, stats.Idle, 4)
	assert.Equal(t, uint64(workers*200), stats.Gets)
	assert.Equal(t, stats.Gets, stats.Returns+stats.Discards)
}

func TestGetLocked_GlobalRoundTrip(t *testing.T) {
	b := GetLocked()
	require.NotNil(t, b)
	require.NotEmpty(t, finishMessage(b, "global locked"))
	b.Release()

	next := GetLocked()
	assert.Zero(t, next.Offset())
	next.Release()
}

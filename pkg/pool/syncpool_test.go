package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPool_GetPut(t *testing.T) {
	type payload struct{ data []byte }

	p := NewSyncPool(
		func() *payload { return &payload{data: make([]byte, 0, 128)} },
		func(obj *payload) { obj.data = obj.data[:0] },
	)

	obj := p.Get()
	require.NotNil(t, obj)
	obj.data = append(obj.data, "content"...)
	p.Put(obj)

	recycled := p.Get()
	assert.Empty(t, recycled.data, "reset must run before the object re-enters the pool")
	p.Put(recycled)
}

func TestSyncPool_Stats(t *testing.T) {
	p := NewSyncBuilderPool(64)

	b := p.Get()
	gets, allocated, inUse, _ := p.Stats()
	assert.Equal(t, int64(1), gets)
	assert.Equal(t, int64(1), allocated)
	assert.Equal(t, int64(1), inUse)

	p.Put(b)
	_, _, inUse, _ = p.Stats()
	assert.Equal(t, int64(0), inUse)
}

func TestSyncBuilderPool_RoundTrip(t *testing.T) {
	p := NewSyncBuilderPool(64)

	b := p.Get()
	off := b.CreateString("sync pool baseline")
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, off, 0)
	b.Finish(b.EndObject())
	require.NotEmpty(t, b.FinishedBytes())
	p.Put(b)

	recycled := p.Get()
	assert.Zero(t, recycled.Offset(), "builders are reset on Put")
	p.Put(recycled)
}

func TestSyncPool_Concurrent(t *testing.T) {
	const workers = 8
	p := NewSyncBuilderPool(64)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				b := p.Get()
				b.CreateString("x")
				p.Put(b)
			}
		}()
	}
	wg.Wait()

	_, _, inUse, _ := p.Stats()
	assert.Equal(t, int64(0), inUse)
}

package meshing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glescraft/internal/graphics"
)

type fakeOwner struct {
	used    time.Duration
	evicted int
}

func (o *fakeOwner) LastUsed() time.Duration { return o.used }
func (o *fakeOwner) Evict()                  { o.evicted++ }

func TestClaimAllocatesLazily(t *testing.T) {
	rec := graphics.NewRecorder()
	pool := NewSlotPool(rec, 3)
	assert.Equal(t, 0, rec.Live())

	a, b := &fakeOwner{}, &fakeOwner{}
	ia, bufA, err := pool.Claim(a)
	require.NoError(t, err)
	ib, bufB, err := pool.Claim(b)
	require.NoError(t, err)

	assert.Equal(t, 0, ia)
	assert.Equal(t, 1, ib)
	assert.NotEqual(t, bufA, bufB)
	assert.Equal(t, 2, rec.Live())
	assert.Equal(t, 2, pool.Claimed())
	assert.True(t, pool.Owns(ia, a))
	assert.False(t, pool.Owns(ia, b))
}

func TestClaimIsIdempotentForOwner(t *testing.T) {
	pool := NewSlotPool(graphics.NewRecorder(), 2)
	a := &fakeOwner{}
	i1, b1, err := pool.Claim(a)
	require.NoError(t, err)
	i2, b2, err := pool.Claim(a)
	require.NoError(t, err)
	assert.Equal(t, i1, i2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, 1, pool.Claimed())
}

func TestReleaseKeepsBuffer(t *testing.T) {
	rec := graphics.NewRecorder()
	pool := NewSlotPool(rec, 2)
	a, b := &fakeOwner{}, &fakeOwner{}

	ia, bufA, err := pool.Claim(a)
	require.NoError(t, err)
	pool.Release(ia, a)
	assert.Equal(t, 0, pool.Claimed())
	assert.False(t, pool.Owns(ia, a))

	ib, bufB, err := pool.Claim(b)
	require.NoError(t, err)
	assert.Equal(t, ia, ib)
	assert.Equal(t, bufA, bufB)
	assert.Equal(t, 1, rec.Allocations())
}

func TestReleaseByNonOwnerIsIgnored(t *testing.T) {
	pool := NewSlotPool(graphics.NewRecorder(), 1)
	a, b := &fakeOwner{}, &fakeOwner{}
	ia, _, err := pool.Claim(a)
	require.NoError(t, err)
	pool.Release(ia, b)
	assert.True(t, pool.Owns(ia, a))
	assert.Equal(t, 1, pool.Claimed())
}

func TestClaimEvictsLeastRecentlyUsed(t *testing.T) {
	rec := graphics.NewRecorder()
	pool := NewSlotPool(rec, 3)
	owners := []*fakeOwner{{used: 30}, {used: 10}, {used: 20}}
	for _, o := range owners {
		_, _, err := pool.Claim(o)
		require.NoError(t, err)
	}

	late := &fakeOwner{used: 40}
	i, buf, err := pool.Claim(late)
	require.NoError(t, err)

	assert.Equal(t, 1, i)
	assert.Equal(t, pool.Buffer(1), buf)
	assert.Equal(t, 1, owners[1].evicted)
	assert.Zero(t, owners[0].evicted)
	assert.Zero(t, owners[2].evicted)
	assert.True(t, pool.Owns(1, late))
	assert.False(t, pool.Owns(1, owners[1]))
	assert.Equal(t, 3, rec.Live())
	assert.Equal(t, 3, pool.Claimed())
	assert.Equal(t, 1, pool.Stats().Evictions)
}

func TestEvictionTiesResolveByScanOrder(t *testing.T) {
	pool := NewSlotPool(graphics.NewRecorder(), 2)
	a, b := &fakeOwner{used: 5}, &fakeOwner{used: 5}
	_, _, err := pool.Claim(a)
	require.NoError(t, err)
	_, _, err = pool.Claim(b)
	require.NoError(t, err)

	i, _, err := pool.Claim(&fakeOwner{})
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, a.evicted)
	assert.Zero(t, b.evicted)
}

func TestLiveBuffersNeverExceedSize(t *testing.T) {
	rec := graphics.NewRecorder()
	pool := NewSlotPool(rec, 4)
	for n := 0; n < 50; n++ {
		_, _, err := pool.Claim(&fakeOwner{used: time.Duration(n)})
		require.NoError(t, err)
		assert.LessOrEqual(t, pool.Claimed(), pool.Size())
	}
	assert.Equal(t, 4, rec.PeakLive())
	assert.Equal(t, 46, pool.Stats().Evictions)
}

func TestClaimReportsAllocationFailure(t *testing.T) {
	rec := graphics.NewRecorder()
	rec.MaxBuffers = 1
	pool := NewSlotPool(rec, 2)
	_, _, err := pool.Claim(&fakeOwner{})
	require.NoError(t, err)
	_, _, err = pool.Claim(&fakeOwner{})
	assert.Error(t, err)
	assert.Equal(t, 1, pool.Claimed())
}

func TestDisposeDeletesBuffers(t *testing.T) {
	rec := graphics.NewRecorder()
	pool := NewSlotPool(rec, 3)
	a, b := &fakeOwner{}, &fakeOwner{}
	_, _, _ = pool.Claim(a)
	ib, _, _ := pool.Claim(b)
	pool.Release(ib, b)

	pool.Dispose()
	assert.Equal(t, 0, rec.Live())
	assert.Equal(t, 0, pool.Claimed())
	assert.Equal(t, 1, a.evicted)
	assert.Zero(t, b.evicted)
}

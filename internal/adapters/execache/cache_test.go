package execache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/internal/adapters/execache"
	"go.trai.ch/vista/internal/core/domain"
)

func epoch() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestCache_GetPut(t *testing.T) {
	c := execache.NewCache()
	key := domain.NewCacheKey(domain.NewUniqueID("View", "main", "1"), "feed-a")

	_, ok := c.Get(key)
	assert.False(t, ok)

	compiled := &domain.CompiledView{CompilationID: 1}
	c.Put(key, compiled)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, compiled, got)

	// Same definition against a different availability is a different entry.
	other := domain.NewCacheKey(domain.NewUniqueID("View", "main", "1"), "feed-b")
	_, ok = c.Get(other)
	assert.False(t, ok)

	replacement := &domain.CompiledView{CompilationID: 2}
	c.Put(key, replacement)
	got, _ = c.Get(key)
	assert.Same(t, replacement, got)
}

func TestCache_LocksSharedPerKey(t *testing.T) {
	c := execache.NewCache()
	key := domain.NewCacheKey(domain.NewUniqueID("View", "main", "1"), "feed-a")
	other := domain.NewCacheKey(domain.NewUniqueID("View", "main", "1"), "feed-b")

	first := c.Locks(key)
	second := c.Locks(key)
	require.NotNil(t, first.Broad)
	require.NotNil(t, first.Narrow)
	assert.Same(t, first.Broad, second.Broad)
	assert.Same(t, first.Narrow, second.Narrow)
	assert.NotSame(t, first.Broad, first.Narrow)

	assert.NotSame(t, first.Broad, c.Locks(other).Broad)
}

func TestCache_VersionCorrectionLock(t *testing.T) {
	c := execache.NewCache()
	vc := domain.VersionCorrectionLatest.WithLatestFixed(epoch())

	assert.Same(t, c.VersionCorrectionLock(vc), c.VersionCorrectionLock(vc))
	otherVC := domain.VersionCorrectionLatest.WithLatestFixed(epoch().Add(1))
	assert.NotSame(t, c.VersionCorrectionLock(vc), c.VersionCorrectionLock(otherVC))
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := execache.NewCache()
	key := domain.NewCacheKey(domain.NewUniqueID("View", "main", "1"), "feed-a")

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(key, &domain.CompiledView{CompilationID: int64(i)})
			c.Get(key)
			c.Locks(key)
		}()
	}
	wg.Wait()

	_, ok := c.Get(key)
	assert.True(t, ok)
}

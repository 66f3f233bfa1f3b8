// Package execache implements the in-memory execution cache holding compiled
// views and the lock registries coordinating concurrent compilation.
package execache

import (
	"sync"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// Cache implements ports.ExecutionCache. Entries live for the process; a
// compilation is only replaced, never evicted, since workers sharing a key
// converge on the most recent compilation.
type Cache struct {
	mu      sync.Mutex
	entries map[domain.CacheKey]*domain.CompiledView
	locks   map[domain.CacheKey]ports.CompilationLocks
	vcLocks map[domain.VersionCorrection]*sync.Mutex
}

// NewCache creates an empty execution cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[domain.CacheKey]*domain.CompiledView),
		locks:   make(map[domain.CacheKey]ports.CompilationLocks),
		vcLocks: make(map[domain.VersionCorrection]*sync.Mutex),
	}
}

// Get implements ports.ExecutionCache.
func (c *Cache) Get(key domain.CacheKey) (*domain.CompiledView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put implements ports.ExecutionCache.
func (c *Cache) Put(key domain.CacheKey, compiled *domain.CompiledView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = compiled
}

// Locks implements ports.ExecutionCache. The pair is created on first use and
// lives as long as the cache, so all workers with an equal key share it.
func (c *Cache) Locks(key domain.CacheKey) ports.CompilationLocks {
	c.mu.Lock()
	defer c.mu.Unlock()
	pair, ok := c.locks[key]
	if !ok {
		pair = ports.CompilationLocks{Broad: &sync.Mutex{}, Narrow: &sync.Mutex{}}
		c.locks[key] = pair
	}
	return pair
}

// VersionCorrectionLock implements ports.ExecutionCache.
func (c *Cache) VersionCorrectionLock(vc domain.VersionCorrection) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.vcLocks[vc]
	if !ok {
		lock = &sync.Mutex{}
		c.vcLocks[vc] = lock
	}
	return lock
}

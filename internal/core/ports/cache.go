package ports

import (
	"sync"

	"go.trai.ch/vista/internal/core/domain"
)

// CompilationLocks is the lock pair guarding one cache key. The broad lock
// serializes graph compilation; the narrow lock guards reads and writes of the
// cached entry. Lock ordering is narrow before broad on acquisition; the broad
// lock may be released and re-taken while the narrow lock is held across the
// whole operation.
type CompilationLocks struct {
	// Broad serializes compilation for the key.
	Broad *sync.Mutex
	// Narrow guards cache entry access for the key.
	Narrow *sync.Mutex
}

// ExecutionCache stores compiled views keyed by definition and market data
// availability, along with the locks that coordinate concurrent compilers.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ExecutionCache interface {
	// Get returns the cached compilation for the key, if any.
	Get(key domain.CacheKey) (*domain.CompiledView, bool)
	// Put stores a compilation under the key, replacing any existing entry.
	Put(key domain.CacheKey, compiled *domain.CompiledView)
	// Locks returns the lock pair for the key. Callers with an equal key
	// receive the same pair.
	Locks(key domain.CacheKey) CompilationLocks
	// VersionCorrectionLock returns a mutex shared by all workers resolving
	// at the same fixed version-correction, serializing re-resolution sweeps.
	VersionCorrectionLock(vc domain.VersionCorrection) *sync.Mutex
}

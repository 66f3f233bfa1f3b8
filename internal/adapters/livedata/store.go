// Package livedata implements the live market data provider: a subscription
// multiplexer over an upstream feed client and a last-known-value store that
// cycles snapshot from.
package livedata

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/vista/internal/core/domain"
)

// Store holds the last known value per specification. Writers are the feed
// goroutine; readers are snapshots and waiters.
type Store struct {
	mu      sync.RWMutex
	values  map[domain.ValueSpecification]any
	updated time.Time
	// changed is closed and replaced on every write so waiters can re-check.
	changed chan struct{}
}

// NewStore creates an empty last-known-value store.
func NewStore() *Store {
	return &Store{
		values:  make(map[domain.ValueSpecification]any),
		changed: make(chan struct{}),
	}
}

// Put stores a value and wakes waiters.
func (s *Store) Put(spec domain.ValueSpecification, value any) {
	s.mu.Lock()
	s.values[spec] = value
	s.updated = time.Now()
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()
}

// Get returns the last known value for a specification.
func (s *Store) Get(spec domain.ValueSpecification) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[spec]
	return v, ok
}

// Remove drops a specification's value, typically on unsubscribe.
func (s *Store) Remove(spec domain.ValueSpecification) {
	s.mu.Lock()
	delete(s.values, spec)
	s.mu.Unlock()
}

// SnapshotAll copies the current values.
func (s *Store) SnapshotAll() map[domain.ValueSpecification]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[domain.ValueSpecification]any, len(s.values))
	for spec, v := range s.values {
		out[spec] = v
	}
	return out
}

// LastUpdate returns when a value last arrived. Zero before the first write.
func (s *Store) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// WaitFor blocks until every given specification has a value or the context
// ends.
func (s *Store) WaitFor(ctx context.Context, specs []domain.ValueSpecification) error {
	for {
		s.mu.RLock()
		missing := false
		for _, spec := range specs {
			if _, ok := s.values[spec]; !ok {
				missing = true
				break
			}
		}
		ch := s.changed
		s.mu.RUnlock()
		if !missing {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

package livedata

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// snapshot is a point-in-time copy of the last-known-value store. Construction
// is cheap; values are copied at Init time so a cycle reads a consistent set
// while ticks keep flowing into the store.
type snapshot struct {
	store *Store
	clock clockwork.Clock

	mu     sync.RWMutex
	values map[domain.ValueSpecification]any
	taken  time.Time
}

var _ ports.MarketDataSnapshot = (*snapshot)(nil)

func newSnapshot(store *Store, clock clockwork.Clock) *snapshot {
	return &snapshot{store: store, clock: clock}
}

// TimeIndication estimates the snapshot time without initializing. Before any
// tick arrived it falls back to the current time.
func (s *snapshot) TimeIndication() time.Time {
	if t := s.store.LastUpdate(); !t.IsZero() {
		return t
	}
	return s.clock.Now()
}

// Init copies whatever values are currently available.
func (s *snapshot) Init(_ context.Context) error {
	s.mu.Lock()
	s.values = s.store.SnapshotAll()
	s.taken = s.clock.Now()
	s.mu.Unlock()
	return nil
}

// InitWithValues waits until every given specification has a value, then
// copies the store. The wait is bounded only by the context.
func (s *snapshot) InitWithValues(ctx context.Context, specs []domain.ValueSpecification) error {
	if err := s.store.WaitFor(ctx, specs); err != nil {
		return zerr.Wrap(err, "waiting for market data")
	}
	return s.Init(ctx)
}

func (s *snapshot) Time() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taken
}

func (s *snapshot) Query(spec domain.ValueSpecification) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.values == nil {
		return nil, false
	}
	v, ok := s.values[spec]
	return v, ok
}

// Package refdata is an in-memory, versioned reference data store backing
// target resolution. Every put records the instant the new version became
// current, so resolution at a fixed version-correction replays the state as
// of that instant while resolution at latest floats with the store.
package refdata

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

type entityVersion struct {
	uid  domain.UniqueID
	from time.Time
}

type portfolioVersion struct {
	portfolio *domain.Portfolio
	from      time.Time
}

// Store implements ports.TargetResolver over in-memory version histories.
type Store struct {
	clock clockwork.Clock
	log   ports.Logger

	mu           sync.RWMutex
	entities     map[domain.ExternalID][]entityVersion
	portfolios   map[domain.ObjectID][]portfolioVersion
	seq          int
	listeners    map[int]ports.ChangeListener
	nextListener int
}

var _ ports.TargetResolver = (*Store)(nil)

// NewStore creates an empty store.
func NewStore(clock clockwork.Clock, log ports.Logger) *Store {
	return &Store{
		clock:      clock,
		log:        log,
		entities:   make(map[domain.ExternalID][]entityVersion),
		portfolios: make(map[domain.ObjectID][]portfolioVersion),
		listeners:  make(map[int]ports.ChangeListener),
	}
}

// PutEntity records a new version of the entity known under the external
// identifier and returns its unique id. Listeners are notified of the
// object's change.
func (s *Store) PutEntity(id domain.ExternalID, oid domain.ObjectID) domain.UniqueID {
	s.mu.Lock()
	s.seq++
	uid := domain.NewUniqueID(oid.Scheme, oid.Value, "v"+strconv.Itoa(s.seq))
	s.entities[id] = append(s.entities[id], entityVersion{uid: uid, from: s.clock.Now()})
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.log.Debug("entity version recorded", "id", id.String(), "uid", uid.String())
	s.notify(listeners, oid)
	return uid
}

// PutPortfolio records a new version of a portfolio tree. The given tree is
// copied and every node and position is stamped with the new version, so
// repeated puts of a structurally identical tree yield distinct unique ids
// over stable object ids.
func (s *Store) PutPortfolio(oid domain.ObjectID, name string, root *domain.PortfolioNode) *domain.Portfolio {
	s.mu.Lock()
	s.seq++
	version := "v" + strconv.Itoa(s.seq)
	portfolio := &domain.Portfolio{
		UID:  domain.NewUniqueID(oid.Scheme, oid.Value, version),
		Name: name,
		Root: stampNode(root, version),
	}
	s.portfolios[oid] = append(s.portfolios[oid], portfolioVersion{portfolio: portfolio, from: s.clock.Now()})
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.log.Debug("portfolio version recorded", "portfolio", portfolio.UID.String())
	s.notify(listeners, oid)
	return portfolio
}

func stampNode(node *domain.PortfolioNode, version string) *domain.PortfolioNode {
	if node == nil {
		return nil
	}
	out := &domain.PortfolioNode{
		UID:  withVersion(node.UID, version),
		Name: node.Name,
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, stampNode(child, version))
	}
	for _, pos := range node.Positions {
		stamped := &domain.Position{
			UID:      withVersion(pos.UID, version),
			Security: pos.Security,
			Quantity: pos.Quantity,
		}
		for _, trade := range pos.Trades {
			stamped.Trades = append(stamped.Trades, domain.Trade{
				UID:      withVersion(trade.UID, version),
				Security: trade.Security,
				Quantity: trade.Quantity,
			})
		}
		out.Positions = append(out.Positions, stamped)
	}
	return out
}

func withVersion(uid domain.UniqueID, version string) domain.UniqueID {
	return domain.NewUniqueID(uid.Scheme, uid.Value, version)
}

// Resolve returns the unique id current at the version-correction.
func (s *Store) Resolve(_ context.Context, ref domain.TargetReference, vc domain.VersionCorrection) (domain.UniqueID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.entities[ref.ID]
	for i := len(history) - 1; i >= 0; i-- {
		if current(history[i].from, vc) {
			return history[i].uid, nil
		}
	}
	return domain.UniqueID{}, zerr.With(zerr.Wrap(domain.ErrTargetNotResolved, "resolving reference"), "target", ref.String())
}

// ResolveAll resolves a batch, omitting references that do not resolve.
func (s *Store) ResolveAll(ctx context.Context, refs []domain.TargetReference, vc domain.VersionCorrection) (map[domain.TargetReference]domain.UniqueID, error) {
	out := make(map[domain.TargetReference]domain.UniqueID, len(refs))
	for _, ref := range refs {
		uid, err := s.Resolve(ctx, ref, vc)
		if err != nil {
			continue
		}
		out[ref] = uid
	}
	return out, nil
}

// ResolvePortfolio returns the portfolio version current at the
// version-correction.
func (s *Store) ResolvePortfolio(_ context.Context, oid domain.ObjectID, vc domain.VersionCorrection) (*domain.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.portfolios[oid]
	for i := len(history) - 1; i >= 0; i-- {
		if current(history[i].from, vc) {
			return history[i].portfolio, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrTargetNotResolved, "resolving portfolio"), "portfolio", oid.String())
}

// current reports whether a version recorded at from is visible at vc.
func current(from time.Time, vc domain.VersionCorrection) bool {
	return vc.VersionAsOf.IsZero() || !from.After(vc.VersionAsOf)
}

// AddChangeListener registers for change notifications.
func (s *Store) AddChangeListener(l ports.ChangeListener) (remove func()) {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotListeners() []ports.ChangeListener {
	out := make([]ports.ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func (s *Store) notify(listeners []ports.ChangeListener, oid domain.ObjectID) {
	for _, l := range listeners {
		l(ports.ChangeNotification{ObjectID: oid})
	}
}

package livedata

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// subState is the lifecycle of one upstream feed subscription.
type subState uint8

const (
	statePending subState = iota
	stateActive
	stateFailed
)

// subscription is the demand on one upstream feed identifier. Several value
// specifications may map to the same identifier; each carries its own
// reference count. The subscription is removed when total demand reaches zero.
type subscription struct {
	refs      map[domain.ValueSpecification]int
	requested domain.ExternalID
	// qualified is the upstream's canonical identifier, known once active.
	qualified domain.ExternalID
	state     subState
}

func (s *subscription) specs() []domain.ValueSpecification {
	out := make([]domain.ValueSpecification, 0, len(s.refs))
	for spec := range s.refs {
		out = append(out, spec)
	}
	return out
}

// activeID is the identifier the upstream actually knows this subscription by.
func (s *subscription) activeID() domain.ExternalID {
	if !s.qualified.IsEmpty() {
		return s.qualified
	}
	return s.requested
}

// Provider multiplexes value specification subscriptions onto a single
// upstream feed connection. Overlapping demand for the same feed identifier
// results in exactly one upstream subscription; updates fan out to every
// specification mapped under it.
//
// The mutex guards the subscription tables and is held across upstream feed
// calls to keep them ordered relative to local state. Feed results must
// therefore arrive asynchronously, never inline from Subscribe.
type Provider struct {
	mu          sync.Mutex
	feed        ports.FeedClient
	store       *Store
	clock       clockwork.Clock
	log         ports.Logger
	schemes     map[string]struct{}
	byRequested map[domain.ExternalID]*subscription
	byQualified map[domain.ExternalID]*subscription
	bySpec      map[domain.ValueSpecification]*subscription
	listeners   map[int]ports.MarketDataListener
	nextID      int
	signature   string
}

var _ ports.MarketDataProvider = (*Provider)(nil)
var _ ports.FeedListener = (*Provider)(nil)

// NewProvider creates a provider over the given feed. schemes names the
// external identifier schemes the upstream can serve; they fix the
// availability signature compilations are cached under.
func NewProvider(feed ports.FeedClient, schemes []string, clock clockwork.Clock, log ports.Logger) *Provider {
	set := make(map[string]struct{}, len(schemes))
	for _, s := range schemes {
		set[s] = struct{}{}
	}
	sorted := make([]string, 0, len(set))
	for s := range set {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)
	p := &Provider{
		feed:        feed,
		store:       NewStore(),
		clock:       clock,
		log:         log,
		schemes:     set,
		byRequested: make(map[domain.ExternalID]*subscription),
		byQualified: make(map[domain.ExternalID]*subscription),
		bySpec:      make(map[domain.ValueSpecification]*subscription),
		listeners:   make(map[int]ports.MarketDataListener),
		signature:   "live:" + strings.Join(sorted, ","),
	}
	feed.SetListener(p)
	return p
}

// Store exposes the last-known-value store, mainly for tests and tooling.
func (p *Provider) Store() *Store {
	return p.store
}

// AddListener registers a listener and returns its unregister function.
func (p *Provider) AddListener(l ports.MarketDataListener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *Provider) snapshotListeners() []ports.MarketDataListener {
	out := make([]ports.MarketDataListener, 0, len(p.listeners))
	for _, l := range p.listeners {
		out = append(out, l)
	}
	return out
}

// feedID derives the upstream identifier a specification subscribes under.
func feedID(spec domain.ValueSpecification) domain.ExternalID {
	return domain.NewExternalID(spec.Target.UID.Scheme, spec.Target.UID.Value)
}

// Subscribe registers demand for the given specifications. New and previously
// failed feed identifiers are batched into a single upstream request; results
// arrive asynchronously on the feed listener. Specifications already active
// are acknowledged immediately.
func (p *Provider) Subscribe(ctx context.Context, specs []domain.ValueSpecification) error {
	p.mu.Lock()

	var request []domain.ExternalID
	var alreadyActive []domain.ValueSpecification
	for _, spec := range specs {
		id := feedID(spec)
		sub, ok := p.byRequested[id]
		if !ok {
			sub = &subscription{
				refs:      make(map[domain.ValueSpecification]int),
				requested: id,
			}
			p.byRequested[id] = sub
			request = append(request, id)
		}
		sub.refs[spec]++
		p.bySpec[spec] = sub
		switch sub.state {
		case stateActive:
			alreadyActive = append(alreadyActive, spec)
		case stateFailed:
			// Failed subscriptions are retried on renewed demand.
			sub.state = statePending
			request = append(request, id)
		}
	}

	listeners := p.snapshotListeners()

	var err error
	if len(request) > 0 {
		err = p.feed.Subscribe(ctx, request)
	}
	p.mu.Unlock()

	if len(alreadyActive) > 0 {
		for _, l := range listeners {
			l.SubscriptionsSucceeded(alreadyActive)
		}
	}
	if err != nil {
		return zerr.Wrap(err, "subscribing upstream feed")
	}
	return nil
}

// Unsubscribe releases demand. A feed identifier whose total demand reaches
// zero is unsubscribed upstream, using the qualified identifier when one was
// established.
func (p *Provider) Unsubscribe(ctx context.Context, specs []domain.ValueSpecification) error {
	p.mu.Lock()

	var release []domain.ExternalID
	var removed []domain.ValueSpecification
	for _, spec := range specs {
		sub, ok := p.bySpec[spec]
		if !ok {
			continue
		}
		sub.refs[spec]--
		if sub.refs[spec] > 0 {
			continue
		}
		delete(sub.refs, spec)
		delete(p.bySpec, spec)
		p.store.Remove(spec)
		removed = append(removed, spec)
		if len(sub.refs) == 0 {
			if sub.state == stateActive {
				release = append(release, sub.activeID())
			}
			delete(p.byRequested, sub.requested)
			if !sub.qualified.IsEmpty() {
				delete(p.byQualified, sub.qualified)
			}
		}
	}

	listeners := p.snapshotListeners()

	var err error
	if len(release) > 0 {
		err = p.feed.Unsubscribe(ctx, release)
	}
	p.mu.Unlock()

	if len(removed) > 0 {
		for _, l := range listeners {
			l.SubscriptionsRemoved(removed)
		}
	}
	if err != nil {
		return zerr.Wrap(err, "unsubscribing upstream feed")
	}
	return nil
}

// Resubscribe re-requests every subscription whose feed identifier uses one of
// the given schemes. Active subscriptions are left alone; pending and failed
// ones are resubmitted.
func (p *Provider) Resubscribe(ctx context.Context, schemes map[string]struct{}) error {
	p.mu.Lock()

	var request []domain.ExternalID
	for id, sub := range p.byRequested {
		if _, ok := schemes[id.Scheme]; !ok {
			continue
		}
		if sub.state == stateActive {
			continue
		}
		sub.state = statePending
		request = append(request, id)
	}

	var err error
	if len(request) > 0 {
		err = p.feed.Subscribe(ctx, request)
	}
	p.mu.Unlock()

	if err != nil {
		return zerr.Wrap(err, "resubscribing upstream feed")
	}
	return nil
}

// SubscriptionResults matches upstream outcomes back to subscriptions by
// requested identifier. Successful results establish the qualified identifier
// incoming updates are keyed by. Failures flip the subscription to the failed
// state and report every mapped specification as both changed and failed, so
// cycles blocked on initial data are released.
func (p *Provider) SubscriptionResults(results []ports.FeedResult) {
	p.mu.Lock()

	var succeeded []domain.ValueSpecification
	type failure struct {
		spec   domain.ValueSpecification
		reason string
	}
	var failed []failure
	for _, res := range results {
		sub, ok := p.byRequested[res.Requested]
		if !ok {
			p.log.Warn("subscription result for unknown identifier", "id", res.Requested.String())
			continue
		}
		if res.Status == ports.FeedSubscribed {
			if sub.state == stateActive {
				p.log.Warn("duplicate subscription result", "id", res.Requested.String())
				delete(p.byQualified, sub.qualified)
			}
			sub.state = stateActive
			sub.qualified = res.Qualified
			if stale, ok := p.byQualified[res.Qualified]; ok && stale != sub {
				p.log.Warn("qualified identifier already mapped, replacing", "id", res.Qualified.String())
				stale.qualified = domain.ExternalID{}
			}
			p.byQualified[res.Qualified] = sub
			succeeded = append(succeeded, sub.specs()...)
			continue
		}
		sub.state = stateFailed
		sub.qualified = domain.ExternalID{}
		for _, spec := range sub.specs() {
			failed = append(failed, failure{spec: spec, reason: res.Reason})
		}
	}

	listeners := p.snapshotListeners()
	p.mu.Unlock()

	if len(succeeded) > 0 {
		for _, l := range listeners {
			l.SubscriptionsSucceeded(succeeded)
		}
	}
	for _, f := range failed {
		for _, l := range listeners {
			l.ValuesChanged([]domain.ValueSpecification{f.spec})
			l.SubscriptionFailed(f.spec, f.reason)
		}
	}
}

// ValueUpdate fans one upstream tick out to every specification mapped under
// the qualified identifier. Numeric values are coerced to float64 here so the
// rest of the system sees a single representation.
func (p *Provider) ValueUpdate(qualified domain.ExternalID, fields map[string]any) {
	p.mu.Lock()
	sub, ok := p.byQualified[qualified]
	if !ok {
		p.mu.Unlock()
		p.log.Debug("value update for unmapped identifier", "id", qualified.String())
		return
	}
	var changed []domain.ValueSpecification
	for _, spec := range sub.specs() {
		raw, ok := fields[spec.ValueName]
		if !ok {
			continue
		}
		p.store.Put(spec, coerce(raw))
		changed = append(changed, spec)
	}
	listeners := p.snapshotListeners()
	p.mu.Unlock()

	if len(changed) > 0 {
		for _, l := range listeners {
			l.ValuesChanged(changed)
		}
	}
}

// coerce narrows wire-level numeric types to float64. Non-numeric values pass
// through unchanged.
func coerce(v any) any {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v
	}
}

// Snapshot returns an uninitialized point-in-time view over the store.
func (p *Provider) Snapshot() ports.MarketDataSnapshot {
	return newSnapshot(p.store, p.clock)
}

// AvailabilitySignature digests the schemes this provider serves.
func (p *Provider) AvailabilitySignature() string {
	return p.signature
}

// Satisfies reports whether the requirement's target identifier uses a scheme
// the upstream serves, and the specification it would publish under.
func (p *Provider) Satisfies(req domain.ValueRequirement) (domain.ValueSpecification, bool) {
	if _, ok := p.schemes[req.Target.ID.Scheme]; !ok {
		return domain.ValueSpecification{}, false
	}
	spec := domain.ValueSpecification{
		ValueName: req.ValueName,
		Target: domain.TargetSpec{
			Kind: req.Target.Kind,
			UID:  domain.UniqueID{Scheme: req.Target.ID.Scheme, Value: req.Target.ID.Value},
		},
		Properties: req.Constraints,
	}
	return spec, true
}

// Available reports whether the specification's scheme is still served.
func (p *Provider) Available(spec domain.ValueSpecification) bool {
	_, ok := p.schemes[spec.Target.UID.Scheme]
	return ok
}

// Failed reports whether the specification's subscription failed and is
// eligible for retry.
func (p *Provider) Failed(spec domain.ValueSpecification) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sub, ok := p.bySpec[spec]
	return ok && sub.state == stateFailed
}

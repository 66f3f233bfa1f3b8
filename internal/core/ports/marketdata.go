package ports

import (
	"context"
	"time"

	"go.trai.ch/vista/internal/core/domain"
)

// MarketDataListener receives subscription lifecycle events and value updates
// from a market data provider. Callbacks may arrive from the provider's feed
// goroutine; implementations must not block.
type MarketDataListener interface {
	// SubscriptionsSucceeded reports specifications whose subscriptions are
	// now active.
	SubscriptionsSucceeded(specs []domain.ValueSpecification)
	// SubscriptionFailed reports one specification that could not be
	// subscribed, with the upstream reason.
	SubscriptionFailed(spec domain.ValueSpecification, reason string)
	// SubscriptionsRemoved reports specifications that are no longer
	// subscribed.
	SubscriptionsRemoved(specs []domain.ValueSpecification)
	// ValuesChanged reports specifications whose last known value changed.
	ValuesChanged(specs []domain.ValueSpecification)
}

// MarketDataSnapshot is one consistent view of market data for a cycle.
//
//go:generate mockgen -source=marketdata.go -destination=mocks/mock_marketdata.go -package=mocks
type MarketDataSnapshot interface {
	// TimeIndication estimates the snapshot time without initializing; used
	// to pick a valuation time before the snapshot is taken.
	TimeIndication() time.Time
	// Init prepares the snapshot without waiting for any values.
	Init(ctx context.Context) error
	// InitWithValues prepares the snapshot, waiting up to the context
	// deadline for the given specifications to become available.
	InitWithValues(ctx context.Context, specs []domain.ValueSpecification) error
	// Time returns the instant the snapshot was taken. Init must have been
	// called.
	Time() time.Time
	// Query returns the snapshot value for a specification. ok is false when
	// the snapshot holds no value for it.
	Query(spec domain.ValueSpecification) (value any, ok bool)
}

// MarketDataProvider supplies market data subscriptions and snapshots.
type MarketDataProvider interface {
	// AddListener registers a listener and returns an unregister function.
	AddListener(l MarketDataListener) (remove func())

	// Subscribe registers interest in the given specifications. Results are
	// reported asynchronously to listeners. Subscribing twice to the same
	// specification increments a reference count.
	Subscribe(ctx context.Context, specs []domain.ValueSpecification) error
	// Unsubscribe decrements reference counts, releasing upstream
	// subscriptions that reach zero.
	Unsubscribe(ctx context.Context, specs []domain.ValueSpecification) error

	// Snapshot creates an uninitialized snapshot for a cycle.
	Snapshot() MarketDataSnapshot

	// AvailabilitySignature digests which requirements this provider can
	// satisfy; compilations are cached per signature.
	AvailabilitySignature() string
	// Satisfies reports whether the provider can source the requirement, and
	// if so the specification it would publish.
	Satisfies(req domain.ValueRequirement) (domain.ValueSpecification, bool)

	// Available reports whether the provider can still source the
	// specification. Upstream capability changes flip this between
	// compilations.
	Available(spec domain.ValueSpecification) bool
	// Failed reports whether a specification's subscription is in the failed
	// state and eligible for retry.
	Failed(spec domain.ValueSpecification) bool
	// Resubscribe re-requests every known subscription whose identifier uses
	// one of the given schemes. Used after an upstream reconnect.
	Resubscribe(ctx context.Context, schemes map[string]struct{}) error
}

// MarketDataProviderResolver maps a market data specification from execution
// options to a concrete provider.
type MarketDataProviderResolver interface {
	// Resolve returns the provider for the given specification.
	Resolve(spec domain.MarketDataSpec) (MarketDataProvider, error)
}

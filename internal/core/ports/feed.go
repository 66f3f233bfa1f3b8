package ports

import (
	"context"

	"go.trai.ch/vista/internal/core/domain"
)

// FeedStatus is the outcome of one upstream subscription request.
type FeedStatus uint8

const (
	// FeedSubscribed indicates the subscription is active.
	FeedSubscribed FeedStatus = iota
	// FeedNotAvailable indicates the upstream has no data for the identifier.
	FeedNotAvailable
	// FeedNotAuthorized indicates the caller may not access the identifier.
	FeedNotAuthorized
	// FeedInternalError indicates the upstream failed processing the request.
	FeedInternalError
)

// FeedResult reports the outcome of subscribing one identifier. Qualified is
// the upstream's canonical identifier for the series, which may differ from
// the requested one.
type FeedResult struct {
	Requested domain.ExternalID
	Qualified domain.ExternalID
	Status    FeedStatus
	Reason    string
}

// FeedListener receives asynchronous events from a feed client.
type FeedListener interface {
	// SubscriptionResults reports the outcome of a subscription batch.
	SubscriptionResults(results []FeedResult)
	// ValueUpdate delivers one tick for a qualified identifier. The fields
	// map field names to raw values.
	ValueUpdate(qualified domain.ExternalID, fields map[string]any)
}

// FeedClient is the upstream connection of a live market data provider.
// Subscription requests are batched; results arrive on the listener.
//
//go:generate mockgen -source=feed.go -destination=mocks/mock_feed.go -package=mocks
type FeedClient interface {
	// SetListener installs the event listener. Must be called before Subscribe.
	SetListener(l FeedListener)
	// Subscribe requests live data for a batch of identifiers.
	Subscribe(ctx context.Context, ids []domain.ExternalID) error
	// Unsubscribe releases live data for a batch of identifiers.
	Unsubscribe(ctx context.Context, ids []domain.ExternalID) error
	// Close tears down the upstream connection.
	Close() error
}

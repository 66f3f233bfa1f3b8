package livedata_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/internal/adapters/livedata"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func epoch() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func marketSpec(name, scheme, value string) domain.ValueSpecification {
	return domain.ValueSpecification{
		ValueName: name,
		Target: domain.TargetSpec{
			Kind: domain.KindPrimitive,
			UID:  domain.UniqueID{Scheme: scheme, Value: value},
		},
	}
}

// recorder collects listener callbacks for assertions.
type recorder struct {
	mu        sync.Mutex
	succeeded []domain.ValueSpecification
	failed    map[domain.ValueSpecification]string
	removed   []domain.ValueSpecification
	changed   []domain.ValueSpecification
}

func newRecorder() *recorder {
	return &recorder{failed: make(map[domain.ValueSpecification]string)}
}

func (r *recorder) SubscriptionsSucceeded(specs []domain.ValueSpecification) {
	r.mu.Lock()
	r.succeeded = append(r.succeeded, specs...)
	r.mu.Unlock()
}

func (r *recorder) SubscriptionFailed(spec domain.ValueSpecification, reason string) {
	r.mu.Lock()
	r.failed[spec] = reason
	r.mu.Unlock()
}

func (r *recorder) SubscriptionsRemoved(specs []domain.ValueSpecification) {
	r.mu.Lock()
	r.removed = append(r.removed, specs...)
	r.mu.Unlock()
}

func (r *recorder) ValuesChanged(specs []domain.ValueSpecification) {
	r.mu.Lock()
	r.changed = append(r.changed, specs...)
	r.mu.Unlock()
}

type fixture struct {
	feed     *mocks.MockFeedClient
	provider *livedata.Provider
	rec      *recorder
}

func newFixture(t *testing.T, schemes ...string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	feed := mocks.NewMockFeedClient(ctrl)
	feed.EXPECT().SetListener(gomock.Any())

	provider := livedata.NewProvider(feed, schemes, clockwork.NewFakeClockAt(epoch()), log)
	rec := newRecorder()
	provider.AddListener(rec)
	return &fixture{feed: feed, provider: provider, rec: rec}
}

func TestProvider_DeduplicatesUpstreamSubscriptions(t *testing.T) {
	f := newFixture(t, "Tick")
	specA := marketSpec("Market_Value", "Tick", "EURUSD")
	specB := marketSpec("Last_Price", "Tick", "EURUSD")

	// Two specifications, one feed identifier: exactly one upstream request.
	f.feed.EXPECT().Subscribe(gomock.Any(), []domain.ExternalID{domain.NewExternalID("Tick", "EURUSD")}).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{specA, specB}))

	// Renewed demand for a pending subscription issues nothing upstream.
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{specA}))
}

func TestProvider_QualifiedFanOutAndRefcountedUnsubscribe(t *testing.T) {
	f := newFixture(t, "Tick")
	specA := marketSpec("Market_Value", "Tick", "EURUSD")
	specB := marketSpec("Market_Value", "Tick", "EURUSD")
	specB.Properties = domain.NewProperties(map[string][]string{"Source": {"composite"}})
	requested := domain.NewExternalID("Tick", "EURUSD")
	qualified := domain.NewExternalID("TickQ", "EURUSD.X")

	f.feed.EXPECT().Subscribe(gomock.Any(), []domain.ExternalID{requested}).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{specA, specB}))

	f.provider.SubscriptionResults([]ports.FeedResult{{
		Requested: requested,
		Qualified: qualified,
		Status:    ports.FeedSubscribed,
	}})
	assert.Len(t, f.rec.succeeded, 2)

	// One tick on the qualified id reaches both specifications.
	f.provider.ValueUpdate(qualified, map[string]any{"Market_Value": 1.0825})
	assert.Len(t, f.rec.changed, 2)
	v, ok := f.provider.Store().Get(specA)
	require.True(t, ok)
	assert.Equal(t, 1.0825, v)

	// First unsubscribe leaves demand behind; no upstream call.
	require.NoError(t, f.provider.Unsubscribe(context.Background(), []domain.ValueSpecification{specA}))
	assert.Equal(t, []domain.ValueSpecification{specA}, f.rec.removed)

	// Last unsubscribe releases upstream, under the qualified id.
	f.feed.EXPECT().Unsubscribe(gomock.Any(), []domain.ExternalID{qualified}).Return(nil)
	require.NoError(t, f.provider.Unsubscribe(context.Background(), []domain.ValueSpecification{specB}))
}

func TestProvider_SubscribeWhileActiveAcksImmediately(t *testing.T) {
	f := newFixture(t, "Tick")
	spec := marketSpec("Market_Value", "Tick", "EURUSD")
	requested := domain.NewExternalID("Tick", "EURUSD")

	f.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{spec}))
	f.provider.SubscriptionResults([]ports.FeedResult{{Requested: requested, Qualified: requested, Status: ports.FeedSubscribed}})
	require.Len(t, f.rec.succeeded, 1)

	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{spec}))
	assert.Len(t, f.rec.succeeded, 2)
}

func TestProvider_FailureReportsChangedAndFailed(t *testing.T) {
	f := newFixture(t, "Tick")
	spec := marketSpec("Market_Value", "Tick", "XXXXXX")
	requested := domain.NewExternalID("Tick", "XXXXXX")

	f.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{spec}))

	f.provider.SubscriptionResults([]ports.FeedResult{{
		Requested: requested,
		Status:    ports.FeedNotAvailable,
		Reason:    "no such instrument",
	}})

	// Failures unblock waiting cycles and report the reason.
	assert.Equal(t, []domain.ValueSpecification{spec}, f.rec.changed)
	assert.Equal(t, "no such instrument", f.rec.failed[spec])
	assert.True(t, f.provider.Failed(spec))

	// Renewed demand retries the failed subscription upstream.
	f.feed.EXPECT().Subscribe(gomock.Any(), []domain.ExternalID{requested}).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{spec}))
	assert.False(t, f.provider.Failed(spec))
}

func TestProvider_ResubscribeBySchemeRetriesOnlyMatching(t *testing.T) {
	f := newFixture(t, "Tick", "Ref")
	tick := marketSpec("Market_Value", "Tick", "EURUSD")
	ref := marketSpec("Market_Value", "Ref", "DE000BAY0017")
	tickID := domain.NewExternalID("Tick", "EURUSD")
	refID := domain.NewExternalID("Ref", "DE000BAY0017")

	f.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{tick, ref}))
	f.provider.SubscriptionResults([]ports.FeedResult{
		{Requested: tickID, Status: ports.FeedNotAvailable, Reason: "down"},
		{Requested: refID, Qualified: refID, Status: ports.FeedSubscribed},
	})

	// Only the failed Tick subscription is resubmitted; the active Ref one is
	// left alone.
	f.feed.EXPECT().Subscribe(gomock.Any(), []domain.ExternalID{tickID}).Return(nil)
	require.NoError(t, f.provider.Resubscribe(context.Background(), map[string]struct{}{"Tick": {}, "Ref": {}}))
}

func TestProvider_CoercesNumericValues(t *testing.T) {
	f := newFixture(t, "Tick")
	spec := marketSpec("Volume", "Tick", "EURUSD")
	requested := domain.NewExternalID("Tick", "EURUSD")

	f.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{spec}))
	f.provider.SubscriptionResults([]ports.FeedResult{{Requested: requested, Qualified: requested, Status: ports.FeedSubscribed}})

	f.provider.ValueUpdate(requested, map[string]any{"Volume": int64(125000)})
	v, ok := f.provider.Store().Get(spec)
	require.True(t, ok)
	assert.Equal(t, float64(125000), v)
}

func TestProvider_Satisfies(t *testing.T) {
	f := newFixture(t, "Tick")

	req := domain.ValueRequirement{
		ValueName: "Market_Value",
		Target:    domain.TargetReference{Kind: domain.KindPrimitive, ID: domain.NewExternalID("Tick", "EURUSD")},
	}
	spec, ok := f.provider.Satisfies(req)
	require.True(t, ok)
	assert.Equal(t, "Market_Value", spec.ValueName)
	assert.Equal(t, "Tick", spec.Target.UID.Scheme)
	assert.True(t, f.provider.Available(spec))

	req.Target.ID = domain.NewExternalID("Unknown", "X")
	_, ok = f.provider.Satisfies(req)
	assert.False(t, ok)
}

func TestSnapshot_InitWithValuesWaitsForData(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, "Tick")
		spec := marketSpec("Market_Value", "Tick", "EURUSD")
		requested := domain.NewExternalID("Tick", "EURUSD")

		f.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil)
		require.NoError(t, f.provider.Subscribe(context.Background(), []domain.ValueSpecification{spec}))
		f.provider.SubscriptionResults([]ports.FeedResult{{Requested: requested, Qualified: requested, Status: ports.FeedSubscribed}})

		snap := f.provider.Snapshot()
		done := make(chan error, 1)
		go func() {
			done <- snap.InitWithValues(context.Background(), []domain.ValueSpecification{spec})
		}()
		synctest.Wait()

		select {
		case <-done:
			t.Fatal("snapshot initialized before any value arrived")
		default:
		}

		f.provider.ValueUpdate(requested, map[string]any{"Market_Value": 1.08})
		require.NoError(t, <-done)

		v, ok := snap.Query(spec)
		require.True(t, ok)
		assert.Equal(t, 1.08, v)

		// Later ticks do not leak into an already-taken snapshot.
		f.provider.ValueUpdate(requested, map[string]any{"Market_Value": 1.09})
		v, _ = snap.Query(spec)
		assert.Equal(t, 1.08, v)
	})
}

func TestSnapshot_InitWithValuesHonorsContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, "Tick")
		spec := marketSpec("Market_Value", "Tick", "EURUSD")

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		snap := f.provider.Snapshot()
		err := snap.InitWithValues(ctx, []domain.ValueSpecification{spec})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestResolver_ResolvesByName(t *testing.T) {
	f := newFixture(t, "Tick")
	resolver := livedata.NewResolver(f.provider)

	p, err := resolver.Resolve(domain.MarketDataSpec{Live: true})
	require.NoError(t, err)
	assert.Same(t, ports.MarketDataProvider(f.provider), p)

	_, err = resolver.Resolve(domain.MarketDataSpec{Provider: "bloomberg"})
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)

	resolver.Register("bloomberg", f.provider)
	p, err = resolver.Resolve(domain.MarketDataSpec{Provider: "bloomberg"})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

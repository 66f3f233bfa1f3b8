package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/core/ports/mocks"
	"go.trai.ch/vista/internal/engine/worker"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type harness struct {
	compiler *mocks.MockGraphCompiler
	resolver *mocks.MockTargetResolver
	cache    *mocks.MockExecutionCache
	engine   *mocks.MockComputationEngine
	mdres    *mocks.MockMarketDataProviderResolver
	provider *mocks.MockMarketDataProvider
	listener *mocks.MockCycleListener
	logger   *mocks.MockLogger
	tracer   *mocks.MockTracer

	// changeListener captures the resolver change callback the worker
	// registers, so tests can push change notifications.
	changeListener ports.ChangeListener

	// resolve, when set, overrides which provider a market data spec maps to.
	resolve func(domain.MarketDataSpec) (ports.MarketDataProvider, error)

	stored *domain.CompiledView
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		compiler: mocks.NewMockGraphCompiler(ctrl),
		resolver: mocks.NewMockTargetResolver(ctrl),
		cache:    mocks.NewMockExecutionCache(ctrl),
		engine:   mocks.NewMockComputationEngine(ctrl),
		mdres:    mocks.NewMockMarketDataProviderResolver(ctrl),
		provider: mocks.NewMockMarketDataProvider(ctrl),
		listener: mocks.NewMockCycleListener(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	h.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	h.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	h.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	h.logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	h.logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

	h.mdres.EXPECT().Resolve(gomock.Any()).DoAndReturn(func(spec domain.MarketDataSpec) (ports.MarketDataProvider, error) {
		if h.resolve != nil {
			return h.resolve(spec)
		}
		return h.provider, nil
	}).AnyTimes()
	h.provider.EXPECT().AddListener(gomock.Any()).Return(func() {}).AnyTimes()
	h.provider.EXPECT().AvailabilitySignature().Return("test-feed").AnyTimes()
	h.provider.EXPECT().Available(gomock.Any()).Return(true).AnyTimes()
	h.provider.EXPECT().Failed(gomock.Any()).Return(false).AnyTimes()
	h.provider.EXPECT().Unsubscribe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h.resolver.EXPECT().AddChangeListener(gomock.Any()).DoAndReturn(func(l ports.ChangeListener) func() {
		h.changeListener = l
		return func() {}
	}).AnyTimes()

	locks := ports.CompilationLocks{Broad: &sync.Mutex{}, Narrow: &sync.Mutex{}}
	h.cache.EXPECT().Locks(gomock.Any()).Return(locks).AnyTimes()
	vcLock := &sync.Mutex{}
	h.cache.EXPECT().VersionCorrectionLock(gomock.Any()).Return(vcLock).AnyTimes()
	h.cache.EXPECT().Get(gomock.Any()).DoAndReturn(func(domain.CacheKey) (*domain.CompiledView, bool) {
		return h.stored, h.stored != nil
	}).AnyTimes()
	h.cache.EXPECT().Put(gomock.Any(), gomock.Any()).Do(func(_ domain.CacheKey, v *domain.CompiledView) {
		h.stored = v
	}).AnyTimes()

	return h
}

func (h *harness) config(def *domain.ViewDefinition, opts domain.ExecutionOptions) worker.Config {
	return worker.Config{
		Definition: def,
		Options:    opts,
		Compiler:   h.compiler,
		Resolver:   h.resolver,
		Cache:      h.cache,
		Engine:     h.engine,
		MarketData: h.mdres,
		Listener:   h.listener,
		Logger:     h.logger,
		Tracer:     h.tracer,
	}
}

func definition() *domain.ViewDefinition {
	return &domain.ViewDefinition{
		UID:  domain.NewUniqueID("View", "main", "1"),
		Name: "main",
	}
}

func emptyCompiled(id int64) *domain.CompiledView {
	return &domain.CompiledView{
		Definition:          definition(),
		Graphs:              map[string]*domain.DependencyGraph{},
		CompilationID:       id,
		ResolvedIdentifiers: map[domain.TargetReference]domain.UniqueID{},
	}
}

// newCycle builds a mocked cycle that executes successfully.
func newCycle(ctrl *gomock.Controller, id string) *mocks.MockComputationCycle {
	c := mocks.NewMockComputationCycle(ctrl)
	c.EXPECT().UniqueID().Return(domain.NewUniqueID("Cycle", id, "")).AnyTimes()
	c.EXPECT().Execute(gomock.Any()).Return(nil).AnyTimes()
	c.EXPECT().PostExecute().AnyTimes()
	return c
}

// newSnapshot builds a mocked snapshot with no time indication that
// initializes successfully.
func newSnapshot(ctrl *gomock.Controller) *mocks.MockMarketDataSnapshot {
	s := mocks.NewMockMarketDataSnapshot(ctrl)
	s.EXPECT().TimeIndication().Return(time.Time{}).AnyTimes()
	s.EXPECT().Init(gomock.Any()).Return(nil).AnyTimes()
	return s
}

func TestWorker_FullThenDeltaCycle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)
		compiled := emptyCompiled(1)

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(compiled, nil).
			Times(1)

		cycle1 := newCycle(ctrl, "1")
		cycle2 := newCycle(ctrl, "2")
		// The second cycle runs as a delta against the first.
		cycle2.EXPECT().PreExecute(cycle1).Times(1)

		var created atomic.Int32
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ *domain.CompiledView, _ ports.MarketDataSnapshot, _ domain.CycleOptions, deltaFrom ports.ComputationCycle) (ports.CycleReference, error) {
				switch created.Add(1) {
				case 1:
					assert.Nil(t, deltaFrom)
					return ports.CycleReference{Cycle: cycle1, Release: func() {}}, nil
				default:
					assert.Equal(t, cycle1, deltaFrom)
					return ports.CycleReference{Cycle: cycle2, Release: func() {}}, nil
				}
			}).
			Times(2)

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(1)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(2)
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Times(2)
		h.listener.EXPECT().WorkerCompleted().Times(1)

		opts := domain.ExecutionOptions{
			Flags:    domain.FlagRunAsFastAsPossible,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{{}, {}}),
		}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()

		cycles, _ := w.Stats()
		assert.Equal(t, 2, cycles)
	})
}

func TestWorker_WaitsForInitialTrigger(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)
		compiled := emptyCompiled(1)

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(compiled, nil).
			AnyTimes()

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		var started atomic.Int32
		completed := make(chan struct{}, 1)
		h.listener.EXPECT().ViewCompiled(gomock.Any()).AnyTimes()
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Do(func(domain.UniqueID, domain.CycleOptions) {
			started.Add(1)
		}).AnyTimes()
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Do(func(ports.CycleReference) {
			completed <- struct{}{}
		}).AnyTimes()

		cycle := newCycle(ctrl, "1")
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(ports.CycleReference{Cycle: cycle, Release: func() {}}, nil).
			AnyTimes()

		opts := domain.ExecutionOptions{Flags: domain.FlagWaitForInitialTrigger}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))

		// The worker must park without running anything.
		synctest.Wait()
		assert.Zero(t, started.Load())

		w.TriggerCycle()
		<-completed
		assert.Equal(t, int32(1), started.Load())

		w.Terminate()
		w.Join()
	})
}

func TestWorker_MarketDataTickRequestsCycle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)
		compiled := emptyCompiled(1)

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(compiled, nil).
			AnyTimes()

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		var started atomic.Int32
		completed := make(chan struct{}, 1)
		h.listener.EXPECT().ViewCompiled(gomock.Any()).AnyTimes()
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Do(func(domain.UniqueID, domain.CycleOptions) {
			started.Add(1)
		}).AnyTimes()
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Do(func(ports.CycleReference) {
			select {
			case completed <- struct{}{}:
			default:
			}
		}).AnyTimes()

		cycle := newCycle(ctrl, "1")
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(ports.CycleReference{Cycle: cycle, Release: func() {}}, nil).
			AnyTimes()

		opts := domain.ExecutionOptions{Flags: domain.FlagTriggerCycleOnMarketDataChanged}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))

		// No ticks, no cycles.
		synctest.Wait()
		assert.Zero(t, started.Load())

		// A tick arriving on the feed goroutine requests a cycle.
		w.ValuesChanged([]domain.ValueSpecification{{ValueName: "Market_Value"}})
		<-completed
		assert.Equal(t, int32(1), started.Load())

		w.Terminate()
		w.Join()
	})
}

func TestWorker_ResolutionChangeRecompilesIncrementally(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)

		refA := domain.TargetReference{
			Kind: domain.KindSecurity,
			ID:   domain.NewExternalID("Sec", "X"),
		}
		uidV1 := domain.NewUniqueID("Sec", "X", "1")
		uidV2 := domain.NewUniqueID("Sec", "X", "2")

		marketSpec := domain.ValueSpecification{
			ValueName:  "Market_Value",
			Target:     domain.TargetSpec{Kind: domain.KindPrimitive, UID: domain.NewUniqueID("Tick", "X", "")},
			Properties: domain.EmptyProperties,
		}
		pvSpec := domain.ValueSpecification{
			ValueName:  "Present_Value",
			Target:     domain.TargetSpec{Kind: domain.KindSecurity, UID: uidV1},
			Properties: domain.EmptyProperties,
		}
		pvReq := domain.ValueRequirement{ValueName: "Present_Value", Target: refA}

		graph := domain.NewDependencyGraph()
		marketNode := &domain.DependencyNode{
			Target:     marketSpec.Target,
			Function:   "MarketDataSourcing",
			MarketData: true,
			Outputs:    []domain.ValueSpecification{marketSpec},
		}
		pvNode := &domain.DependencyNode{
			Target:   pvSpec.Target,
			Function: "PresentValue",
			Inputs:   []domain.ValueSpecification{marketSpec},
			Outputs:  []domain.ValueSpecification{pvSpec},
		}
		require.NoError(t, graph.AddNode(marketNode))
		require.NoError(t, graph.AddNode(pvNode))
		graph.AddTerminalOutput(pvSpec, pvReq)

		compiled1 := &domain.CompiledView{
			Definition:          definition(),
			Graphs:              map[string]*domain.DependencyGraph{"Default": graph},
			CompilationID:       1,
			ResolvedIdentifiers: map[domain.TargetReference]domain.UniqueID{refA: uidV1},
		}
		compiled2 := emptyCompiled(2)

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(compiled1, nil).
			Times(1)

		// The changed resolution filters out the present value node but keeps
		// the market data leaf; its terminal requirement must be re-demanded.
		h.compiler.EXPECT().
			CompileIncremental(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *domain.ViewDefinition, _ time.Time, _ domain.VersionCorrection, prev ports.IncrementalInput) (*domain.CompiledView, error) {
				require.Contains(t, prev.PreviousGraphs, "Default")
				fg := prev.PreviousGraphs["Default"]
				assert.Equal(t, 1, fg.Graph.Size())
				assert.Equal(t, pvSpec, fg.MissingRequirements[pvReq])
				assert.Empty(t, prev.PreviousResolutions)
				return compiled2, nil
			}).
			Times(1)

		h.resolver.EXPECT().
			ResolveAll(gomock.Any(), []domain.TargetReference{refA}, gomock.Any()).
			Return(map[domain.TargetReference]domain.UniqueID{refA: uidV2}, nil).
			Times(1)

		// Market data requirements of the first compilation get subscribed.
		h.provider.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(2)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(2)
		h.listener.EXPECT().WorkerCompleted().Times(1)
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Do(func(ports.CycleReference) {
			// Simulate a reference data change arriving after the first
			// cycle completes.
			if h.changeListener != nil {
				h.changeListener(ports.ChangeNotification{ObjectID: uidV1.ObjectID()})
			}
		}).Times(2)

		cycle1 := newCycle(ctrl, "1")
		cycle2 := newCycle(ctrl, "2")
		var created atomic.Int32
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ *domain.CompiledView, _ ports.MarketDataSnapshot, _ domain.CycleOptions, deltaFrom ports.ComputationCycle) (ports.CycleReference, error) {
				if created.Add(1) == 1 {
					return ports.CycleReference{Cycle: cycle1, Release: func() {}}, nil
				}
				// A new compilation breaks the delta chain.
				assert.Nil(t, deltaFrom)
				return ports.CycleReference{Cycle: cycle2, Release: func() {}}, nil
			}).
			Times(2)

		opts := domain.ExecutionOptions{
			Flags:    domain.FlagRunAsFastAsPossible,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{{}, {}}),
		}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()
	})
}

func TestWorker_AwaitsMarketDataSubscriptions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)

		marketSpec := domain.ValueSpecification{
			ValueName:  "Market_Value",
			Target:     domain.TargetSpec{Kind: domain.KindPrimitive, UID: domain.NewUniqueID("Tick", "EURUSD", "")},
			Properties: domain.EmptyProperties,
		}
		graph := domain.NewDependencyGraph()
		require.NoError(t, graph.AddNode(&domain.DependencyNode{
			Target:     marketSpec.Target,
			Function:   "MarketDataSourcing",
			MarketData: true,
			Outputs:    []domain.ValueSpecification{marketSpec},
		}))
		compiled := &domain.CompiledView{
			Definition:          definition(),
			Graphs:              map[string]*domain.DependencyGraph{"Default": graph},
			CompilationID:       1,
			ResolvedIdentifiers: map[domain.TargetReference]domain.UniqueID{},
		}

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(compiled, nil).
			Times(1)

		var w *worker.Worker
		h.provider.EXPECT().Subscribe(gomock.Any(), []domain.ValueSpecification{marketSpec}).
			DoAndReturn(func(_ context.Context, specs []domain.ValueSpecification) error {
				// Acknowledge asynchronously like a real feed.
				go w.SubscriptionsSucceeded(specs)
				return nil
			}).
			Times(1)

		snapshot := newSnapshot(ctrl)
		snapshot.EXPECT().InitWithValues(gomock.Any(), []domain.ValueSpecification{marketSpec}).Return(nil).Times(1)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(1)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(1)
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Times(1)
		h.listener.EXPECT().WorkerCompleted().Times(1)

		cycle := newCycle(ctrl, "1")
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(ports.CycleReference{Cycle: cycle, Release: func() {}}, nil).
			Times(1)

		opts := domain.ExecutionOptions{
			Flags:    domain.FlagRunAsFastAsPossible | domain.FlagAwaitMarketData,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{{}}),
		}
		var err error
		w, err = worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()
	})
}

func TestWorker_ExplicitVersionCorrectionChangeRechecksResolutions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)

		refA := domain.TargetReference{
			Kind: domain.KindSecurity,
			ID:   domain.NewExternalID("Sec", "X"),
		}
		uid := domain.NewUniqueID("Sec", "X", "1")
		vc1 := domain.VersionCorrection{
			VersionAsOf: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CorrectedTo: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		vc2 := domain.VersionCorrection{
			VersionAsOf: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			CorrectedTo: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		}

		compiled := emptyCompiled(1)
		compiled.ResolvedIdentifiers[refA] = uid
		compiled.VersionCorrection = vc1

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), vc1).
			Return(compiled, nil).
			Times(1)

		// The changed explicit instant must sweep every recorded resolution,
		// not just change-notified ones.
		h.resolver.EXPECT().
			ResolveAll(gomock.Any(), []domain.TargetReference{refA}, vc2).
			Return(map[domain.TargetReference]domain.UniqueID{refA: uid}, nil).
			Times(1)

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		cycle1 := newCycle(ctrl, "1")
		cycle2 := newCycle(ctrl, "2")
		// The resolutions held, so the compilation survives and the second
		// cycle still runs as a delta.
		cycle2.EXPECT().PreExecute(cycle1).Times(1)

		var created atomic.Int32
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ *domain.CompiledView, _ ports.MarketDataSnapshot, _ domain.CycleOptions, _ ports.ComputationCycle) (ports.CycleReference, error) {
				if created.Add(1) == 1 {
					return ports.CycleReference{Cycle: cycle1, Release: func() {}}, nil
				}
				return ports.CycleReference{Cycle: cycle2, Release: func() {}}, nil
			}).
			Times(2)

		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(1)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(2)
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Times(2)
		h.listener.EXPECT().WorkerCompleted().Times(1)

		opts := domain.ExecutionOptions{
			Flags: domain.FlagRunAsFastAsPossible,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{
				{VersionCorrection: vc1},
				{VersionCorrection: vc2},
			}),
		}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()
	})
}

func TestWorker_ValuationDefaultsToSnapshotTime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)
		indicated := time.Date(2024, 3, 1, 11, 59, 30, 0, time.UTC)

		snapshot := mocks.NewMockMarketDataSnapshot(ctrl)
		snapshot.EXPECT().TimeIndication().Return(indicated).AnyTimes()
		snapshot.EXPECT().Init(gomock.Any()).Return(nil).AnyTimes()
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), indicated, gomock.Any()).
			Return(emptyCompiled(1), nil).
			Times(1)

		cycle := newCycle(ctrl, "1")
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ *domain.CompiledView, _ ports.MarketDataSnapshot, opts domain.CycleOptions, _ ports.ComputationCycle) (ports.CycleReference, error) {
				assert.Equal(t, indicated, opts.ValuationTime)
				return ports.CycleReference{Cycle: cycle, Release: func() {}}, nil
			}).
			Times(1)

		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(1)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(1)
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Times(1)
		h.listener.EXPECT().WorkerCompleted().Times(1)

		opts := domain.ExecutionOptions{
			Flags:    domain.FlagRunAsFastAsPossible,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{{}}),
		}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()
	})
}

func TestWorker_SequenceSwitchesMarketDataProvider(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)

		marketSpec := domain.ValueSpecification{
			ValueName:  "Market_Value",
			Target:     domain.TargetSpec{Kind: domain.KindPrimitive, UID: domain.NewUniqueID("Tick", "EURUSD", "")},
			Properties: domain.EmptyProperties,
		}
		graph := domain.NewDependencyGraph()
		require.NoError(t, graph.AddNode(&domain.DependencyNode{
			Target:     marketSpec.Target,
			Function:   "MarketDataSourcing",
			MarketData: true,
			Outputs:    []domain.ValueSpecification{marketSpec},
		}))
		compiled := &domain.CompiledView{
			Definition:          definition(),
			Graphs:              map[string]*domain.DependencyGraph{"Default": graph},
			CompilationID:       1,
			ResolvedIdentifiers: map[domain.TargetReference]domain.UniqueID{},
		}

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(compiled, nil).
			Times(1)

		simSpec := domain.MarketDataSpec{Provider: "sim", Live: true}
		sim := mocks.NewMockMarketDataProvider(ctrl)
		sim.EXPECT().AvailabilitySignature().Return("sim-feed").AnyTimes()
		sim.EXPECT().Available(gomock.Any()).Return(true).AnyTimes()
		sim.EXPECT().Failed(gomock.Any()).Return(false).AnyTimes()
		sim.EXPECT().Unsubscribe(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		simSnapshot := newSnapshot(ctrl)
		sim.EXPECT().Snapshot().Return(simSnapshot).AnyTimes()
		h.resolve = func(spec domain.MarketDataSpec) (ports.MarketDataProvider, error) {
			if spec == simSpec {
				return sim, nil
			}
			return h.provider, nil
		}

		// The switch moves the listener and resubscribes the compilation's
		// requirements against the new provider.
		sim.EXPECT().AddListener(gomock.Any()).Return(func() {}).Times(1)
		sim.EXPECT().Subscribe(gomock.Any(), []domain.ValueSpecification{marketSpec}).Return(nil).Times(1)
		h.provider.EXPECT().Subscribe(gomock.Any(), []domain.ValueSpecification{marketSpec}).Return(nil).Times(1)

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		cycle1 := newCycle(ctrl, "1")
		cycle2 := newCycle(ctrl, "2")
		cycle2.EXPECT().PreExecute(cycle1).AnyTimes()
		var created atomic.Int32
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ *domain.CompiledView, _ ports.MarketDataSnapshot, _ domain.CycleOptions, _ ports.ComputationCycle) (ports.CycleReference, error) {
				if created.Add(1) == 1 {
					return ports.CycleReference{Cycle: cycle1, Release: func() {}}, nil
				}
				return ports.CycleReference{Cycle: cycle2, Release: func() {}}, nil
			}).
			Times(2)

		// One compilation, adopted twice: once per provider.
		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(2)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(2)
		h.listener.EXPECT().CycleCompleted(gomock.Any()).Times(2)
		h.listener.EXPECT().WorkerCompleted().Times(1)

		opts := domain.ExecutionOptions{
			Flags: domain.FlagRunAsFastAsPossible,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{
				{},
				{MarketData: simSpec},
			}),
		}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()
	})
}

func TestWorker_ExecutionFailureReportsOptions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctrl := gomock.NewController(t)
		valuation := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		execErr := zerr.New("pricing blew up")

		h.compiler.EXPECT().
			CompileFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(emptyCompiled(1), nil).
			Times(1)

		snapshot := newSnapshot(ctrl)
		h.provider.EXPECT().Snapshot().Return(snapshot).AnyTimes()

		cycle := mocks.NewMockComputationCycle(ctrl)
		cycle.EXPECT().UniqueID().Return(domain.NewUniqueID("Cycle", "1", "")).AnyTimes()
		cycle.EXPECT().Execute(gomock.Any()).Return(execErr).Times(1)
		h.engine.EXPECT().
			CreateCycle(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(ports.CycleReference{Cycle: cycle, Release: func() {}}, nil).
			Times(1)

		h.listener.EXPECT().ViewCompiled(gomock.Any()).Times(1)
		h.listener.EXPECT().CycleStarted(gomock.Any(), gomock.Any()).Times(1)
		h.listener.EXPECT().
			CycleExecutionFailed(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(_ domain.UniqueID, opts domain.CycleOptions, err error) {
				assert.Equal(t, valuation, opts.ValuationTime)
				assert.ErrorIs(t, err, execErr)
			}).
			Times(1)
		h.listener.EXPECT().WorkerCompleted().Times(1)

		opts := domain.ExecutionOptions{
			Flags:    domain.FlagRunAsFastAsPossible,
			Sequence: domain.NewFiniteSequence([]domain.CycleOptions{{ValuationTime: valuation}}),
		}
		w, err := worker.NewWorker(h.config(definition(), opts))
		require.NoError(t, err)
		require.NoError(t, w.Start(context.Background()))
		w.Join()
	})
}

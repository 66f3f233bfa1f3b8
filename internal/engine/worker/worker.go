// Package worker drives the computation cycles of one attached view: it
// decides when to run, compiles or reuses the dependency graphs, snapshots
// market data and executes cycles, delivering results to a listener.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/engine/trigger"
	"go.trai.ch/zerr"
)

// Config carries a worker's collaborators and execution options.
type Config struct {
	Definition *domain.ViewDefinition
	Options    domain.ExecutionOptions

	Compiler   ports.GraphCompiler
	Resolver   ports.TargetResolver
	Cache      ports.ExecutionCache
	Engine     ports.ComputationEngine
	MarketData ports.MarketDataProviderResolver
	Listener   ports.CycleListener
	Logger     ports.Logger
	Tracer     ports.Tracer
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Worker runs the cycle loop for one view on a single goroutine. All mutable
// state is owned by that goroutine; external calls communicate through the
// mutex-guarded request flags and the wake channel.
type Worker struct {
	cfg      Config
	clock    clockwork.Clock
	log      ports.Logger
	provider ports.MarketDataProvider
	sequence domain.CycleSequence

	masterTrigger *trigger.Combined
	expiry        *trigger.FixedTime

	// wake is written by RequestCycle, TriggerCycle, market data ticks and
	// definition swaps to interrupt waitForNextCycle.
	wake chan struct{}

	mu sync.Mutex
	// forceTriggerCycle overrides trigger eligibility for the next wait.
	forceTriggerCycle bool
	// cycleRequested records an explicit request wanting the next eligible
	// cycle.
	cycleRequested bool
	// wakeOnCycleRequest is set while the loop sleeps with no cycle wanted,
	// so the next request must wake it.
	wakeOnCycleRequest bool
	// marketDataChanged collects specifications ticked since the last cycle.
	marketDataChanged domain.SpecSet
	// dirtyTargets collects object ids whose resolution may have changed.
	dirtyTargets map[domain.ObjectID]struct{}
	// pendingDefinition swaps in on the next loop iteration.
	pendingDefinition *domain.ViewDefinition
	terminated        bool

	// worker-goroutine state
	currentSpec           domain.MarketDataSpec
	definition            *domain.ViewDefinition
	latest                *domain.CompiledView
	watchSet              map[domain.ObjectID]struct{}
	previousCycle         *ports.CycleReference
	previousCompilationID int64
	subscribed            domain.SpecSet
	pending               *pendingSubscriptions
	removeMDL             func()
	removeCL              func()

	stats cycleStats

	cancel context.CancelFunc
	done   chan struct{}
}

type cycleStats struct {
	cycles        int
	totalDuration time.Duration
}

// NewWorker validates the configuration and creates a stopped worker.
func NewWorker(cfg Config) (*Worker, error) {
	if cfg.Definition == nil {
		return nil, zerr.Wrap(domain.ErrViewNotCompiled, "worker requires a view definition")
	}
	if cfg.Compiler == nil || cfg.Resolver == nil || cfg.Cache == nil ||
		cfg.Engine == nil || cfg.MarketData == nil || cfg.Listener == nil ||
		cfg.Logger == nil || cfg.Tracer == nil {
		return nil, zerr.New("worker configuration incomplete")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	sequence := cfg.Options.Sequence
	if sequence == nil {
		sequence = domain.NewInfiniteSequence(cfg.Options.MarketData, cfg.Options.VersionCorrection)
	}
	w := &Worker{
		cfg:               cfg,
		clock:             clock,
		log:               cfg.Logger,
		sequence:          sequence,
		definition:        cfg.Definition,
		wake:              make(chan struct{}, 1),
		marketDataChanged: make(domain.SpecSet),
		dirtyTargets:      make(map[domain.ObjectID]struct{}),
		subscribed:        make(domain.SpecSet),
		pending:           newPendingSubscriptions(),
		done:              make(chan struct{}),
	}
	w.buildTriggers()
	return w, nil
}

func (w *Worker) buildTriggers() {
	w.masterTrigger = trigger.NewCombined()
	w.expiry = trigger.NewFixedTime()
	flags := w.cfg.Options.Flags
	if flags.Has(domain.FlagRunAsFastAsPossible) {
		w.masterTrigger.AddTrigger(trigger.RunAsFastAsPossible{})
	}
	// The recomputation period always gates eligibility; elapsed time only
	// initiates cycles by itself when the flag arms the maximum period.
	maxPeriod := w.definition.MaxRecomputePeriod
	if !flags.Has(domain.FlagTriggerCycleOnTimeElapsed) {
		maxPeriod = 0
	}
	w.masterTrigger.AddTrigger(trigger.NewRecomputationPeriod(
		w.definition.MinRecomputePeriod, maxPeriod, trigger.CycleDelta))
	if w.definition.MaxDeltaCycles > 0 {
		w.masterTrigger.AddTrigger(trigger.NewSuccessiveDeltaLimit(w.definition.MaxDeltaCycles))
	}
	if !flags.Has(domain.FlagIgnoreCompilationValidity) {
		w.masterTrigger.AddTrigger(w.expiry)
	}
}

// Start launches the worker loop. It returns immediately; Join waits for the
// loop to finish.
func (w *Worker) Start(ctx context.Context) error {
	provider, err := w.cfg.MarketData.Resolve(w.cfg.Options.MarketData)
	if err != nil {
		return zerr.Wrap(err, "resolving market data provider")
	}
	w.provider = provider
	w.currentSpec = w.cfg.Options.MarketData
	w.removeMDL = provider.AddListener(w)
	w.removeCL = w.cfg.Resolver.AddChangeListener(w.onTargetChanged)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.run(runCtx)
	return nil
}

// Join blocks until the worker loop has exited.
func (w *Worker) Join() {
	<-w.done
}

// Terminate stops the worker and releases its subscriptions and listeners.
// It does not wait; use Join.
func (w *Worker) Terminate() {
	w.mu.Lock()
	w.terminated = true
	w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
	w.signalWake()
}

// RequestCycle asks for a cycle as soon as the triggers permit one.
func (w *Worker) RequestCycle() {
	w.mu.Lock()
	w.cycleRequested = true
	shouldWake := w.wakeOnCycleRequest
	w.mu.Unlock()
	if shouldWake {
		w.signalWake()
	}
}

// TriggerCycle forces a cycle regardless of trigger state.
func (w *Worker) TriggerCycle() {
	w.mu.Lock()
	w.forceTriggerCycle = true
	w.mu.Unlock()
	w.signalWake()
}

// UpdateDefinition swaps the view definition before the next cycle. The next
// cycle after a swap is always a full recompile.
func (w *Worker) UpdateDefinition(def *domain.ViewDefinition) {
	w.mu.Lock()
	w.pendingDefinition = def
	w.forceTriggerCycle = true
	w.mu.Unlock()
	w.signalWake()
}

// Stats returns the number of executed cycles and their cumulative duration.
func (w *Worker) Stats() (cycles int, total time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats.cycles, w.stats.totalDuration
}

func (w *Worker) signalWake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	defer w.cleanup()

	first := true
	for {
		if ctx.Err() != nil {
			return
		}
		w.swapDefinitionIfPending()

		cycleType, ok := w.waitForNextCycle(ctx, first)
		if !ok {
			return
		}
		first = false

		if w.sequence.Empty() {
			w.log.Info("cycle sequence exhausted", "view", w.definition.Name)
			w.cfg.Listener.WorkerCompleted()
			return
		}
		now := w.clock.Now()
		opts, ok := w.sequence.Next(now)
		if !ok {
			w.cfg.Listener.WorkerCompleted()
			return
		}
		if err := w.ensureProvider(ctx, opts.MarketData); err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Error(zerr.Wrap(err, "switching market data provider"), "view", w.definition.Name)
			w.awaitExternalChange(ctx)
			continue
		}
		snapshot := w.provider.Snapshot()
		if opts.ValuationTime.IsZero() {
			if indicated := snapshot.TimeIndication(); !indicated.IsZero() {
				opts.ValuationTime = indicated
			} else {
				opts.ValuationTime = now
			}
		}

		compiled, err := w.compiledView(ctx, opts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Error(zerr.Wrap(err, "view compilation failed"), "view", w.definition.Name)
			w.cfg.Listener.CompilationFailed(opts.ValuationTime, err)
			// Compilation failures are not transient: hold off until
			// something changes rather than spinning.
			w.awaitExternalChange(ctx)
			continue
		}

		if w.cfg.Options.Flags.Has(domain.FlagCompileOnly) {
			w.masterTrigger.CycleTriggered(w.clock.Now(), cycleType)
			continue
		}

		if err := w.executeCycle(ctx, compiled, snapshot, opts, cycleType); err != nil {
			if ctx.Err() != nil {
				return
			}
			w.log.Error(zerr.Wrap(err, "cycle execution failed"), "view", w.definition.Name)
		}
		w.masterTrigger.CycleTriggered(w.clock.Now(), cycleType)
	}
}

// waitForNextCycle blocks until a cycle should run, returning its type. ok is
// false when the worker is shutting down.
func (w *Worker) waitForNextCycle(ctx context.Context, first bool) (trigger.CycleType, bool) {
	waitInitial := first && w.cfg.Options.Flags.Has(domain.FlagWaitForInitialTrigger)
	for {
		now := w.clock.Now()
		result := w.masterTrigger.Query(now)

		w.mu.Lock()
		if w.terminated {
			w.mu.Unlock()
			return 0, false
		}
		force := w.forceTriggerCycle
		requested := w.cycleRequested
		eligible := result.Eligibility >= trigger.EligibilityEligible

		var fire bool
		switch {
		case force:
			fire = true
		case waitInitial:
			// Held until something asks; an explicit request satisfies the
			// initial wait once the triggers permit it.
			fire = requested && eligible
		case result.Eligibility == trigger.EligibilityForce:
			fire = true
		default:
			fire = eligible && requested
		}
		if fire {
			w.forceTriggerCycle = false
			w.cycleRequested = false
			w.wakeOnCycleRequest = false
			w.mu.Unlock()
			return result.Type, true
		}
		// Sleeping: any incoming request must wake us to re-evaluate.
		w.wakeOnCycleRequest = true
		w.mu.Unlock()

		var timer <-chan time.Time
		if !result.NextStateChange.IsZero() {
			d := result.NextStateChange.Sub(now)
			if d < 0 {
				d = 0
			}
			timer = w.clock.After(d)
		}
		select {
		case <-ctx.Done():
			return 0, false
		case <-w.wake:
		case <-timer:
		}
	}
}

// awaitExternalChange parks the loop until woken or the trigger state changes.
func (w *Worker) awaitExternalChange(ctx context.Context) {
	w.mu.Lock()
	w.wakeOnCycleRequest = true
	w.mu.Unlock()
	result := w.masterTrigger.Query(w.clock.Now())
	var timer <-chan time.Time
	if !result.NextStateChange.IsZero() {
		timer = w.clock.After(result.NextStateChange.Sub(w.clock.Now()))
	}
	select {
	case <-ctx.Done():
	case <-w.wake:
	case <-timer:
	}
}

// ensureProvider resolves the provider serving the cycle's market data
// specification. When a cycle sequence switches specifications mid-run, the
// listener and subscriptions move to the new provider and the current
// compilation is dropped so the next adoption resubscribes against it.
func (w *Worker) ensureProvider(ctx context.Context, spec domain.MarketDataSpec) error {
	if w.provider != nil && spec == w.currentSpec {
		return nil
	}
	provider, err := w.cfg.MarketData.Resolve(spec)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "resolving market data provider"), "provider", spec.Provider)
	}
	if w.provider != nil && provider != w.provider {
		if w.removeMDL != nil {
			w.removeMDL()
		}
		if len(w.subscribed) > 0 {
			if err := w.provider.Unsubscribe(ctx, specSlice(w.subscribed)); err != nil {
				w.log.Warn("releasing market data subscriptions failed", "error", err)
			}
		}
		w.subscribed = make(domain.SpecSet)
		w.pending = newPendingSubscriptions()
		w.latest = nil
		w.removeMDL = provider.AddListener(w)
	}
	w.provider = provider
	w.currentSpec = spec
	return nil
}

func (w *Worker) swapDefinitionIfPending() {
	w.mu.Lock()
	pending := w.pendingDefinition
	w.pendingDefinition = nil
	w.mu.Unlock()
	if pending == nil {
		return
	}
	w.log.Info("swapping view definition", "view", pending.Name)
	w.definition = pending
	w.latest = nil
	w.watchSet = nil
	w.releasePreviousCycle()
	w.buildTriggers()
}

func (w *Worker) executeCycle(ctx context.Context, compiled *domain.CompiledView, snapshot ports.MarketDataSnapshot, opts domain.CycleOptions, cycleType trigger.CycleType) error {
	ctx, span := w.cfg.Tracer.Start(ctx, "cycle")
	defer span.End()
	span.SetAttribute("view", w.definition.Name)

	if w.cfg.Options.Flags.Has(domain.FlagAwaitMarketData) {
		if err := w.pending.await(ctx); err != nil {
			return zerr.Wrap(err, "awaiting market data subscriptions")
		}
		required := specSlice(compiled.MarketDataRequirements())
		if err := snapshot.InitWithValues(ctx, required); err != nil {
			return zerr.Wrap(err, "initializing snapshot with values")
		}
	} else if err := snapshot.Init(ctx); err != nil {
		return zerr.Wrap(err, "initializing snapshot")
	}

	w.mu.Lock()
	changed := len(w.marketDataChanged) > 0
	w.marketDataChanged = make(domain.SpecSet)
	w.mu.Unlock()
	if w.cfg.Options.Flags.Has(domain.FlagSkipCycleOnNoMarketData) && !changed && w.previousCycle != nil {
		w.log.Debug("skipping cycle, no market data changed", "view", w.definition.Name)
		return nil
	}

	if w.cfg.Options.Flags.Has(domain.FlagFetchMarketDataOnly) {
		return nil
	}

	var deltaFrom ports.ComputationCycle
	// Delta execution only holds against the compilation the previous cycle
	// ran with.
	if cycleType == trigger.CycleDelta && w.previousCycle != nil &&
		w.previousCompilationID == compiled.CompilationID {
		deltaFrom = w.previousCycle.Cycle
	}
	span.SetAttribute("delta", deltaFrom != nil)

	ref, err := w.cfg.Engine.CreateCycle(compiled, snapshot, opts, deltaFrom)
	if err != nil {
		span.SetError(err)
		return zerr.Wrap(err, "creating cycle")
	}
	w.cfg.Listener.CycleStarted(ref.Cycle.UniqueID(), opts)

	if deltaFrom != nil {
		ref.Cycle.PreExecute(deltaFrom)
	}
	start := w.clock.Now()
	if err := ref.Cycle.Execute(ctx); err != nil {
		span.SetError(err)
		w.cfg.Listener.CycleExecutionFailed(ref.Cycle.UniqueID(), opts, err)
		ref.Release()
		return zerr.Wrap(err, "executing cycle")
	}
	ref.Cycle.PostExecute()
	elapsed := w.clock.Now().Sub(start)
	span.SetAttribute("duration_ms", elapsed.Milliseconds())

	w.mu.Lock()
	w.stats.cycles++
	w.stats.totalDuration += elapsed
	w.mu.Unlock()

	w.cfg.Listener.CycleCompleted(ref)

	w.releasePreviousCycle()
	retained := ref
	w.previousCycle = &retained
	w.previousCompilationID = compiled.CompilationID
	return nil
}

func (w *Worker) releasePreviousCycle() {
	if w.previousCycle != nil {
		w.previousCycle.Release()
		w.previousCycle = nil
	}
}

func (w *Worker) cleanup() {
	w.releasePreviousCycle()
	if w.removeMDL != nil {
		w.removeMDL()
	}
	if w.removeCL != nil {
		w.removeCL()
	}
	if w.provider != nil && len(w.subscribed) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.provider.Unsubscribe(ctx, specSlice(w.subscribed)); err != nil {
			w.log.Warn("releasing market data subscriptions failed", "error", err)
		}
	}
}

func specSlice(set domain.SpecSet) []domain.ValueSpecification {
	out := make([]domain.ValueSpecification, 0, len(set))
	for spec := range set {
		out = append(out, spec)
	}
	return out
}

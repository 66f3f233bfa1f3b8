package worker

import (
	"context"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/zerr"
)

// compiledView returns a compilation valid for the cycle options, reusing or
// incrementally repairing the cached one where possible.
//
// Lock protocol: the narrow lock is held for the whole operation and guards
// the cache entry; the broad lock serializes compilation between workers
// sharing the key. The broad lock is dropped while invalid resolutions are
// evaluated, since that evaluation hits the resolver and may be slow, and is
// re-taken before compiling and storing. Re-resolution sweeps at one fixed
// version-correction are additionally serialized by the version-correction
// lock so concurrent workers do not duplicate the sweep.
func (w *Worker) compiledView(ctx context.Context, opts domain.CycleOptions) (*domain.CompiledView, error) {
	ctx, span := w.cfg.Tracer.Start(ctx, "compile")
	defer span.End()
	span.SetAttribute("view", w.definition.Name)

	vc := opts.VersionCorrection
	if vc.IsLatest() {
		vc = vc.WithLatestFixed(w.clock.Now())
	}
	key := domain.NewCacheKey(w.definition.UID, w.provider.AvailabilitySignature())
	locks := w.cfg.Cache.Locks(key)

	locks.Narrow.Lock()
	defer locks.Narrow.Unlock()
	locks.Broad.Lock()
	broadHeld := true
	defer func() {
		if broadHeld {
			locks.Broad.Unlock()
		}
	}()

	cached, ok := w.cfg.Cache.Get(key)
	valid := ok && (cached.IsValidFor(opts.ValuationTime) ||
		w.cfg.Options.Flags.Has(domain.FlagIgnoreCompilationValidity))

	dirty := w.takeDirtyTargets()
	var incremental *ports.IncrementalInput

	// Under a floating version-correction the change watch keeps the cached
	// resolutions current, so the re-fixed instant alone does not invalidate
	// them. An explicit instant that differs from the one the cache was
	// compiled at does: every recorded resolution must be rechecked.
	vcChanged := ok && !opts.VersionCorrection.IsLatest() && cached.VersionCorrection != vc

	if valid && len(dirty) == 0 && !vcChanged {
		return w.adoptCompilation(ctx, cached.WithResolverVersionCorrection(vc), false)
	}

	if ok {
		if valid {
			recheck := dirty
			if vcChanged {
				recheck = nil
			}
			// Resolutions may be stale. Evaluate without the broad lock.
			locks.Broad.Unlock()
			broadHeld = false
			invalid, err := w.invalidResolutions(ctx, cached, recheck, vc)
			locks.Broad.Lock()
			broadHeld = true
			if err != nil {
				w.restoreDirtyTargets(dirty)
				return nil, zerr.Wrap(err, "checking resolutions")
			}
			// The cache entry may have moved while the broad lock was free.
			if fresh, stillOk := w.cfg.Cache.Get(key); stillOk {
				cached = fresh
			}
			if len(invalid) == 0 {
				return w.adoptCompilation(ctx, cached.WithResolverVersionCorrection(vc), false)
			}
			in, err := w.filterPreviousGraphs(ctx, cached, invalid, opts.ValuationTime, vc)
			if err != nil {
				return nil, err
			}
			incremental = in
		} else {
			// Expired compilation: keep the nodes whose functions remain
			// valid at the new valuation time.
			in, err := w.filterPreviousGraphs(ctx, cached, nil, opts.ValuationTime, vc)
			if err != nil {
				return nil, err
			}
			incremental = in
		}
	}

	var (
		compiled *domain.CompiledView
		err      error
	)
	if incremental != nil && len(incremental.PreviousGraphs) > 0 {
		compiled, err = w.cfg.Compiler.CompileIncremental(ctx, w.definition, opts.ValuationTime, vc, *incremental)
	} else {
		compiled, err = w.cfg.Compiler.CompileFull(ctx, w.definition, opts.ValuationTime, vc)
	}
	if err != nil {
		return nil, zerr.Wrap(err, "compiling view")
	}
	w.cfg.Cache.Put(key, compiled)
	return w.adoptCompilation(ctx, compiled, true)
}

// adoptCompilation installs a compilation as the worker's current one, keeping
// subscriptions, the resolution watch set and the expiry trigger in step.
func (w *Worker) adoptCompilation(ctx context.Context, compiled *domain.CompiledView, fresh bool) (*domain.CompiledView, error) {
	changedCompilation := w.latest == nil || w.latest.CompilationID != compiled.CompilationID
	w.latest = compiled

	if fresh || changedCompilation {
		w.watchSet = make(map[domain.ObjectID]struct{}, len(compiled.ResolvedIdentifiers))
		for _, uid := range compiled.ResolvedIdentifiers {
			w.watchSet[uid.ObjectID()] = struct{}{}
		}
		if err := w.updateSubscriptions(ctx, compiled.MarketDataRequirements()); err != nil {
			return nil, zerr.Wrap(err, "updating market data subscriptions")
		}
		if !w.cfg.Options.Flags.Has(domain.FlagIgnoreCompilationValidity) {
			w.expiry.Set(compiled.ValidTo)
		}
		w.cfg.Listener.ViewCompiled(compiled)
	}
	return compiled, nil
}

// takeDirtyTargets drains the change notifications relevant to the current
// compilation. Notifications for objects outside the watch set are dropped;
// with no compilation yet, everything is relevant.
func (w *Worker) takeDirtyTargets() map[domain.ObjectID]struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.dirtyTargets) == 0 {
		return nil
	}
	dirty := w.dirtyTargets
	w.dirtyTargets = make(map[domain.ObjectID]struct{})
	if w.watchSet == nil {
		return dirty
	}
	narrowed := make(map[domain.ObjectID]struct{}, len(dirty))
	for oid := range dirty {
		if _, ok := w.watchSet[oid]; ok {
			narrowed[oid] = struct{}{}
		}
	}
	if len(narrowed) == 0 {
		return nil
	}
	return narrowed
}

func (w *Worker) restoreDirtyTargets(dirty map[domain.ObjectID]struct{}) {
	if len(dirty) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for oid := range dirty {
		w.dirtyTargets[oid] = struct{}{}
	}
}

// invalidResolutions re-resolves the compilation's recorded resolutions,
// narrowed to the dirty objects, and returns the unique ids that no longer
// resolve the same way.
func (w *Worker) invalidResolutions(ctx context.Context, cached *domain.CompiledView, dirty map[domain.ObjectID]struct{}, vc domain.VersionCorrection) (map[domain.UniqueID]struct{}, error) {
	vcLock := w.cfg.Cache.VersionCorrectionLock(vc)
	vcLock.Lock()
	defer vcLock.Unlock()

	refs := make([]domain.TargetReference, 0, len(dirty))
	previous := make(map[domain.TargetReference]domain.UniqueID, len(dirty))
	for ref, uid := range cached.ResolvedIdentifiers {
		if dirty != nil {
			if _, ok := dirty[uid.ObjectID()]; !ok {
				continue
			}
		}
		refs = append(refs, ref)
		previous[ref] = uid
	}
	if len(refs) == 0 {
		return nil, nil
	}

	resolved, err := w.cfg.Resolver.ResolveAll(ctx, refs, vc)
	if err != nil {
		return nil, err
	}
	invalid := make(map[domain.UniqueID]struct{})
	for ref, oldUID := range previous {
		newUID, ok := resolved[ref]
		if !ok || newUID != oldUID {
			invalid[oldUID] = struct{}{}
		}
	}
	return invalid, nil
}

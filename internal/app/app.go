// Package app implements the application layer for vista: it seeds reference
// data, loads view definitions and runs one cycle worker per view alongside
// the upstream feed connection and the definition watcher.
package app

import (
	"context"
	"slices"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/vista/internal/adapters/refdata"
	"go.trai.ch/vista/internal/adapters/telemetry"
	"go.trai.ch/vista/internal/adapters/watcher"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/engine/worker"
)

// App represents the main application logic.
type App struct {
	settings   *domain.Settings
	loader     ports.ConfigLoader
	logger     ports.Logger
	tracer     ports.Tracer
	refdata    *refdata.Store
	compiler   ports.GraphCompiler
	engine     ports.ComputationEngine
	cache      ports.ExecutionCache
	marketData ports.MarketDataProviderResolver
	feed       ports.FeedClient
	watcher    *watcher.Watcher
}

// New creates a new App instance.
func New(
	settings *domain.Settings,
	loader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	store *refdata.Store,
	compiler ports.GraphCompiler,
	engine ports.ComputationEngine,
	cache ports.ExecutionCache,
	marketData ports.MarketDataProviderResolver,
	feedClient ports.FeedClient,
	watch *watcher.Watcher,
) *App {
	return &App{
		settings:   settings,
		loader:     loader,
		logger:     log,
		tracer:     tracer,
		refdata:    store,
		compiler:   compiler,
		engine:     engine,
		cache:      cache,
		marketData: marketData,
		feed:       feedClient,
		watcher:    watch,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Views filters which configured views run; empty runs all of them.
	Views []string
	// Flags tune the workers' cycle scheduling.
	Flags domain.ExecutionFlags
}

// feedRunner is implemented by feed clients holding a long-lived connection.
type feedRunner interface {
	Run(ctx context.Context) error
}

// Run starts the view processor and blocks until ctx is cancelled or every
// worker completes.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	shutdownTelemetry, err := telemetry.Setup()
	if err != nil {
		return zerr.Wrap(err, "initializing telemetry")
	}
	defer func() {
		_ = shutdownTelemetry(context.WithoutCancel(ctx))
	}()

	if err := a.seedPortfolios(); err != nil {
		return err
	}

	definitions, err := a.loadViews(opts.Views)
	if err != nil {
		return err
	}
	if len(definitions) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrNoViewsConfigured, "selecting views"), "selected", len(opts.Views))
	}

	workers := make(map[string]*worker.Worker, len(definitions))
	for path, def := range definitions {
		w, err := worker.NewWorker(worker.Config{
			Definition: def,
			Options: domain.ExecutionOptions{
				Flags:      opts.Flags,
				MarketData: domain.MarketDataSpec{Live: true},
			},
			Compiler:   a.compiler,
			Resolver:   a.refdata,
			Cache:      a.cache,
			Engine:     a.engine,
			MarketData: a.marketData,
			Listener:   newLogListener(def.Name, a.logger),
			Logger:     a.logger,
			Tracer:     a.tracer,
		})
		if err != nil {
			return zerr.With(zerr.Wrap(err, "creating worker"), "view", def.Name)
		}
		workers[path] = w
	}

	g, ctx := errgroup.WithContext(ctx)

	if runner, ok := a.feed.(feedRunner); ok {
		g.Go(func() error {
			return runner.Run(ctx)
		})
		defer func() {
			_ = a.feed.Close()
		}()
	}

	if err := a.watchDefinitions(ctx, workers); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	for _, w := range workers {
		if err := w.Start(ctx); err != nil {
			return err
		}
		g.Go(func() error {
			w.Join()
			return nil
		})
	}

	a.logger.Info("view processor started", "views", len(workers))
	return g.Wait()
}

// seedPortfolios loads the configured portfolio files into the reference data
// store.
func (a *App) seedPortfolios() error {
	for _, path := range a.settings.Portfolios {
		data, err := a.loader.LoadPortfolio(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "loading portfolio"), "path", path)
		}
		portfolio := a.refdata.PutPortfolio(data.ID, data.Name, data.Root)
		a.logger.Info("portfolio loaded", "portfolio", portfolio.UID.String(), "path", path)
	}
	return nil
}

// loadViews loads the configured view definitions, keyed by file path.
func (a *App) loadViews(selected []string) (map[string]*domain.ViewDefinition, error) {
	definitions := make(map[string]*domain.ViewDefinition, len(a.settings.Views))
	for _, path := range a.settings.Views {
		def, err := a.loader.LoadView(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "loading view"), "path", path)
		}
		if len(selected) > 0 && !slices.Contains(selected, def.Name) {
			continue
		}
		definitions[path] = def
	}
	return definitions, nil
}

// watchDefinitions pushes edited view definition files into their running
// workers. The worker adopts the new definition at the top of its next cycle
// and recompiles from scratch.
func (a *App) watchDefinitions(ctx context.Context, workers map[string]*worker.Worker) error {
	paths := make([]string, 0, len(workers))
	for path := range workers {
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil
	}
	return a.watcher.Watch(ctx, paths, func(changed []string) {
		for _, path := range changed {
			w, ok := workers[path]
			if !ok {
				continue
			}
			def, err := a.loader.LoadView(path)
			if err != nil {
				a.logger.Error(zerr.With(zerr.Wrap(err, "reloading view"), "path", path))
				continue
			}
			a.logger.Info("view definition changed", "view", def.Name, "path", path)
			w.UpdateDefinition(def)
		}
	})
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vista/internal/adapters/config"
	"go.trai.ch/vista/internal/adapters/execache"
	"go.trai.ch/vista/internal/adapters/feed"
	"go.trai.ch/vista/internal/adapters/livedata"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/adapters/refdata"
	"go.trai.ch/vista/internal/adapters/telemetry"
	"go.trai.ch/vista/internal/adapters/watcher"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
	"go.trai.ch/vista/internal/engine/calc"
	"go.trai.ch/vista/internal/engine/compiler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			refdata.NodeID,
			compiler.NodeID,
			calc.NodeID,
			execache.NodeID,
			livedata.ResolverNodeID,
			feed.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*refdata.Store](ctx)
	if err != nil {
		return nil, err
	}

	graphCompiler, err := graft.Dep[ports.GraphCompiler](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[ports.ComputationEngine](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ExecutionCache](ctx)
	if err != nil {
		return nil, err
	}

	marketData, err := graft.Dep[ports.MarketDataProviderResolver](ctx)
	if err != nil {
		return nil, err
	}

	feedClient, err := graft.Dep[ports.FeedClient](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[*watcher.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, loader, log, tracer, store,
		graphCompiler, engine, cache, marketData, feedClient, watch), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log), nil
}

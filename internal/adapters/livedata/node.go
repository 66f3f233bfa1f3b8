package livedata

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/vista/internal/adapters/config"
	"go.trai.ch/vista/internal/adapters/feed"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

const (
	// ProviderNodeID is the unique identifier for the live provider Graft node.
	ProviderNodeID graft.ID = "adapter.livedata_provider"
	// ResolverNodeID is the unique identifier for the provider resolver Graft node.
	ResolverNodeID graft.ID = "adapter.livedata_resolver"
)

func init() {
	graft.Register(graft.Node[ports.MarketDataProvider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{feed.NodeID, logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.MarketDataProvider, error) {
			client, err := graft.Dep[ports.FeedClient](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return NewProvider(client, settings.MarketData.Schemes, clockwork.NewRealClock(), log), nil
		},
	})

	graft.Register(graft.Node[ports.MarketDataProviderResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ProviderNodeID},
		Run: func(ctx context.Context) (ports.MarketDataProviderResolver, error) {
			provider, err := graft.Dep[ports.MarketDataProvider](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(provider), nil
		},
	})
}

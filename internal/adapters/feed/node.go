package feed

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vista/internal/adapters/config"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// NodeID is the unique identifier for the feed client Graft node.
const NodeID graft.ID = "adapter.feed"

func init() {
	graft.Register(graft.Node[ports.FeedClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.FeedClient, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewClient(settings.MarketData.Feed, log), nil
		},
	})
}

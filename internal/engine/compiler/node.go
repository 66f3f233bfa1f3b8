package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vista/internal/adapters/livedata"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/adapters/refdata"
	"go.trai.ch/vista/internal/core/ports"
)

// NodeID is the unique identifier for the graph compiler Graft node.
const NodeID graft.ID = "engine.compiler"

func init() {
	graft.Register(graft.Node[ports.GraphCompiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{refdata.NodeID, livedata.ProviderNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GraphCompiler, error) {
			store, err := graft.Dep[*refdata.Store](ctx)
			if err != nil {
				return nil, err
			}

			provider, err := graft.Dep[ports.MarketDataProvider](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, provider, log), nil
		},
	})
}

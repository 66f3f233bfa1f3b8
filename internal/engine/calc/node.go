package calc

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/core/ports"
)

// NodeID is the unique identifier for the computation engine Graft node.
const NodeID graft.ID = "engine.calc"

func init() {
	graft.Register(graft.Node[ports.ComputationEngine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ComputationEngine, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(clockwork.NewRealClock(), log), nil
		},
	})
}

package refdata

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/core/ports"
)

// NodeID is the unique identifier for the reference data store Graft node.
const NodeID graft.ID = "adapter.refdata"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Store, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewStore(clockwork.NewRealClock(), log), nil
		},
	})
}

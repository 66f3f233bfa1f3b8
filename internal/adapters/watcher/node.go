package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vista/internal/adapters/logger"
	"go.trai.ch/vista/internal/core/ports"
)

// NodeID is the unique identifier for the view file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[*Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})
}

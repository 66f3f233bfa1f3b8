package execache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vista/internal/core/ports"
)

// NodeID is the unique identifier for the execution cache Graft node.
const NodeID graft.ID = "adapter.execution_cache"

func init() {
	graft.Register(graft.Node[ports.ExecutionCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExecutionCache, error) {
			return NewCache(), nil
		},
	})
}

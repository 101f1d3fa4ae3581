package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/labgen/internal/core/ports"
)

// NodeID is the unique identifier for the stamp store Graft node.
const NodeID graft.ID = "adapter.stamp_store"

func init() {
	graft.Register(graft.Node[ports.StampStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StampStore, error) {
			return NewStore(), nil
		},
	})
}

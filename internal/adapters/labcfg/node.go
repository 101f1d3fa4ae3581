package labcfg

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/labgen/internal/core/ports"
)

// NodeID is the unique identifier for the document encoder Graft node.
const NodeID graft.ID = "adapter.encoder"

func init() {
	graft.Register(graft.Node[ports.DocumentEncoder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DocumentEncoder, error) {
			return NewEncoder(), nil
		},
	})
}

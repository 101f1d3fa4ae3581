package matrix

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the generator Graft node.
const NodeID graft.ID = "engine.matrix"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Generator, error) {
			return NewGenerator(), nil
		},
	})
}

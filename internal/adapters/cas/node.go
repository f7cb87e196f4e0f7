package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/symcache/internal/core/ports"
)

// NodeID is the unique identifier for the symbol store Graft node.
const NodeID graft.ID = "adapter.symbol_store"

func init() {
	graft.Register(graft.Node[ports.SymbolStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SymbolStore, error) {
			return NewStore(), nil
		},
	})
}

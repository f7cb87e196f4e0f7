package dumpsyms

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/symcache/internal/adapters/logger"
	"go.trai.ch/symcache/internal/core/ports"
)

// NodeID is the unique identifier for the symbol extractor Graft node.
const NodeID graft.ID = "adapter.dumpsyms"

func init() {
	graft.Register(graft.Node[ports.SymbolExtractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SymbolExtractor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(log), nil
		},
	})
}

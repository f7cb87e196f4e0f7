package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/symcache/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/symcache/internal/adapters/dumpsyms"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/symcache/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/symcache/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/symcache/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/symcache/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.LocatorNodeID,
			dumpsyms.NodeID,
			cas.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			locator, err := graft.Dep[ports.BundleLocator](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.SymbolExtractor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.SymbolStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(locator, extractor, store, tel, log), nil
		},
	})
}

package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/symcache/internal/core/ports"
)

// LocatorNodeID is the graft node that provides the bundle locator.
const LocatorNodeID graft.ID = "adapter.fs.locator"

func init() {
	graft.Register(graft.Node[ports.BundleLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BundleLocator, error) {
			return NewWalker(), nil
		},
	})
}

package telemetry

import (
	"context"
	"io"

	"go.trai.ch/symcache/internal/core/ports"
)

var _ ports.Telemetry = (*NoOp)(nil)

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// NewNoOp creates a new NoOp.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx unchanged and a vertex that discards everything.
func (n *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (n *NoOp) Close() error { return nil }

// Render writes nothing.
func (n *NoOp) Render(io.Writer) error { return nil }

type noopVertex struct{}

func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Cached()           {}
func (noopVertex) Complete(error)    {}

package ports

import (
	"context"
	"io"
)

// Telemetry records one vertex per unit of work.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
	// Render writes a digest of the recorded vertices to w.
	Render(w io.Writer) error
}

// Vertex is a single recorded unit of work.
type Vertex interface {
	// Stderr returns a writer for diagnostic output attributed to the vertex.
	Stderr() io.Writer
	// Cached marks the vertex as a cache hit.
	Cached()
	// Complete marks the vertex as finished, successfully when err is nil.
	Complete(err error)
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex stored in ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}

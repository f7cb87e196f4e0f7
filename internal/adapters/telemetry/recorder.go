// Package telemetry records per-bundle progress as progrock vertices.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/symcache/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

const (
	iconFailure  = "✘"
	iconCanceled = "∅"
)

// Recorder implements ports.Telemetry using progrock.
type Recorder struct {
	w    progrock.Writer
	tape *progrock.Tape
	rec  *progrock.Recorder
	seq  atomic.Uint64
}

// New creates a new Recorder writing to an in-memory tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
// Render only has something to show when w is a *progrock.Tape.
func NewRecorder(w progrock.Writer) *Recorder {
	tape, _ := w.(*progrock.Tape)
	return &Recorder{
		w:    w,
		tape: tape,
		rec:  progrock.NewRecorder(w),
	}
}

// Record starts a vertex named after the unit of work. The returned context
// carries the vertex so adapters deeper in the call can attribute output to it.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	// Bundles in different directories may share a base name.
	id := digest.FromString(name + "#" + strconv.FormatUint(r.seq.Add(1), 10))
	v := &Vertex{vertex: r.rec.Vertex(id, name)}
	return ports.ContextWithVertex(ctx, v), v
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}

// Render writes one count line for the tape, then every errored or canceled
// vertex with the last line of stderr attributed to it.
func (r *Recorder) Render(w io.Writer) error {
	if r.tape == nil {
		return nil
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "recorded %d bundles: %d cached, %d errored\n",
		r.tape.TotalCount(), r.tape.CachedCount(), r.tape.ErroredCount())

	for _, v := range r.tape.Vertices() {
		switch {
		case v.Error != nil:
			_, _ = fmt.Fprintf(&b, "%s %s: %s\n", iconFailure, v.GetName(), v.GetError())
		case v.GetCanceled():
			_, _ = fmt.Fprintf(&b, "%s %s: canceled\n", iconCanceled, v.GetName())
		default:
			continue
		}
		if last := strings.TrimSpace(r.tape.Activity(v).LastLine); last != "" {
			_, _ = fmt.Fprintf(&b, "    %s\n", last)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/relpack/relpack/internal/core/ports"
)

// Recorder implements ports.Telemetry using the progrock library.
// Each pipeline stage and each target build becomes a vertex on the tape.
type Recorder struct {
	w    progrock.Writer
	tape *progrock.Tape
	rec  *progrock.Recorder
}

// New creates a new Recorder with a default tape that keeps full per-vertex
// output, so the run summary can show build diagnostics.
func New() *Recorder {
	tape := progrock.NewTape()
	tape.ShowAllOutput(true)
	return NewRecorder(tape)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	tape, _ := w.(*progrock.Tape)
	return &Recorder{
		w:    w,
		tape: tape,
		rec:  progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Display renders the recorded tape to w: one line per vertex with its
// duration and outcome, plus captured output. A recorder backed by a writer
// that is not a tape has nothing to render.
func (r *Recorder) Display(w io.Writer) error {
	if r.tape == nil {
		return nil
	}
	return r.tape.Render(w, progrock.DefaultUI())
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

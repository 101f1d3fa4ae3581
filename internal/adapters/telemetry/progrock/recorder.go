// Package progrock records generation phases on a progrock stream and
// summarizes them through the logger.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/labgen/internal/core/ports"
)

// Recorder implements ports.Telemetry.
type Recorder struct {
	rec *progrock.Recorder
}

// New creates a Recorder whose phases are summarized through log on Close.
func New(log ports.Logger) *Recorder {
	return NewRecorder(NewSummary(log))
}

// NewRecorder creates a Recorder streaming status updates to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{rec: progrock.NewRecorder(w)}
}

// Record starts a phase. Phases are identified by the digest of their name,
// so recording the same name twice continues the same phase.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &Vertex{rec: r.rec.Vertex(digest.FromString(name), name)}
	return ports.ContextWithVertex(ctx, v), v
}

// Close completes the session and closes the writer.
func (r *Recorder) Close() error {
	r.rec.Complete()
	return r.rec.Close()
}

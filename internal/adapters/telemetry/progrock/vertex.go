package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/labgen/internal/core/domain"
)

// Vertex implements ports.Vertex on a progrock vertex.
type Vertex struct {
	rec *progrock.VertexRecorder
}

// Stdout returns a writer streaming to the vertex log.
func (v *Vertex) Stdout() io.Writer {
	return v.rec.Stdout()
}

// Log writes msg tagged with its level. Warnings and errors go to the stderr stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.rec.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.rec.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level, msg)
}

// Complete finishes the vertex, recording err when it is not nil.
func (v *Vertex) Complete(err error) {
	v.rec.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.rec.Cached()
}

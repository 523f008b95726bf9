package progrock

import (
	"fmt"
	"io"
	"strings"

	"github.com/vito/progrock"
	"go.trai.ch/flowlock/internal/core/domain"
)

// Vertex is one package's resolution as recorded on the tape.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout receives subprocess standard output for the package.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr receives subprocess error output for the package.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log appends a leveled line to the package's output. Warnings and errors go to stderr.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", strings.ToLower(level.String()), msg)
}

// Complete finishes the vertex, marking it failed when err is set.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as reusing existing output.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recorder implements ports.Telemetry on a progrock tape.
// Closing it reports every recorded package to the logger at debug level.
type Recorder struct {
	tape   *progrock.Tape
	rec    *progrock.Recorder
	logger ports.Logger
}

// New creates a Recorder. Every status update is also sent to sinks, such as a journal.
func New(log ports.Logger, sinks ...progrock.Writer) *Recorder {
	tape := progrock.NewTape()

	var w progrock.Writer = tape
	if len(sinks) > 0 {
		w = append(progrock.MultiWriter{tape}, sinks...)
	}

	return &Recorder{
		tape:   tape,
		rec:    progrock.NewRecorder(w),
		logger: log,
	}
}

// OpenJournal creates the file at path, and its directory, as a progrock journal.
func OpenJournal(path string) (progrock.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create journal directory"), "path", path)
	}

	journal, err := progrock.CreateJournal(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create journal"), "path", path)
	}
	return journal, nil
}

// Record starts recording a new vertex and attaches it to the returned context.
// Vertices are keyed by name, so re-recording a name updates the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertex := &Vertex{vertex: r.rec.Vertex(digest.FromString(name), name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close completes the session, closes the writers and reports the outcome.
func (r *Recorder) Close() error {
	r.rec.Complete()
	err := r.rec.Close()
	r.report()
	return err
}

func (r *Recorder) report() {
	total := r.tape.TotalCount()
	if total == 0 {
		return
	}

	for _, v := range r.tape.Vertices() {
		if v.Internal {
			continue
		}
		line := fmt.Sprintf("%s %s (%s)", vertexState(v), v.Name, v.Duration().Round(time.Millisecond))
		if v.Error != nil {
			line += ": " + *v.Error
		}
		r.logger.Debug(line)
	}

	r.logger.Debug(fmt.Sprintf("%d packages recorded, %d cached, %d failed in %s",
		total, r.tape.CachedCount(), r.tape.ErroredCount(), r.tape.Duration().Round(time.Millisecond)))
}

func vertexState(v *progrock.Vertex) string {
	switch {
	case v.Canceled:
		return "canceled"
	case v.Error != nil:
		return "failed"
	case v.Cached:
		return "cached"
	case v.Completed == nil:
		return "running"
	default:
		return "done"
	}
}

// Package handler implements corelog.Handler: the pairing of exactly one
// Formatter with one or more sinks that a Root logger calls for every
// passed-filter record.
package handler

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/quay/corelog"
	"github.com/quay/corelog/sink"
)

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Blocking runs its Formatter once per record and fans the formatted bytes
// out to every sink whose Filter accepts the record, synchronously on the
// caller's goroutine. Grounded on the teacher's handler.Handle (buffer from
// a pool, run the formatter, write, report write errors), generalized from
// "one formatter + one io.Writer" to "one Formatter + []sink.Sink".
type Blocking struct {
	fmt   corelog.Formatter
	sinks []sink.Sink
}

// New constructs a Blocking handler. At least one sink is required.
func New(fmt corelog.Formatter, sinks ...sink.Sink) (*Blocking, error) {
	if len(sinks) == 0 {
		return nil, &corelog.InvalidArgumentError{Param: "sinks", Reason: "at least one sink is required"}
	}
	return &Blocking{fmt: fmt, sinks: append([]sink.Sink(nil), sinks...)}, nil
}

// Execute implements corelog.Handler. A formatter error, or a sink error,
// is reported via corelog.Internal (or written to os.Stderr when that hook
// is unset) and a sink error does not stop the remaining sinks from being
// tried.
func (h *Blocking) Execute(rec *corelog.Record) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := h.fmt.Execute(buf, rec); err != nil {
		reportInternal(rec.Severity, "handler: formatter failed", err)
		return
	}

	formatted := buf.Bytes()
	for _, s := range h.sinks {
		if !s.Filter(rec) {
			continue
		}
		if err := s.Emit(rec, formatted); err != nil {
			reportInternal(rec.Severity, "handler: sink emit failed", err)
		}
	}
}

// reportInternal forwards to corelog.Internal, if set, and otherwise writes
// the failure to os.Stderr.
func reportInternal(sev corelog.Severity, msg string, err error) {
	if corelog.Internal != nil {
		corelog.Internal(sev, msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "corelog: %s: %v\n", msg, err)
}

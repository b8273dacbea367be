// Package sink implements the emit-side backends a corelog handler writes
// formatted records to: a colorized console writer, a rotating file, UDP and
// TCP network writers, and an asynchronous wrapper that moves delivery onto
// a private consumer goroutine.
package sink

import "github.com/quay/corelog"

// Sink is the destination a handler hands already-formatted bytes to.
// Filter lets a sink veto a record before Emit is called: the handler
// formats each record once and then skips the sinks whose Filter rejects it
// (the console sink has no use for this and always accepts; the async
// wrapper delegates to the inner sink's Filter, which therefore runs on the
// producer's goroutine, before paying for a queue slot).
type Sink interface {
	Filter(rec *corelog.Record) bool
	Emit(rec *corelog.Record, formatted []byte) error
}

// AcceptAll is the default Filter for sinks with no selection logic of
// their own.
func AcceptAll(*corelog.Record) bool { return true }

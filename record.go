package corelog

import (
	"os"
	"sync"
	"time"
)

// Severity is the numeric log level. Lower is less severe; callers are free
// to define their own scale, but the package-level constants below follow the
// common syslog-ish convention used throughout the rest of this module's
// documentation and tests.
type Severity int32

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityDebug:    "DEBUG",
	SeverityInfo:     "INFO",
	SeverityWarning:  "WARNING",
	SeverityError:    "ERROR",
	SeverityCritical: "CRITICAL",
}

// String implements fmt.Stringer, returning the empty string for a severity
// outside the built-in table.
func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return ""
}

// Record is the immutable (post-activation) carrier passed to every handler
// for a single log call. A Record does not own its Pattern's or Pack's
// backing storage: the caller guarantees both outlive the call.
type Record struct {
	Severity Severity

	// Pattern is the unformatted message view, as passed to Log/LogAttrs, or
	// the pattern string for the lazy-message variant.
	Pattern View

	// Formatted is filled exactly once, by Activate.
	Formatted string

	Pack Pack

	// Timestamp is filled exactly once, by Activate.
	Timestamp time.Time

	PID        int
	ThreadID   uint64
	ThreadName string

	active bool
}

var pid = os.Getpid()

// Activate is idempotent: the first call fills Timestamp and Formatted and
// flips the active flag; later calls are no-ops. It must be called by the
// logger exactly once, before the first handler observes the record.
func (r *Record) Activate(formatted string) {
	if r.active {
		return
	}
	r.Timestamp = now()
	r.Formatted = formatted
	r.PID = pid
	r.active = true
}

// Active reports whether Activate has run.
func (r *Record) Active() bool { return r.active }

// now is a var so tests can freeze the clock.
var now = time.Now

// Clone returns a deep-enough copy of the record suitable for handing to a
// consumer that outlives the originating Log call (the async sink wrapper).
// The Pack's lists are NOT copied (they are themselves treated as immutable
// for the duration of a log call per the package's invariants) but the slice
// header referencing them is, so later mutation of the caller's Pack slice
// can't retroactively change what an in-flight async item sees.
func (r *Record) Clone() *Record {
	out := *r
	if r.Pack != nil {
		out.Pack = make(Pack, len(r.Pack))
		copy(out.Pack, r.Pack)
	}
	return &out
}

// recordPool reduces allocation churn for the common case of a Record that
// never outlives its originating Log call.
var recordPool = sync.Pool{
	New: func() any { return new(Record) },
}

func getRecord() *Record {
	r := recordPool.Get().(*Record)
	*r = Record{}
	return r
}

func putRecord(r *Record) {
	recordPool.Put(r)
}

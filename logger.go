package corelog

import (
	"sync"
	"sync/atomic"
)

// Handler is the pairing of a formatter and one or more sinks, as produced by
// the corelog/handler package. It is defined here (rather than imported) so
// that Root never needs to depend on corelog/handler, avoiding an import
// cycle between the engine and its handler implementations.
type Handler interface {
	Execute(r *Record)
}

// Filter decides whether a record should be built at all. It runs before the
// Record is built, so it receives the raw pattern and pack rather than a
// Record.
type Filter func(sev Severity, pattern View, pack Pack) bool

// AcceptAll is a Filter that never rejects a record.
func AcceptAll(Severity, View, Pack) bool { return true }

// MinSeverity returns a Filter accepting records at or above min.
func MinSeverity(min Severity) Filter {
	return func(sev Severity, _ View, _ Pack) bool { return sev >= min }
}

// Logger is the common entry point for all log call shapes in this module.
type Logger interface {
	// Log emits a record with no extra attributes.
	Log(sev Severity, msg View)
	// LogAttrs emits a record carrying pack as its (outermost, caller-level)
	// attribute list.
	LogAttrs(sev Severity, msg View, pack Pack)
	// LogLazy emits a record whose message is computed by supplier, but only
	// if the record passes filtering — supplier is never called otherwise.
	LogLazy(sev Severity, pattern string, supplier func() string, pack Pack)
	// Scope returns the Manager whose frames this logger's calls will fold
	// into the outgoing pack.
	Scope() *Manager
}

// Root is the top-level Logger. It owns the filter predicate (swapped
// wait-free for readers via an atomic pointer) and the handler list (guarded
// by a lock, since handler-list mutation is not a hot path).
type Root struct {
	filter atomic.Pointer[Filter]

	mu       sync.RWMutex
	handlers []Handler

	mgr Manager
}

// NewRoot constructs a Root logger with the given handlers and an initial
// filter (AcceptAll if nil).
func NewRoot(filter Filter, handlers ...Handler) *Root {
	if filter == nil {
		filter = AcceptAll
	}
	r := &Root{handlers: append([]Handler(nil), handlers...)}
	r.filter.Store(&filter)
	return r
}

// SetFilter atomically replaces the active filter. Readers always observe
// either the old or the new filter in full.
func (r *Root) SetFilter(f Filter) {
	if f == nil {
		f = AcceptAll
	}
	r.filter.Store(&f)
}

// SetHandlers replaces the handler list under the write lock.
func (r *Root) SetHandlers(handlers ...Handler) {
	r.mu.Lock()
	r.handlers = append([]Handler(nil), handlers...)
	r.mu.Unlock()
}

// Scope implements Logger.
func (r *Root) Scope() *Manager { return &r.mgr }

// Log implements Logger.
func (r *Root) Log(sev Severity, msg View) { r.dispatch(sev, msg, nil, nil) }

// LogAttrs implements Logger.
func (r *Root) LogAttrs(sev Severity, msg View, pack Pack) { r.dispatch(sev, msg, pack, nil) }

// LogLazy implements Logger.
func (r *Root) LogLazy(sev Severity, pattern string, supplier func() string, pack Pack) {
	r.dispatch(sev, StringView(pattern), pack, supplier)
}

func (r *Root) dispatch(sev Severity, msg View, pack Pack, lazy func() string) {
	fp := r.filter.Load()
	full := r.mgr.collect(pack)
	if fp != nil && !(*fp)(sev, msg, full) {
		return
	}

	rec := getRecord()
	defer putRecord(rec)
	rec.Severity = sev
	rec.Pattern = msg
	rec.Pack = full

	if lazy != nil {
		rec.Activate(lazy())
	} else {
		rec.Activate(msg.String())
	}

	r.mu.RLock()
	handlers := r.handlers
	r.mu.RUnlock()

	for _, h := range handlers {
		runHandler(h, rec)
	}
}

// runHandler contains a panic escaping a handler (e.g. a formatter bug) so
// that one broken handler never stops the rest from running, matching the
// propagation policy in SPEC_FULL.md §7.
func runHandler(h Handler, rec *Record) {
	defer func() {
		if v := recover(); v != nil {
			reportInternal(SeverityError, "handler panicked", panicError{v})
		}
	}()
	h.Execute(rec)
}

type panicError struct{ v any }

func (p panicError) Error() string { return "recovered panic in handler" }

// Wrapper is a Logger that delegates to an inner Logger, adding its own
// attribute list onto every pack it forwards, behind whatever pack it
// received from the call site (or from a Wrapper nested inside it). Wrapping
// a Wrapper chains transparently: each level appends itself behind what it
// was handed, so the attributes nearest the original call site end up first
// in the resulting pack and keep the highest lookup precedence, the same
// call-site-nearest-wins rule scope.go's Manager.collect applies to frames.
type Wrapper struct {
	inner Logger
	attrs List
}

// NewWrapper constructs a Wrapper delegating to inner and adding attrs to
// every record logged through it.
func NewWrapper(inner Logger, attrs List) *Wrapper {
	return &Wrapper{inner: inner, attrs: attrs}
}

// Scope implements Logger by delegating to the wrapped logger.
func (w *Wrapper) Scope() *Manager { return w.inner.Scope() }

// extend appends w's own attribute list onto pack, behind whatever the
// caller or an inner Wrapper already contributed, so that whatever is
// nearer the call site keeps first-wins lookup precedence over w.attrs.
func (w *Wrapper) extend(pack Pack) Pack {
	out := make(Pack, 0, len(pack)+1)
	out = append(out, pack...)
	out = append(out, &w.attrs)
	return out
}

// Log implements Logger.
func (w *Wrapper) Log(sev Severity, msg View) {
	w.inner.LogAttrs(sev, msg, w.extend(nil))
}

// LogAttrs implements Logger.
func (w *Wrapper) LogAttrs(sev Severity, msg View, pack Pack) {
	w.inner.LogAttrs(sev, msg, w.extend(pack))
}

// LogLazy implements Logger.
func (w *Wrapper) LogLazy(sev Severity, pattern string, supplier func() string, pack Pack) {
	w.inner.LogLazy(sev, pattern, supplier, w.extend(pack))
}

package sink

import (
	"sync"

	"github.com/quay/corelog"
)

// Async wraps another Sink with a fixed-capacity ring buffer and a single
// dedicated consumer goroutine, so Emit on the caller's thread never blocks
// on the wrapped sink's I/O. The ring holds 1<<k items; k must fall in
// [2,20] (4 to ~1M records), per spec.md §4.8.
type Async struct {
	inner   Sink
	q       *queue
	policy  OverflowPolicy
	metrics *Metrics

	notify chan struct{} // buffered 1: wakes the idle consumer after a push
	stop   chan struct{}
	wg     sync.WaitGroup
}

type item struct {
	rec       *corelog.Record
	formatted []byte
}

const (
	minQueueShift = 2
	maxQueueShift = 20
)

// NewAsync starts the consumer goroutine and returns the wrapper. If policy
// is nil, OverflowDrop{} is used (the default per spec.md §4.8: overflow
// drops rather than blocks the producer). metrics may be nil.
func NewAsync(inner Sink, k int, policy OverflowPolicy, metrics *Metrics) (*Async, error) {
	if k < minQueueShift || k > maxQueueShift {
		return nil, &corelog.InvalidArgumentError{Param: "k", Reason: "must be in [2,20]"}
	}
	if policy == nil {
		policy = OverflowDrop{}
	}
	a := &Async{
		inner:   inner,
		q:       newQueue(1 << uint(k)),
		policy:  policy,
		metrics: metrics,
		notify:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	a.wg.Add(1)
	go a.consume()
	return a, nil
}

func (a *Async) Filter(rec *corelog.Record) bool { return a.inner.Filter(rec) }

// Emit copies rec and formatted onto the ring for the consumer goroutine to
// deliver. On a full ring it consults the configured OverflowPolicy; a
// policy that gives up causes the record to be dropped and reported via
// corelog.Internal, never returned as an error to the caller (the caller's
// thread must not block on, or learn the fate of, an async delivery).
func (a *Async) Emit(rec *corelog.Record, formatted []byte) error {
	it := item{rec: rec.Clone(), formatted: append([]byte(nil), formatted...)}
	for {
		if a.q.push(it) {
			a.metrics.observeEnqueue()
			a.signal()
			return nil
		}
		if !a.policy.Overflow() {
			a.metrics.observeDrop()
			reportInternal(it.rec.Severity, "async sink: queue full, record dropped")
			return nil
		}
	}
}

func (a *Async) signal() {
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

func (a *Async) consume() {
	defer a.wg.Done()
	for {
		a.drainOnce()
		select {
		case <-a.stop:
			a.drainOnce()
			return
		case <-a.notify:
		}
	}
}

// drainOnce delivers every item currently in the ring, then returns.
func (a *Async) drainOnce() {
	for {
		it, ok := a.q.pop()
		if !ok {
			return
		}
		a.deliver(it)
	}
}

func (a *Async) deliver(it item) {
	a.policy.Wakeup()
	a.metrics.observeDequeue()
	if err := a.inner.Emit(it.rec, it.formatted); err != nil {
		reportInternal(it.rec.Severity, "async sink: delivery to wrapped sink failed: "+err.Error())
		return
	}
	a.metrics.observeDelivered()
}

// Close signals the consumer goroutine to drain the remaining queue and
// stop, then waits for it to finish.
func (a *Async) Close() error {
	close(a.stop)
	a.wg.Wait()
	if c, ok := a.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// reportInternal forwards to corelog.Internal, if set. corelog.Internal is
// this module's only hook for diagnostics with nowhere else to go.
func reportInternal(sev corelog.Severity, msg string) {
	if corelog.Internal != nil {
		corelog.Internal(sev, msg, nil)
	}
}

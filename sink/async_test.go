package sink

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/quay/corelog"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("testing.(*T).Run"),
		goleak.IgnoreTopFunction("runtime.gopark"),
	)
	os.Exit(m.Run())
}

type recordingSink struct {
	mu   sync.Mutex
	recs [][]byte
	fail bool
}

func (s *recordingSink) Filter(*corelog.Record) bool { return true }

func (s *recordingSink) Emit(_ *corelog.Record, formatted []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	cp := append([]byte(nil), formatted...)
	s.recs = append(s.recs, cp)
	return nil
}

func (s *recordingSink) snapshot() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.recs))
	copy(out, s.recs)
	return out
}

func TestAsyncDeliversInOrder(t *testing.T) {
	inner := &recordingSink{}
	a, err := NewAsync(inner, 4, nil, nil)
	if err != nil {
		t.Fatalf("NewAsync: %v", err)
	}

	for i := 0; i < 8; i++ {
		if err := a.Emit(&corelog.Record{}, []byte{byte('a' + i)}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := inner.snapshot()
	if len(got) != 8 {
		t.Fatalf("got %d delivered records, want 8", len(got))
	}
	for i, b := range got {
		if string(b) != string([]byte{byte('a' + i)}) {
			t.Fatalf("record %d = %q, want %q", i, b, []byte{byte('a' + i)})
		}
	}
}

func TestAsyncRejectsBadShift(t *testing.T) {
	inner := &recordingSink{}
	if _, err := NewAsync(inner, 1, nil, nil); err == nil {
		t.Fatal("expected an error for k below the minimum")
	}
	if _, err := NewAsync(inner, 21, nil, nil); err == nil {
		t.Fatal("expected an error for k above the maximum")
	}
}

func TestAsyncOverflowDropDoesNotBlockProducer(t *testing.T) {
	inner := &recordingSink{}
	a, err := NewAsync(inner, 2, OverflowDrop{}, nil)
	if err != nil {
		t.Fatalf("NewAsync: %v", err)
	}
	defer a.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10_000; i++ {
			_ = a.Emit(&corelog.Record{}, []byte("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Emit blocked under OverflowDrop with a full queue")
	}
}

func TestQueuePushPopFIFO(t *testing.T) {
	q := newQueue(4)
	for i := 0; i < 4; i++ {
		if !q.push(item{formatted: []byte{byte(i)}}) {
			t.Fatalf("push %d: queue reported full early", i)
		}
	}
	if q.push(item{formatted: []byte{99}}) {
		t.Fatal("push into a full queue should fail")
	}
	for i := 0; i < 4; i++ {
		it, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: queue reported empty early", i)
		}
		if it.formatted[0] != byte(i) {
			t.Fatalf("pop %d = %v, want FIFO order", i, it.formatted)
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatal("pop from an empty queue should fail")
	}
}

func TestAsyncOverflowWaitRetriesUntilWakeup(t *testing.T) {
	inner := &recordingSink{}
	policy := NewOverflowWait(50 * time.Millisecond)
	a, err := NewAsync(inner, 2, policy, nil)
	if err != nil {
		t.Fatalf("NewAsync: %v", err)
	}

	for i := 0; i < 50; i++ {
		if err := a.Emit(&corelog.Record{}, []byte("x")); err != nil {
			t.Fatalf("Emit %d: %v", i, err)
		}
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := len(inner.snapshot()); got != 50 {
		t.Fatalf("delivered %d records, want 50 (OverflowWait must not drop)", got)
	}
}

func TestAsyncReportsInnerEmitFailure(t *testing.T) {
	var mu sync.Mutex
	var gotErr error
	corelog.Internal = func(_ corelog.Severity, msg string, err error) {
		mu.Lock()
		defer mu.Unlock()
		gotErr = errors.New(msg)
	}
	defer func() { corelog.Internal = nil }()

	inner := &recordingSink{fail: true}
	a, err := NewAsync(inner, 2, nil, nil)
	if err != nil {
		t.Fatalf("NewAsync: %v", err)
	}

	if err := a.Emit(&corelog.Record{}, []byte("x")); err != nil {
		t.Fatalf("Async.Emit itself must not surface the wrapped sink's error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotErr == nil {
		t.Fatal("expected corelog.Internal to be notified of the delivery failure")
	}
}

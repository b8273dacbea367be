package handler

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/quay/corelog"
)

type echoFormatter struct{ err error }

func (f echoFormatter) Execute(w io.Writer, rec *corelog.Record) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, rec.Formatted)
	return err
}

type fakeSink struct {
	accept bool
	err    error
	got    []byte
	calls  int
}

func (s *fakeSink) Filter(*corelog.Record) bool { return s.accept }

func (s *fakeSink) Emit(_ *corelog.Record, formatted []byte) error {
	s.calls++
	s.got = append([]byte(nil), formatted...)
	return s.err
}

func mkRecord(msg string) *corelog.Record {
	return &corelog.Record{
		Severity:  corelog.SeverityInfo,
		Formatted: msg,
		Timestamp: time.Date(2024, time.March, 2, 15, 4, 5, 0, time.UTC),
	}
}

func TestBlockingRequiresASink(t *testing.T) {
	if _, err := New(echoFormatter{}); err == nil {
		t.Fatal("expected an error constructing a handler with no sinks")
	}
}

func TestBlockingFansOutToAcceptingSinks(t *testing.T) {
	a := &fakeSink{accept: true}
	b := &fakeSink{accept: false}
	h, err := New(echoFormatter{}, a, b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h.Execute(mkRecord("hello"))

	if a.calls != 1 {
		t.Fatalf("accepting sink got %d calls, want 1", a.calls)
	}
	if string(a.got) != "hello" {
		t.Fatalf("accepting sink got %q, want %q", a.got, "hello")
	}
	if b.calls != 0 {
		t.Fatalf("rejecting sink got %d calls, want 0", b.calls)
	}
}

func TestBlockingContinuesAfterSinkError(t *testing.T) {
	var reported []error
	corelog.Internal = func(_ corelog.Severity, _ string, err error) {
		reported = append(reported, err)
	}
	defer func() { corelog.Internal = nil }()

	failing := &fakeSink{accept: true, err: errors.New("disk full")}
	ok := &fakeSink{accept: true}
	h, err := New(echoFormatter{}, failing, ok)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h.Execute(mkRecord("hello"))

	if ok.calls != 1 {
		t.Fatal("a later sink must still run after an earlier one errors")
	}
	if len(reported) != 1 {
		t.Fatalf("expected exactly one reported error, got %d", len(reported))
	}
}

func TestBlockingReportsFormatterError(t *testing.T) {
	var reported int
	corelog.Internal = func(corelog.Severity, string, error) { reported++ }
	defer func() { corelog.Internal = nil }()

	s := &fakeSink{accept: true}
	h, err := New(echoFormatter{err: errors.New("bad pattern")}, s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h.Execute(mkRecord("hello"))

	if s.calls != 0 {
		t.Fatal("no sink should run when the formatter itself fails")
	}
	if reported != 1 {
		t.Fatalf("expected exactly one reported error, got %d", reported)
	}
}

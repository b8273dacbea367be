package corelog

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestTraceAttrsNoSpan(t *testing.T) {
	l := TraceAttrs(context.Background())
	if l != nil {
		t.Fatalf("TraceAttrs with no span = %v, want nil", l)
	}
}

func TestTraceAttrsValidSpan(t *testing.T) {
	tid, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	if err != nil {
		t.Fatal(err)
	}
	sid, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	if err != nil {
		t.Fatal(err)
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l := TraceAttrs(ctx)
	if v, ok := l.Get("trace_id"); !ok || v.String() != tid.String() {
		t.Fatalf("trace_id = %v, %v", v, ok)
	}
	if v, ok := l.Get("span_id"); !ok || v.String() != sid.String() {
		t.Fatalf("span_id = %v, %v", v, ok)
	}
}

package corelog

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceAttrs returns a List carrying trace_id/span_id for the span recorded
// on ctx, or nil if ctx carries no valid span context. It is this module's
// analogue of the teacher's OpenTelemetry baggage-to-attributes bridge
// (v1 zlog.go's addCtx), re-targeted at single-process span attachment: a
// Record's pack is exactly the kind of per-call attribute set baggage used
// to feed, but propagating baggage across process boundaries is an explicit
// spec Non-goal, whereas reading the current span off a Context is not.
func TraceAttrs(ctx context.Context) List {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	l := make(List, 0, 2)
	l = l.Append("trace_id", StringView(sc.TraceID().String()))
	l = l.Append("span_id", StringView(sc.SpanID().String()))
	return l
}

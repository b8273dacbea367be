package corelog

import (
	"fmt"
	"io"
	"time"
)

// Kind identifies which field of a [Value] or [View] is populated.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindFloat64
	KindString
	KindTime
	KindDuration
	KindFunc
	KindAny
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindFunc:
		return "func"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Displayer is the escape hatch a user type implements to control how it is
// rendered by the string and JSON formatters, without the value needing to be
// boxed through the generic "any" path.
type Displayer interface {
	// AppendCoreLog writes a textual representation of the receiver to w.
	AppendCoreLog(w io.Writer)
}

// Value is the owning variant of an attribute value: every string it holds is
// copied, and it is safe to store for arbitrarily long.
type Value struct {
	kind Kind
	num  uint64 // bool, int64, uint64 and Duration bits
	str  string
	any  any
}

// View is the non-owning variant of an attribute value. The string kind
// borrows caller-owned storage, and the function kind borrows a callable
// whose validity is strictly the scope of the enclosing Log call. Views are
// what callers construct at the log call site; they are cheap to build from
// literals and built-in scalars.
type View struct {
	kind Kind
	num  uint64
	str  string
	any  any // float64, Time, func(io.Writer), or arbitrary "any"
}

// NullView is the zero View, rendered as the null value.
var NullView = View{kind: KindNull}

func BoolView(v bool) View {
	var n uint64
	if v {
		n = 1
	}
	return View{kind: KindBool, num: n}
}

func Int64View(v int64) View   { return View{kind: KindInt64, num: uint64(v)} }
func Int(v int) View           { return Int64View(int64(v)) }
func Uint64View(v uint64) View { return View{kind: KindUint64, num: v} }
func Float64View(v float64) View {
	return View{kind: KindFloat64, any: v}
}
func StringView(v string) View     { return View{kind: KindString, str: v} }
func TimeView(v time.Time) View    { return View{kind: KindTime, any: v} }
func DurationView(v time.Duration) View {
	return View{kind: KindDuration, num: uint64(v)}
}

// FuncView constructs a View whose value is produced by invoking fn against a
// writer at format time. fn must not be retained past the Log call that
// created this View.
func FuncView(fn func(w io.Writer)) View { return View{kind: KindFunc, any: fn} }

// Any boxes an arbitrary value. If v implements [Displayer], fmt.Stringer, or
// error, that is preferred to a generic fmt.Sprint at render time.
func Any(v any) View {
	switch v := v.(type) {
	case nil:
		return NullView
	case bool:
		return BoolView(v)
	case int:
		return Int(v)
	case int64:
		return Int64View(v)
	case uint64:
		return Uint64View(v)
	case float64:
		return Float64View(v)
	case string:
		return StringView(v)
	case time.Time:
		return TimeView(v)
	case time.Duration:
		return DurationView(v)
	}
	return View{kind: KindAny, any: v}
}

// Kind reports the view's kind.
func (v View) Kind() Kind { return v.kind }

func (v View) Bool() bool         { return v.num != 0 }
func (v View) Int64() int64       { return int64(v.num) }
func (v View) Uint64() uint64     { return v.num }
func (v View) Float64() float64   { f, _ := v.any.(float64); return f }
func (v View) String() string     { return v.str }
func (v View) Time() time.Time    { t, _ := v.any.(time.Time); return t }
func (v View) Duration() time.Duration { return time.Duration(v.num) }
func (v View) Any() any           { return v.any }

// Own copies the view into a heap-owned [Value] that outlives the call that
// produced the view. Func views are materialized immediately, since their
// backing callable is only valid for the duration of the call.
func (v View) Own() Value {
	switch v.kind {
	case KindFunc:
		fn, _ := v.any.(func(io.Writer))
		var b strWriter
		if fn != nil {
			fn(&b)
		}
		return Value{kind: KindString, str: string(b)}
	default:
		return Value{kind: v.kind, num: v.num, str: v.str, any: v.any}
	}
}

// View returns a non-owning view over the receiver.
func (v Value) View() View {
	return View{kind: v.kind, num: v.num, str: v.str, any: v.any}
}

func (v Value) Kind() Kind { return v.kind }

// WriteTo renders the view's value to w using the default (spec-free)
// rendering: no format spec, just the natural representation. Formatters call
// this for values they don't have a dedicated Append hook for (e.g. the
// leftover placeholder's {value} pseudo-placeholder).
func (v View) WriteTo(w io.Writer) {
	switch v.kind {
	case KindNull:
		io.WriteString(w, "null")
	case KindBool:
		if v.Bool() {
			io.WriteString(w, "true")
		} else {
			io.WriteString(w, "false")
		}
	case KindInt64:
		fmt.Fprintf(w, "%d", v.Int64())
	case KindUint64:
		fmt.Fprintf(w, "%d", v.Uint64())
	case KindFloat64:
		fmt.Fprintf(w, "%g", v.Float64())
	case KindString:
		io.WriteString(w, v.str)
	case KindTime:
		io.WriteString(w, v.Time().Format(time.RFC3339Nano))
	case KindDuration:
		io.WriteString(w, v.Duration().String())
	case KindFunc:
		if fn, ok := v.any.(func(io.Writer)); ok {
			fn(w)
		}
	case KindAny:
		writeAny(w, v.any)
	}
}

func writeAny(w io.Writer, a any) {
	switch a := a.(type) {
	case Displayer:
		a.AppendCoreLog(w)
	case error:
		io.WriteString(w, a.Error())
	case fmt.Stringer:
		io.WriteString(w, a.String())
	default:
		fmt.Fprint(w, a)
	}
}

// strWriter is a minimal io.Writer over a growable string, used to
// materialize func views without pulling in bytes.Buffer for a single write.
type strWriter string

func (s *strWriter) Write(p []byte) (int, error) {
	*s += strWriter(p)
	return len(p), nil
}

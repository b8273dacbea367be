package strfmt

import (
	"fmt"
	"io"

	"github.com/quay/corelog"
)

// applySpec renders v into w honoring a forwarded format spec, the way
// spec.md §4.4.1 describes ("the spec is forwarded to the underlying
// writer's format mini-language"). Go's fmt package already implements
// exactly this kind of width/precision/flag mini-language, so a non-empty
// spec is turned into an fmt verb by appending the right type letter (or
// using the caller-given one directly when it is already a valid verb) and
// run through fmt.Fprintf; an empty spec uses the value's natural
// zero-spec rendering via View.WriteTo.
func applySpec(w io.Writer, v corelog.View, spec string) {
	if spec == "" {
		v.WriteTo(w)
		return
	}
	verb, arg, ok := specArg(v, spec)
	if !ok {
		v.WriteTo(w)
		return
	}
	fmt.Fprintf(w, "%"+verb, arg)
}

// specArg picks the fmt verb letter to append to spec's flags/width/
// precision prefix, and the argument to format with it, based on v's kind.
// If spec already ends in a recognized verb letter, that letter is used
// as-is (this lets callers write "x" for hex, "o" for octal, etc. on
// integer-kinded attributes).
func specArg(v corelog.View, spec string) (verb string, arg any, ok bool) {
	if n := len(spec); n > 0 && isVerbLetter(spec[n-1]) {
		return spec, valueFor(v, spec[n-1]), true
	}
	switch v.Kind() {
	case corelog.KindInt64:
		return spec + "d", v.Int64(), true
	case corelog.KindUint64:
		return spec + "d", v.Uint64(), true
	case corelog.KindFloat64:
		return spec + "g", v.Float64(), true
	case corelog.KindString:
		return spec + "s", v.String(), true
	case corelog.KindBool:
		return spec + "t", v.Bool(), true
	default:
		return "", nil, false
	}
}

func valueFor(v corelog.View, verb byte) any {
	switch verb {
	case 'd', 'x', 'X', 'o', 'b':
		switch v.Kind() {
		case corelog.KindUint64:
			return v.Uint64()
		default:
			return v.Int64()
		}
	case 'f', 'g', 'G', 'e', 'E':
		return v.Float64()
	case 't':
		return v.Bool()
	default:
		var sb stringBuilder
		v.WriteTo(&sb)
		return sb.String()
	}
}

func isVerbLetter(c byte) bool {
	switch c {
	case 'd', 'x', 'X', 'o', 'b', 'f', 'g', 'G', 'e', 'E', 's', 't', 'q', 'v':
		return true
	}
	return false
}

type stringBuilder struct{ buf []byte }

func (s *stringBuilder) Write(p []byte) (int, error) { s.buf = append(s.buf, p...); return len(p), nil }
func (s *stringBuilder) String() string              { return string(s.buf) }

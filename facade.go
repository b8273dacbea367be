package corelog

import "strings"

// span is one piece of a compiled facade pattern: either a literal run of
// text or a positional placeholder awaiting the Nth argument.
type span struct {
	literal string
	isArg   bool
}

// CompiledPattern is the facade's compile-time front-end: a format pattern
// known at a call site is scanned into literal/placeholder spans exactly
// once, rather than being re-parsed on every call. It never observes
// attributes, packs, or scoped frames — it only knows how to interleave
// literal text with positional arguments.
type CompiledPattern struct {
	spans   []span
	nArgs   int
	pattern string
}

// Compile scans pattern for "{}" positional placeholders (the facade's
// grammar is deliberately much smaller than strfmt's: no named
// placeholders, no format specs — just literal/positional spans).
func Compile(pattern string) *CompiledPattern {
	cp := &CompiledPattern{pattern: pattern}
	rest := pattern
	for {
		i := strings.Index(rest, "{}")
		if i == -1 {
			if len(rest) > 0 {
				cp.spans = append(cp.spans, span{literal: rest})
			}
			break
		}
		if i > 0 {
			cp.spans = append(cp.spans, span{literal: rest[:i]})
		}
		cp.spans = append(cp.spans, span{isArg: true})
		cp.nArgs++
		rest = rest[i+2:]
	}
	return cp
}

// Format binds args into the compiled pattern's positional spans,
// stringifying each with Any's writer, and returns the bound message. It is
// the facade's monomorphized argument-binding step, run only after a Log
// call has passed filtering.
func (cp *CompiledPattern) Format(args ...any) string {
	var b strings.Builder
	argi := 0
	for _, s := range cp.spans {
		if !s.isArg {
			b.WriteString(s.literal)
			continue
		}
		if argi < len(args) {
			Any(args[argi]).WriteTo(&b)
		}
		argi++
	}
	return b.String()
}

// Log compiles args into the pattern and emits a record through logger,
// passing through the normal filter (the facade is a pure front-end: it
// still calls Logger.LogLazy so filtering happens before any formatting
// work).
func (cp *CompiledPattern) Log(logger Logger, sev Severity, pack Pack, args ...any) {
	logger.LogLazy(sev, cp.pattern, func() string { return cp.Format(args...) }, pack)
}

package strfmt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/quay/corelog"
	"github.com/quay/corelog/datetime"
)

// tokenKind identifies which of the named placeholders (or a plain literal,
// or a generic attribute) a compiled token renders.
type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokMessage
	tokSeverity
	tokTimestamp
	tokProcess
	tokThread
	tokLeftover
	tokAttr
)

// token is one element of a compiled Pattern's token vector. Exactly one of
// the *spec fields is meaningful, selected by kind.
type token struct {
	kind    tokenKind
	literal string

	spec string // raw format spec text, forwarded to applySpec

	// tokAttr
	attrName    string
	hasDefault  bool
	defaultView corelog.View

	// tokTimestamp
	tsGen  *datetime.Generator
	tsType byte // 'd', 's', 'l' (default 's')

	// tokLeftover
	leftoverPattern []leftoverPiece
	separator       string
}

// leftoverPiece is one element of the leftover placeholder's per-attribute
// sub-pattern: either literal text, the {name} pseudo-placeholder, or the
// {value} pseudo-placeholder, each carrying its own forwarded spec.
type leftoverPiece struct {
	literal string
	isName  bool
	isValue bool
	spec    string
}

// execute renders tok against rec into w. sevMap and unique are the
// formatter-level options threaded through from Pattern.Execute.
func (tok *token) execute(w io.Writer, rec *corelog.Record, sevMap SeverityMapper, unique bool, consumed map[string]bool) error {
	switch tok.kind {
	case tokLiteral:
		io.WriteString(w, tok.literal)
		return nil
	case tokMessage:
		io.WriteString(w, rec.Formatted)
		return nil
	case tokSeverity:
		if tok.spec == "d" {
			io.WriteString(w, strconv.Itoa(int(rec.Severity)))
			return nil
		}
		if sevMap != nil {
			sevMap(rec.Severity, tok.spec, w)
			return nil
		}
		io.WriteString(w, strconv.Itoa(int(rec.Severity)))
		return nil
	case tokTimestamp:
		switch tok.tsType {
		case 'd':
			io.WriteString(w, strconv.FormatInt(rec.Timestamp.UnixMicro(), 10))
		case 'l':
			t := rec.Timestamp.Local()
			tok.tsGen.Execute(w, t, t.Nanosecond()/1000)
		default:
			t := rec.Timestamp.UTC()
			tok.tsGen.Execute(w, t, t.Nanosecond()/1000)
		}
		return nil
	case tokProcess:
		switch tok.spec {
		case "s":
			io.WriteString(w, processName())
		default:
			io.WriteString(w, strconv.Itoa(rec.PID))
		}
		return nil
	case tokThread:
		switch tok.spec {
		case "d":
			io.WriteString(w, strconv.FormatUint(rec.ThreadID, 10))
		case "s":
			io.WriteString(w, rec.ThreadName)
		default:
			io.WriteString(w, strconv.FormatUint(rec.ThreadID, 16))
		}
		return nil
	case tokAttr:
		if consumed != nil {
			consumed[tok.attrName] = true
		}
		v, ok := rec.Pack.Get(tok.attrName)
		if !ok {
			if tok.hasDefault {
				applySpec(w, tok.defaultView, tok.spec)
				return nil
			}
			return fmt.Errorf("corelog: %w: %s", corelog.ErrAttributeNotFound, tok.attrName)
		}
		applySpec(w, v, tok.spec)
		return nil
	case tokLeftover:
		tok.executeLeftover(w, rec, unique, consumed)
		return nil
	}
	return nil
}

func (tok *token) executeLeftover(w io.Writer, rec *corelog.Record, unique bool, consumed map[string]bool) {
	first := true
	emit := func(key string, v corelog.View) bool {
		if consumed != nil && consumed[key] {
			return true
		}
		if !first {
			io.WriteString(w, tok.separator)
		}
		first = false
		for _, p := range tok.leftoverPattern {
			switch {
			case p.isName:
				applySpec(w, corelog.StringView(key), p.spec)
			case p.isValue:
				applySpec(w, v, p.spec)
			default:
				io.WriteString(w, p.literal)
			}
		}
		return true
	}
	if unique {
		rec.Pack.EachUnique(emit)
	} else {
		rec.Pack.Each(emit)
	}
}

// defaultLeftoverPattern implements the spec's default "{name}: {value}".
func defaultLeftoverPattern() []leftoverPiece {
	return []leftoverPiece{
		{isName: true},
		{literal: ": "},
		{isValue: true},
	}
}

const defaultSeparator = ", "

// parseDefaultLiteral is a tiny helper used by the parser to recognize the
// {default:...} sub-spec's literal payload and coerce it to int, then
// float, then string, in that order, matching spec.md §4.4.3.
func parseDefaultLiteral(s string) corelog.View {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return corelog.Int64View(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return corelog.Float64View(f)
	}
	return corelog.StringView(s)
}

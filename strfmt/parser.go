package strfmt

import (
	"io"
	"strings"

	"github.com/quay/corelog"
	"github.com/quay/corelog/datetime"
)

// Pattern is a compiled string-pattern format. It is parsed once at
// construction time into a token vector; Execute runs a single visitor pass
// over that vector per record.
type Pattern struct {
	tokens  []token
	sevMap  SeverityMapper
	unique  bool
	pattern string
}

// Parse compiles pattern into a Pattern, or returns a *corelog.ParseError if
// the grammar described in spec.md §4.4.1 is violated.
func Parse(pattern string, opts ...Option) (*Pattern, error) {
	p := &Pattern{pattern: pattern}
	for _, o := range opts {
		o(p)
	}
	toks, err := parseTokens(pattern)
	if err != nil {
		return nil, err
	}
	p.tokens = toks
	return p, nil
}

// Option configures a Pattern at construction time.
type Option func(*Pattern)

// WithSeverityMapping installs the hook invoked for {severity[:spec]}
// placeholders whose spec is absent or not "d".
func WithSeverityMapping(fn SeverityMapper) Option { return func(p *Pattern) { p.sevMap = fn } }

// WithUnique enables the leftover placeholder's unique mode: later
// duplicates of an already-rendered attribute key are skipped.
func WithUnique() Option { return func(p *Pattern) { p.unique = true } }

// Execute runs the compiled token vector against rec, writing formatted
// bytes to w. consumed (attribute names already rendered by a named
// placeholder) is computed fresh on each call so the pattern itself stays
// safe for concurrent use across goroutines.
func (p *Pattern) Execute(w io.Writer, rec *corelog.Record) error {
	var consumed map[string]bool
	if hasLeftover(p.tokens) {
		consumed = make(map[string]bool)
	}
	for i := range p.tokens {
		if err := p.tokens[i].execute(w, rec, p.sevMap, p.unique, consumed); err != nil {
			return err
		}
	}
	return nil
}

func hasLeftover(toks []token) bool {
	for _, t := range toks {
		if t.kind == tokLeftover {
			return true
		}
	}
	return false
}

// --- parsing ---

// parseTokens scans pattern once from left to right, collecting literal text
// (with "{{" and "}}" unescaped) and handing each placeholder to
// parsePlaceholder; placeholder scanning tracks brace depth to support the
// nested specs used by timestamp and leftover.
func parseTokens(pattern string) ([]token, error) {
	var toks []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{kind: tokLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	n := len(pattern)
	for i < n {
		c := pattern[i]
		switch c {
		case '{':
			if i+1 < n && pattern[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			flush()
			end, err := matchBrace(pattern, i)
			if err != nil {
				return nil, err
			}
			content := pattern[i+1 : end]
			tok, err := parsePlaceholder(content, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = end + 1
		case '}':
			if i+1 < n && pattern[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, &corelog.ParseError{Pos: i, Snippet: snippet(pattern, i), Reason: "unmatched '}'"}
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return toks, nil
}

// matchBrace finds the index of the '}' matching the '{' at pattern[open],
// honoring nested brace pairs so that a placeholder's spec may itself
// contain balanced {...} groups (timestamp and leftover sub-specs).
func matchBrace(pattern string, open int) (int, error) {
	depth := 0
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &corelog.ParseError{Pos: open, Snippet: snippet(pattern, open), Reason: "unterminated placeholder"}
}

func snippet(pattern string, pos int) string {
	end := pos + 16
	if end > len(pattern) {
		end = len(pattern)
	}
	start := pos
	if start < 0 {
		start = 0
	}
	return pattern[start:end]
}

// splitNameSpec splits placeholder content at the first top-level ':' (depth
// 0 relative to content) into (name, spec, hasSpec).
func splitNameSpec(content string) (name, spec string, hasSpec bool) {
	depth := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ':':
			if depth == 0 {
				return content[:i], content[i+1:], true
			}
		}
	}
	return content, "", false
}

func parsePlaceholder(content string, pos int) (token, error) {
	name, spec, _ := splitNameSpec(content)
	switch {
	case name == "message":
		return token{kind: tokMessage}, nil
	case name == "severity":
		return token{kind: tokSeverity, spec: spec}, nil
	case name == "timestamp":
		return parseTimestamp(spec)
	case name == "process":
		return token{kind: tokProcess, spec: spec}, nil
	case name == "thread":
		return token{kind: tokThread, spec: spec}, nil
	case strings.HasPrefix(name, "..."):
		return parseLeftover(spec)
	case isValidAttrName(name):
		return parseAttr(name, spec)
	default:
		return token{}, &corelog.ParseError{Pos: pos, Snippet: snippet(content, 0), Reason: "invalid placeholder name: " + name}
	}
}

func isValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

func parseAttr(name, spec string) (token, error) {
	// Optional-with-default: {name:{default:default}spec}
	if strings.HasPrefix(spec, "{default:") {
		depth := 0
		end := -1
		for i := 0; i < len(spec); i++ {
			switch spec[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end != -1 {
				break
			}
		}
		if end == -1 {
			return token{}, &corelog.ParseError{Reason: "unterminated default spec for " + name}
		}
		defLit := spec[len("{default:") : end]
		rest := spec[end+1:]
		return token{
			kind:        tokAttr,
			attrName:    name,
			hasDefault:  true,
			defaultView: parseDefaultLiteral(defLit),
			spec:        rest,
		}, nil
	}
	return token{kind: tokAttr, attrName: name, spec: spec}, nil
}

func parseTimestamp(spec string) (token, error) {
	pattern := datetime.DefaultPattern
	typ := byte('s')
	if strings.HasPrefix(spec, "{") {
		end, err := matchBrace(spec, 0)
		if err != nil {
			return token{}, err
		}
		pattern = spec[1:end]
		rest := spec[end+1:]
		if len(rest) > 0 {
			typ = rest[0]
		}
	} else if len(spec) > 0 {
		typ = spec[0]
	}
	return token{kind: tokTimestamp, tsGen: datetime.Compile(pattern), tsType: typ}, nil
}

func parseLeftover(spec string) (token, error) {
	tok := token{
		kind:            tokLeftover,
		leftoverPattern: defaultLeftoverPattern(),
		separator:       defaultSeparator,
	}
	i := 0
	for i < len(spec) {
		if spec[i] != '{' {
			i++
			continue
		}
		end, err := matchBrace(spec, i)
		if err != nil {
			return token{}, err
		}
		group := spec[i+1 : end]
		body, typ, hasTyp := splitGroupType(group)
		if hasTyp {
			switch typ {
			case 'p':
				tok.leftoverPattern = parseMiniPattern(body)
			case 's':
				tok.separator = body
			}
		}
		i = end + 1
	}
	return tok, nil
}

// splitGroupType splits a leftover sub-group's content at the last
// top-level ':' into (body, typeLetter): the type letter is a single
// character ('p' or 's') following the body.
func splitGroupType(group string) (body string, typ byte, ok bool) {
	depth := 0
	last := -1
	for i := 0; i < len(group); i++ {
		switch group[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ':':
			if depth == 0 {
				last = i
			}
		}
	}
	if last == -1 || last+1 >= len(group) {
		return group, 0, false
	}
	return group[:last], group[last+1], true
}

// parseMiniPattern parses the leftover's per-attribute pattern: literals
// plus the pseudo-placeholders {name} and {value}, each with an optional
// ":spec".
func parseMiniPattern(body string) []leftoverPiece {
	var pieces []leftoverPiece
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, leftoverPiece{literal: lit.String()})
			lit.Reset()
		}
	}
	i := 0
	for i < len(body) {
		if body[i] == '{' {
			end, err := matchBrace(body, i)
			if err != nil {
				lit.WriteByte(body[i])
				i++
				continue
			}
			content := body[i+1 : end]
			nm, sp, _ := splitNameSpec(content)
			switch nm {
			case "name":
				flush()
				pieces = append(pieces, leftoverPiece{isName: true, spec: sp})
			case "value":
				flush()
				pieces = append(pieces, leftoverPiece{isValue: true, spec: sp})
			default:
				lit.WriteString(body[i : end+1])
			}
			i = end + 1
			continue
		}
		lit.WriteByte(body[i])
		i++
	}
	flush()
	return pieces
}

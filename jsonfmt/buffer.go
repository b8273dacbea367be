// Package jsonfmt renders an activated corelog.Record as JSON (or TSKV)
// text by assembling the output directly into a byte buffer, the way the
// teacher's JSON formatter does, rather than building an intermediate
// map[string]any and handing it to encoding/json.Marshal.
package jsonfmt

import (
	"sync"
	"unicode/utf8"
)

// buffer is a byte buffer implemented over a slice, pooled the same way the
// teacher pools its formatter scratch buffers.
type buffer []byte

var bufPool = sync.Pool{
	New: func() any {
		b := make(buffer, 0, 1024)
		return &b
	},
}

func newBuffer() *buffer { return bufPool.Get().(*buffer) }

// release returns modestly sized buffers to the pool and leaks large ones,
// matching the teacher's Buffer.Release.
func (b *buffer) release() {
	const maxSz = 16 << 10
	if b == nil {
		return
	}
	if cap(*b) <= maxSz {
		*b = (*b)[:0]
		bufPool.Put(b)
	}
}

func (b *buffer) tail() byte { return (*b)[len(*b)-1] }

func (b *buffer) WriteString(s string) (int, error) { *b = append(*b, s...); return len(s), nil }
func (b *buffer) WriteByte(c byte) error             { *b = append(*b, c); return nil }
func (b *buffer) Write(p []byte) (int, error)        { *b = append(*b, p...); return len(p), nil }

// writeJSONString escapes s for JSON and appends it to b, without
// surrounding quotes. Adapted from encoding/json's encodeState.string with
// escapeHTML forced off, matching the teacher's formatter_json.go.
func writeJSONString(b *buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		if c := s[i]; c < utf8.RuneSelf {
			if safeSet[c] {
				i++
				continue
			}
			if start < i {
				b.WriteString(s[start:i])
			}
			b.WriteByte('\\')
			switch c {
			case '\\', '"':
				b.WriteByte(c)
			case '\n':
				b.WriteByte('n')
			case '\r':
				b.WriteByte('r')
			case '\t':
				b.WriteByte('t')
			default:
				b.WriteString(`u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if start < i {
				b.WriteString(s[start:i])
			}
			b.WriteString("\ufffd")
			i += size
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		b.WriteString(s[start:])
	}
}

func appendJSONString(b *buffer, s string) {
	b.WriteByte('"')
	writeJSONString(b, s)
	b.WriteByte('"')
}

var hex = "0123456789abcdef"

// safeSet holds true for ASCII bytes representable in a JSON string without
// further escaping. Copied from encoding/json's tables (also reused in the
// teacher's formatter_json.go).
var safeSet = [utf8.RuneSelf]bool{
	' ': true, '!': true, '"': false, '#': true, '$': true, '%': true, '&': true,
	'\'': true, '(': true, ')': true, '*': true, '+': true, ',': true, '-': true,
	'.': true, '/': true, '0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true, ':': true, ';': true,
	'<': true, '=': true, '>': true, '?': true, '@': true, 'A': true, 'B': true,
	'C': true, 'D': true, 'E': true, 'F': true, 'G': true, 'H': true, 'I': true,
	'J': true, 'K': true, 'L': true, 'M': true, 'N': true, 'O': true, 'P': true,
	'Q': true, 'R': true, 'S': true, 'T': true, 'U': true, 'V': true, 'W': true,
	'X': true, 'Y': true, 'Z': true, '[': true, '\\': false, ']': true, '^': true,
	'_': true, '`': true, 'a': true, 'b': true, 'c': true, 'd': true, 'e': true,
	'f': true, 'g': true, 'h': true, 'i': true, 'j': true, 'k': true, 'l': true,
	'm': true, 'n': true, 'o': true, 'p': true, 'q': true, 'r': true, 's': true,
	't': true, 'u': true, 'v': true, 'w': true, 'x': true, 'y': true, 'z': true,
	'{': true, '|': true, '}': true, '~': true, '\u007f': true,
}

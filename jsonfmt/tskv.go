package jsonfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quay/corelog"
	"github.com/quay/corelog/datetime"
)

// defaultTSKVPattern matches the teacher's documented default: an RFC-3164-ish
// timestamp with a trailing numeric zone offset.
const defaultTSKVPattern = `%Y-%m-%d %H:%M:%S %z`

// TSKV renders a record as a single tab-separated key=value line, the wire
// format named "tskv" by http://github.com/yandex/tskv and produced by the
// original library's formatter/tskv.hpp. Not part of the distilled spec;
// supplied because the library's documented wire formats include it
// alongside JSON.
type TSKV struct {
	insert []kv
	tsGen  *datetime.Generator
}

type kv struct{ key, value string }

// TSKVBuilder assembles a TSKV formatter.
type TSKVBuilder struct {
	t TSKV
}

// NewTSKV returns a builder using the default timestamp pattern.
func NewTSKV() *TSKVBuilder {
	return &TSKVBuilder{t: TSKV{tsGen: datetime.Compile(defaultTSKVPattern)}}
}

// Insert adds a constant key=value field, appended after the record's
// attributes in insertion order.
func (b *TSKVBuilder) Insert(key, value string) *TSKVBuilder {
	b.t.insert = append(b.t.insert, kv{key, value})
	return b
}

// Timestamp overrides the default strftime-like timestamp pattern.
func (b *TSKVBuilder) Timestamp(pattern string) *TSKVBuilder {
	b.t.tsGen = datetime.Compile(pattern)
	return b
}

func (b *TSKVBuilder) Build() *TSKV {
	t := b.t
	return &t
}

// Execute writes rec as "tskv\tk1=v1\tk2=v2...\n".
func (t *TSKV) Execute(w io.Writer, rec *corelog.Record) error {
	b := newBuffer()
	defer b.release()

	b.WriteString("tskv")

	b.WriteString("\ttimestamp=")
	t.tsGen.Execute(b, rec.Timestamp.UTC(), rec.Timestamp.Nanosecond()/1000)

	b.WriteString("\tseverity=")
	*b = strconv.AppendInt(*b, int64(rec.Severity), 10)

	b.WriteString("\tpid=")
	*b = strconv.AppendInt(*b, int64(rec.PID), 10)

	fmt.Fprintf(b, "\ttid=0x%02x", rec.ThreadID)

	b.WriteString("\tmessage=")
	writeTSKVValue(b, rec.Formatted)

	rec.Pack.Each(func(key string, v corelog.View) bool {
		b.WriteByte('\t')
		writeTSKVValue(b, key)
		b.WriteByte('=')
		var sb strings.Builder
		v.WriteTo(&sb)
		writeTSKVValue(b, sb.String())
		return true
	})

	for _, f := range t.insert {
		b.WriteByte('\t')
		writeTSKVValue(b, f.key)
		b.WriteByte('=')
		writeTSKVValue(b, f.value)
	}

	b.WriteByte('\n')
	_, err := w.Write(*b)
	return err
}

// writeTSKVValue escapes the three characters that would otherwise break
// TSKV's tab-delimited framing or its line framing: a literal backslash,
// tab, and newline.
func writeTSKVValue(b *buffer, s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(s[i])
		}
	}
}

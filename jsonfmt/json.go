package jsonfmt

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/quay/corelog"
	"github.com/quay/corelog/datetime"
)

// Formatter renders a record as a single JSON object, built field by field
// into a scratch buffer rather than through an intermediate map[string]any,
// matching the teacher's formatter_json.go.
type Formatter struct {
	newline  bool
	unique   bool
	rename   map[string]string
	routes   []route
	tsGen    *datetime.Generator
	sevTable map[int32]string
}

type route struct {
	path []string
	keys map[string]bool
}

// Builder assembles a Formatter via the fluent options spec.md §4.6
// describes.
type Builder struct {
	f Formatter
}

// New returns a Builder with no rename/route/unique/newline configured and
// the default (epoch-microseconds) timestamp representation.
func New() *Builder {
	return &Builder{}
}

// Newline appends a trailing '\n' after each rendered object.
func (b *Builder) Newline() *Builder { b.f.newline = true; return b }

// Unique suppresses later duplicates of an already-emitted attribute key.
func (b *Builder) Unique() *Builder { b.f.unique = true; return b }

// Rename maps the emitted field named from to the name to, applied after
// collection (so route matching below still sees the pre-rename key).
func (b *Builder) Rename(from, to string) *Builder {
	if b.f.rename == nil {
		b.f.rename = make(map[string]string)
	}
	b.f.rename[from] = to
	return b
}

// Route places the named keys under the nested object addressed by path
// (e.g. "/fields/external"). Keys not claimed by any route stay at the
// object root.
func (b *Builder) Route(path string, keys ...string) *Builder {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	b.f.routes = append(b.f.routes, route{path: segs, keys: m})
	return b
}

// Timestamp switches the timestamp field from epoch-microseconds to a
// formatted string using pattern (a strftime-like pattern, see
// corelog/datetime).
func (b *Builder) Timestamp(pattern string) *Builder {
	b.f.tsGen = datetime.Compile(pattern)
	return b
}

// Severity installs a table mapping severity integers to the string emitted
// for the "severity" field; severities outside the table fall back to the
// plain numeric value.
func (b *Builder) Severity(table map[int]string) *Builder {
	t := make(map[int32]string, len(table))
	for k, v := range table {
		t[int32(k)] = v
	}
	b.f.sevTable = t
	return b
}

// Build finalizes the configuration into a Formatter.
func (b *Builder) Build() *Formatter {
	f := b.f
	return &f
}

type field struct {
	key string
	raw []byte
}

// node is one level of the route-path trie used to assemble the nested
// object tree requested by Route.
type node struct {
	fields   []field
	children map[string]*node
	order    []string
}

func (n *node) child(key string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c, ok := n.children[key]
	if !ok {
		c = &node{}
		n.children[key] = c
		n.order = append(n.order, key)
	}
	return c
}

func (n *node) descend(path []string) *node {
	cur := n
	for _, seg := range path {
		cur = cur.child(seg)
	}
	return cur
}

// Execute renders rec as a JSON object into w, per the Formatter's
// configuration.
func (f *Formatter) Execute(w io.Writer, rec *corelog.Record) error {
	root := &node{}

	rename := func(k string) string {
		if f.rename == nil {
			return k
		}
		if to, ok := f.rename[k]; ok {
			return to
		}
		return k
	}
	routeFor := func(k string) *route {
		for i := range f.routes {
			if f.routes[i].keys[k] {
				return &f.routes[i]
			}
		}
		return nil
	}
	place := func(key string, raw []byte) {
		fl := field{key: rename(key), raw: raw}
		if r := routeFor(key); r != nil {
			leaf := root.descend(r.path)
			leaf.fields = append(leaf.fields, fl)
			return
		}
		root.fields = append(root.fields, fl)
	}

	b := newBuffer()
	defer b.release()

	appendJSONString(b, rec.Formatted)
	place("message", append([]byte(nil), *b...))
	*b = (*b)[:0]

	if f.sevTable != nil {
		if s, ok := f.sevTable[int32(rec.Severity)]; ok {
			appendJSONString(b, s)
		} else {
			*b = strconv.AppendInt(*b, int64(rec.Severity), 10)
		}
	} else {
		*b = strconv.AppendInt(*b, int64(rec.Severity), 10)
	}
	place("severity", append([]byte(nil), *b...))
	*b = (*b)[:0]

	if f.tsGen != nil {
		b.WriteByte('"')
		f.tsGen.Execute(b, rec.Timestamp.UTC(), rec.Timestamp.Nanosecond()/1000)
		b.WriteByte('"')
	} else {
		*b = strconv.AppendUint(*b, uint64(rec.Timestamp.UnixMicro()), 10)
	}
	place("timestamp", append([]byte(nil), *b...))
	*b = (*b)[:0]

	*b = strconv.AppendInt(*b, int64(rec.PID), 10)
	place("process", append([]byte(nil), *b...))
	*b = (*b)[:0]

	*b = strconv.AppendUint(*b, rec.ThreadID, 10)
	place("thread", append([]byte(nil), *b...))
	*b = (*b)[:0]

	var rerr error
	emit := func(key string, v corelog.View) bool {
		*b = (*b)[:0]
		if err := appendValue(b, v); err != nil {
			rerr = err
			return false
		}
		place(key, append([]byte(nil), *b...))
		return true
	}
	if f.unique {
		rec.Pack.EachUnique(emit)
	} else {
		rec.Pack.Each(emit)
	}
	if rerr != nil {
		return rerr
	}

	*b = (*b)[:0]
	writeNode(b, root)
	if f.newline {
		b.WriteByte('\n')
	}
	_, err := w.Write(*b)
	return err
}

func writeNode(b *buffer, n *node) {
	b.WriteByte('{')
	wrote := false
	for _, fl := range n.fields {
		if wrote {
			b.WriteByte(',')
		}
		appendJSONString(b, fl.key)
		b.WriteByte(':')
		b.Write(fl.raw)
		wrote = true
	}
	for _, key := range n.order {
		if wrote {
			b.WriteByte(',')
		}
		appendJSONString(b, key)
		b.WriteByte(':')
		writeNode(b, n.children[key])
		wrote = true
	}
	b.WriteByte('}')
}

// appendValue renders v's natural JSON representation into b.
func appendValue(b *buffer, v corelog.View) error {
	switch v.Kind() {
	case corelog.KindNull:
		b.WriteString("null")
	case corelog.KindBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case corelog.KindInt64:
		*b = strconv.AppendInt(*b, v.Int64(), 10)
	case corelog.KindUint64:
		*b = strconv.AppendUint(*b, v.Uint64(), 10)
	case corelog.KindFloat64:
		*b = strconv.AppendFloat(*b, v.Float64(), 'g', -1, 64)
	case corelog.KindString:
		appendJSONString(b, v.String())
	case corelog.KindTime:
		b.WriteByte('"')
		*b = v.Time().AppendFormat(*b, time.RFC3339Nano)
		b.WriteByte('"')
	case corelog.KindDuration:
		appendJSONString(b, v.Duration().String())
	case corelog.KindFunc:
		var sb strings.Builder
		v.WriteTo(&sb)
		appendJSONString(b, sb.String())
	case corelog.KindAny:
		return appendAny(b, v.Any())
	default:
		b.WriteString("null")
	}
	return nil
}

// appendAny mirrors the teacher's AppendAny dispatch: a Displayer or error
// renders as a plain JSON string, a json.Marshaler is trusted as-is,
// anything else goes through encoding/json with HTML escaping disabled.
func appendAny(b *buffer, a any) error {
	switch a := a.(type) {
	case corelog.Displayer:
		var sb strings.Builder
		a.AppendCoreLog(&sb)
		appendJSONString(b, sb.String())
		return nil
	case json.Marshaler:
		out, err := a.MarshalJSON()
		if err != nil {
			return err
		}
		b.Write(out)
		return nil
	case error:
		appendJSONString(b, a.Error())
		return nil
	default:
		enc := json.NewEncoder(b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(a); err != nil {
			return err
		}
		if b.tail() == '\n' {
			*b = (*b)[:len(*b)-1]
		}
		return nil
	}
}

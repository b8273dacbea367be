// Package datetime compiles a strftime-like pattern into a token program
// once, then executes that program against a time.Time plus a microsecond
// count on every call — the same "compile once, execute many" shape the
// teacher uses for its formatter hook tables, applied here to timestamp
// rendering instead of whole-record rendering.
package datetime

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Locale supplies the names used by locale-sensitive directives (%B %b %A %a
// %c %p). A Generator from Compile uses English names, matching time.Month
// and time.Weekday's defaults, unless the caller opts in to a different
// Locale via WithLocale, which uses the given Locale's fields as they are.
type Locale struct {
	Months   [12]string
	WeekdaysF [7]string // full names, Sunday = index 0
	WeekdaysA [7]string // abbreviated
	AM, PM   string
}

var defaultLocale = Locale{
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	WeekdaysF: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	WeekdaysA: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	AM:        "AM",
	PM:        "PM",
}

// token is one compiled piece of the pattern: either a literal byte run or a
// function that renders a directive against (t, microseconds).
type token struct {
	literal string
	fn      func(w io.Writer, t time.Time, micros int, loc *Locale)
}

// Generator is a compiled strftime-like pattern.
type Generator struct {
	tokens []token
	locale *Locale
}

// DefaultPattern is used by the string formatter's timestamp placeholder
// when no pattern spec is given.
const DefaultPattern = `%Y-%m-%d %H:%M:%S.%f`

// Compile parses pattern once into a token program. Unknown directives
// (a '%' followed by a character not in the recognized set) are emitted
// literally (the leading '%' and the following rune), matching the
// teacher's general tolerance for unrecognized format-spec runes rather
// than hard-failing mid-pattern.
func Compile(pattern string) *Generator {
	g := &Generator{locale: &defaultLocale}
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			g.tokens = append(g.tokens, token{literal: string(lit)})
			lit = lit[:0]
		}
	}
	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '%' || i+1 >= len(rs) {
			lit = append(lit, string(rs[i])...)
			continue
		}
		i++
		// Handle the two-rune %Es directive.
		if rs[i] == 'E' && i+1 < len(rs) && rs[i+1] == 's' {
			flush()
			g.tokens = append(g.tokens, token{fn: epochSecondsAlt})
			i++
			continue
		}
		if fn, ok := directives[rs[i]]; ok {
			flush()
			g.tokens = append(g.tokens, token{fn: fn})
			continue
		}
		// Unrecognized directive: emit literally.
		lit = append(append(lit, '%'), string(rs[i])...)
	}
	flush()
	return g
}

// WithLocale returns a copy of g rendering locale-sensitive directives with
// loc instead of the English default.
func (g *Generator) WithLocale(loc Locale) *Generator {
	g2 := *g
	g2.locale = &loc
	return &g2
}

// Execute renders the compiled pattern for t (interpreted as already being
// in the desired zone — callers pass t.UTC() or t.Local() themselves) plus
// an explicit microseconds value, writing into w.
func (g *Generator) Execute(w io.Writer, t time.Time, micros int) {
	for _, tok := range g.tokens {
		if tok.fn != nil {
			tok.fn(w, t, micros, g.locale)
			continue
		}
		io.WriteString(w, tok.literal)
	}
}

// pad writes v zero-padded to width digits. This hand-rolled path avoids
// fmt.Sprintf's formatting overhead, which matters here because timestamp
// rendering runs on every single log record.
func pad(w io.Writer, v, width int) {
	var buf [12]byte
	neg := v < 0
	if neg {
		v = -v
	}
	i := len(buf)
	if v == 0 {
		i--
		buf[i] = '0'
	}
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	for len(buf)-i < width {
		i--
		buf[i] = '0'
	}
	if neg {
		i--
		buf[i] = '-'
	}
	w.Write(buf[i:])
}

var directives map[rune]func(w io.Writer, t time.Time, micros int, loc *Locale)

func init() {
	directives = map[rune]func(w io.Writer, t time.Time, micros int, loc *Locale){
		'Y': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Year(), 4) },
		'y': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Year()%100, 2) },
		'C': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Year()/100, 2) },
		'm': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, int(t.Month()), 2) },
		'B': func(w io.Writer, t time.Time, _ int, loc *Locale) { io.WriteString(w, loc.Months[int(t.Month())-1]) },
		'b': func(w io.Writer, t time.Time, _ int, loc *Locale) { io.WriteString(w, loc.Months[int(t.Month())-1][:3]) },
		'A': func(w io.Writer, t time.Time, _ int, loc *Locale) { io.WriteString(w, loc.WeekdaysF[int(t.Weekday())]) },
		'a': func(w io.Writer, t time.Time, _ int, loc *Locale) { io.WriteString(w, loc.WeekdaysA[int(t.Weekday())]) },
		'U': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			_, wk := weekNumber(t, time.Sunday)
			pad(w, wk, 2)
		},
		'W': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			_, wk := weekNumber(t, time.Monday)
			pad(w, wk, 2)
		},
		'j': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.YearDay(), 3) },
		'd': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Day(), 2) },
		'e': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			if t.Day() < 10 {
				io.WriteString(w, " ")
				pad(w, t.Day(), 1)
			} else {
				pad(w, t.Day(), 2)
			}
		},
		'H': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Hour(), 2) },
		'I': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			pad(w, h, 2)
		},
		'M': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Minute(), 2) },
		'S': func(w io.Writer, t time.Time, _ int, _ *Locale) { pad(w, t.Second(), 2) },
		'p': func(w io.Writer, t time.Time, _ int, loc *Locale) {
			if t.Hour() < 12 {
				io.WriteString(w, loc.AM)
			} else {
				io.WriteString(w, loc.PM)
			}
		},
		'z': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			_, off := t.Zone()
			sign := byte('+')
			if off < 0 {
				sign = '-'
				off = -off
			}
			w.Write([]byte{sign})
			pad(w, off/3600, 2)
			pad(w, (off/60)%60, 2)
		},
		'Z': func(w io.Writer, t time.Time, _ int, _ *Locale) { name, _ := t.Zone(); io.WriteString(w, name) },
		'c': func(w io.Writer, t time.Time, _ int, loc *Locale) {
			fmt.Fprintf(w, "%s %s ", loc.WeekdaysA[int(t.Weekday())], loc.Months[int(t.Month())-1][:3])
			if t.Day() < 10 {
				io.WriteString(w, " ")
				pad(w, t.Day(), 1)
			} else {
				pad(w, t.Day(), 2)
			}
			io.WriteString(w, " ")
			pad(w, t.Hour(), 2)
			io.WriteString(w, ":")
			pad(w, t.Minute(), 2)
			io.WriteString(w, ":")
			pad(w, t.Second(), 2)
			io.WriteString(w, " ")
			pad(w, t.Year(), 4)
		},
		'D': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			pad(w, int(t.Month()), 2)
			io.WriteString(w, "/")
			pad(w, t.Day(), 2)
			io.WriteString(w, "/")
			pad(w, t.Year()%100, 2)
		},
		'F': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			pad(w, t.Year(), 4)
			io.WriteString(w, "-")
			pad(w, int(t.Month()), 2)
			io.WriteString(w, "-")
			pad(w, t.Day(), 2)
		},
		'T': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			pad(w, t.Hour(), 2)
			io.WriteString(w, ":")
			pad(w, t.Minute(), 2)
			io.WriteString(w, ":")
			pad(w, t.Second(), 2)
		},
		'%': func(w io.Writer, _ time.Time, _ int, _ *Locale) { io.WriteString(w, "%") },
		'f': func(w io.Writer, _ time.Time, micros int, _ *Locale) { pad(w, micros, 6) },
		's': func(w io.Writer, t time.Time, _ int, _ *Locale) {
			io.WriteString(w, strconv.FormatInt(t.Unix(), 10))
		},
	}
}

// epochSecondsAlt implements %Es: epoch seconds adjusted for t's UTC offset,
// i.e. what the local wall clock would read as a Unix timestamp had the zone
// been UTC all along.
func epochSecondsAlt(w io.Writer, t time.Time, _ int, _ *Locale) {
	_, off := t.Zone()
	io.WriteString(w, strconv.FormatInt(t.Unix()+int64(off), 10))
}

// weekNumber computes the ISO-ish week number where weeks start on
// startOfWeek; this mirrors strftime's %U (Sunday-start) and %W
// (Monday-start), which are not the same algorithm as ISO 8601's %V.
func weekNumber(t time.Time, startOfWeek time.Weekday) (time.Time, int) {
	yday := t.YearDay() - 1
	wday := int(t.Weekday()-startOfWeek+7) % 7
	firstDay := yday - wday
	week := (firstDay + 7) / 7
	return t, week
}

package sink

import (
	"io"
	"sync"

	"github.com/quay/corelog"
)

// Color is one of the small set of ANSI colors a Console sink's color
// callback may return for a record; Color(0) means "no color".
type Color int

const (
	NoColor Color = iota
	Red
	Green
	Yellow
	Blue
)

var escapes = map[Color]string{
	Red:    "\x1b[31m",
	Green:  "\x1b[32m",
	Yellow: "\x1b[33m",
	Blue:   "\x1b[34m",
}

const resetEscape = "\x1b[0m"

// consoleMu serializes writes from every Console in the process, so records
// written by two Console sinks sharing a stream do not interleave.
var consoleMu sync.Mutex

// ColorFunc picks the Color a record's output is bracketed with.
type ColorFunc func(rec *corelog.Record) Color

// DefaultColorFunc colors by severity, the way the teacher's prose
// formatter colors severity level text.
func DefaultColorFunc(rec *corelog.Record) Color {
	switch {
	case rec.Severity >= corelog.SeverityCritical:
		return Red
	case rec.Severity >= corelog.SeverityError:
		return Red
	case rec.Severity >= corelog.SeverityWarning:
		return Yellow
	default:
		return NoColor
	}
}

// Console writes formatted records to an underlying stream (commonly
// os.Stdout/os.Stderr), bracketing each one with a color escape when the
// stream is a terminal. TTY detection runs once, at construction, matching
// the teacher's isatty check in tty_linux.go/tty_unix.go.
type Console struct {
	w     io.Writer
	tty   bool
	color ColorFunc
}

// NewConsole wraps w. If color is nil, DefaultColorFunc is used.
func NewConsole(w io.Writer, color ColorFunc) *Console {
	if color == nil {
		color = DefaultColorFunc
	}
	return &Console{w: w, tty: isatty(w), color: color}
}

func (c *Console) Filter(*corelog.Record) bool { return true }

// Emit writes formatted plus a trailing newline, bracketed by the color
// escape/reset pair when the destination is a terminal.
func (c *Console) Emit(rec *corelog.Record, formatted []byte) error {
	col := NoColor
	if c.tty {
		col = c.color(rec)
	}
	consoleMu.Lock()
	defer consoleMu.Unlock()
	if esc, ok := escapes[col]; ok {
		if _, err := io.WriteString(c.w, esc); err != nil {
			return err
		}
	}
	if _, err := c.w.Write(formatted); err != nil {
		return err
	}
	if col != NoColor {
		if _, err := io.WriteString(c.w, resetEscape); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.w, "\n")
	return err
}

package sink

import (
	"bufio"
	"os"
	"sync"

	"github.com/quay/corelog"
)

// File owns a path, an open handle plus write buffer, a Flusher policy, and
// an optional RotatePolicy, per spec.md §4.7.
type File struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	buf    *bufio.Writer
	flush  Flusher
	rotate RotatePolicy
}

// NewFile opens path for appending (creating it if necessary) and returns a
// File sink. If flush is nil, a RepeatFlusher(1) (flush every write) is
// used; if rotate is nil, the sink never rotates on its own.
func NewFile(path string, flush Flusher, rotate RotatePolicy) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &corelog.SystemError{Op: "open", Err: err}
	}
	if flush == nil {
		flush = NewRepeatFlusher(1)
	}
	if rotate == nil {
		rotate = NeverRotate{}
	}
	return &File{path: path, f: f, buf: bufio.NewWriter(f), flush: flush, rotate: rotate}, nil
}

func (s *File) Filter(*corelog.Record) bool { return true }

// Emit writes formatted plus a trailing newline, rotating first if the
// configured RotatePolicy signals it should, and flushing afterward if the
// configured Flusher signals it should.
func (s *File) Emit(_ *corelog.Record, formatted []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rotate.ShouldRotate(s.path) {
		if err := s.reopenLocked(); err != nil {
			return err
		}
	}

	n, err := s.buf.Write(formatted)
	if err != nil {
		return &corelog.SystemError{Op: "write", Err: err}
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		return &corelog.SystemError{Op: "write", Err: err}
	}
	n++

	if s.flush.ShouldFlush(n) {
		if err := s.buf.Flush(); err != nil {
			return &corelog.SystemError{Op: "flush", Err: err}
		}
	}
	return nil
}

func (s *File) reopenLocked() error {
	if err := s.buf.Flush(); err != nil {
		return &corelog.SystemError{Op: "flush", Err: err}
	}
	if err := s.f.Close(); err != nil {
		return &corelog.SystemError{Op: "close", Err: err}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &corelog.SystemError{Op: "open", Err: err}
	}
	s.f = f
	s.buf = bufio.NewWriter(f)
	return nil
}

// Close flushes any buffered bytes and closes the underlying file.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buf.Flush(); err != nil {
		return &corelog.SystemError{Op: "flush", Err: err}
	}
	return s.f.Close()
}

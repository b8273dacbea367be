package sink

import (
	"net"
	"sync"

	"github.com/quay/corelog"
)

// TCP writes each record's formatted bytes to a persistent connected
// stream. The sink does not add a trailing newline — the formatter is
// responsible for framing, per spec.md §4.7.
type TCP struct {
	mu   sync.Mutex
	addr string
	conn net.Conn
}

// NewTCP resolves and connects to addr ("host:port").
func NewTCP(addr string) (*TCP, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &corelog.SystemError{Op: "dial", Err: err}
	}
	return &TCP{addr: addr, conn: conn}, nil
}

func (s *TCP) Filter(*corelog.Record) bool { return true }

// Emit writes formatted verbatim. A write failure is surfaced as a
// SystemError; the sink does not retry or reconnect on its own.
func (s *TCP) Emit(_ *corelog.Record, formatted []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.conn.Write(formatted); err != nil {
		return &corelog.SystemError{Op: "write", Err: err}
	}
	return nil
}

// Close releases the underlying connection.
func (s *TCP) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

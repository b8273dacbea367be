package sink

import (
	"net"

	"github.com/quay/corelog"
)

// UDP sends each record's formatted bytes as a single datagram to a
// resolved address. Construction resolves the address once; there is no
// retry on a send failure.
type UDP struct {
	conn *net.UDPConn
}

// NewUDP resolves addr ("host:port") and returns a UDP sink.
func NewUDP(addr string) (*UDP, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, &corelog.SystemError{Op: "resolve", Err: err}
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, &corelog.SystemError{Op: "dial", Err: err}
	}
	return &UDP{conn: conn}, nil
}

func (s *UDP) Filter(*corelog.Record) bool { return true }

// Emit sends formatted as a single datagram, unmodified (no added newline:
// the formatter owns framing for datagram-oriented sinks).
func (s *UDP) Emit(_ *corelog.Record, formatted []byte) error {
	if _, err := s.conn.Write(formatted); err != nil {
		return &corelog.SystemError{Op: "write", Err: err}
	}
	return nil
}

// Close releases the underlying socket.
func (s *UDP) Close() error { return s.conn.Close() }

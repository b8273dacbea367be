package sink

import (
	"net"
	"testing"
	"time"

	"github.com/quay/corelog"
)

func TestUDPEmitSendsDatagram(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer conn.Close()

	s, err := NewUDP(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("NewUDP: %v", err)
	}
	defer s.Close()

	if err := s.Emit(&corelog.Record{}, []byte("hello")); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	buf := make([]byte, 64)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP: %v", err)
	}
	if got := string(buf[:n]); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestTCPEmitWritesStream(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	s, err := NewTCP(ln.Addr().String())
	if err != nil {
		t.Fatalf("NewTCP: %v", err)
	}
	defer s.Close()

	server := <-accepted
	defer server.Close()

	if err := s.Emit(&corelog.Record{}, []byte("a")); err != nil {
		t.Fatalf("Emit 1: %v", err)
	}
	if err := s.Emit(&corelog.Record{}, []byte("b")); err != nil {
		t.Fatalf("Emit 2: %v", err)
	}

	buf := make([]byte, 2)
	server.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := readFull(server, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf) != "ab" {
		t.Fatalf("got %q, want %q (no separator should be inserted between Emits)", buf, "ab")
	}
}

func readFull(c net.Conn, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := c.Read(buf[n:])
		if err != nil {
			return n, err
		}
		n += m
	}
	return n, nil
}

package sink

import (
	"fmt"
	"strconv"
	"strings"
)

// Flusher decides, after each write to a File sink, whether the backing
// writer should be flushed now.
type Flusher interface {
	// ShouldFlush is called with the number of bytes just written.
	ShouldFlush(n int) bool
}

// RepeatFlusher flushes every N-th write; N=0 disables flushing until close.
type RepeatFlusher struct {
	n       int
	counter int
}

// NewRepeatFlusher returns a Flusher that fires every n writes.
func NewRepeatFlusher(n int) *RepeatFlusher { return &RepeatFlusher{n: n} }

func (f *RepeatFlusher) ShouldFlush(int) bool {
	if f.n <= 0 {
		return false
	}
	f.counter++
	if f.counter >= f.n {
		f.counter = 0
		return true
	}
	return false
}

// BytecountFlusher flushes when a rolling byte counter, incremented by
// bytes-written modulo threshold, wraps.
type BytecountFlusher struct {
	threshold int64
	counter   int64
}

// NewBytecountFlusher returns a Flusher that fires once at least threshold
// bytes have accumulated since the last flush.
func NewBytecountFlusher(threshold int64) *BytecountFlusher {
	return &BytecountFlusher{threshold: threshold}
}

func (f *BytecountFlusher) ShouldFlush(n int) bool {
	if f.threshold <= 0 {
		return false
	}
	f.counter += int64(n)
	if f.counter >= f.threshold {
		f.counter -= f.threshold
		return true
	}
	return false
}

// ParseByteSize parses an integer with an optional binary or decimal unit
// suffix (B, kB, MB, GB, KiB, MiB, GiB) into a byte count, for constructing a
// BytecountFlusher from configuration text.
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	units := []struct {
		suffix string
		mul    int64
	}{
		{"KiB", 1 << 10}, {"MiB", 1 << 20}, {"GiB", 1 << 30},
		{"kB", 1000}, {"MB", 1000 * 1000}, {"GB", 1000 * 1000 * 1000},
		{"B", 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			numStr := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			n, err := strconv.ParseInt(numStr, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("corelog/sink: invalid byte size %q: %w", s, err)
			}
			return n * u.mul, nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corelog/sink: invalid byte size %q: %w", s, err)
	}
	return n, nil
}

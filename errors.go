package corelog

import (
	"errors"
	"fmt"
)

// ErrAttributeNotFound is returned (wrapped) by a formatter when a required
// placeholder has no matching attribute and no default value.
var ErrAttributeNotFound = errors.New("corelog: attribute not found")

// ParseError is returned from a formatter builder when a pattern is
// ill-formed. It carries the 0-based byte offset of the failure and a short
// snippet of the surrounding pattern, for error messages that point at the
// problem instead of just naming it.
type ParseError struct {
	Pos     int
	Snippet string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("corelog: parse error at %d (%q): %s", e.Pos, e.Snippet, e.Reason)
}

// SystemError wraps an OS-level failure raised by a sink (open, connect,
// write, resolve).
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string { return fmt.Sprintf("corelog: %s: %v", e.Op, e.Err) }
func (e *SystemError) Unwrap() error { return e.Err }

// InvalidArgumentError is returned from builders/factories for a missing
// required configuration key or an out-of-range parameter.
type InvalidArgumentError struct {
	Param  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("corelog: invalid argument %s: %s", e.Param, e.Reason)
}

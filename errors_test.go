package corelog

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Pos: 5, Snippet: "{bad", Reason: "unterminated placeholder"}
	msg := err.Error()
	if !strings.Contains(msg, "5") || !strings.Contains(msg, "unterminated placeholder") {
		t.Fatalf("Error() = %q, missing expected parts", msg)
	}
}

func TestSystemErrorUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	err := &SystemError{Op: "dial", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("SystemError should unwrap to its inner error")
	}
	if !strings.Contains(err.Error(), "dial") {
		t.Fatalf("Error() = %q, missing op", err.Error())
	}
}

func TestInvalidArgumentErrorMessage(t *testing.T) {
	err := &InvalidArgumentError{Param: "capacity", Reason: "must be positive"}
	msg := err.Error()
	if !strings.Contains(msg, "capacity") || !strings.Contains(msg, "must be positive") {
		t.Fatalf("Error() = %q, missing expected parts", msg)
	}
}

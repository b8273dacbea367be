package corelog

import (
	"errors"
	"testing"
)

func TestReportInternalNoopWhenUnset(t *testing.T) {
	old := Internal
	Internal = nil
	defer func() { Internal = old }()

	// Must not panic.
	reportInternal(SeverityError, "whatever", nil)
}

func TestReportInternalInvokesHook(t *testing.T) {
	old := Internal
	defer func() { Internal = old }()

	var gotSev Severity
	var gotMsg string
	var gotErr error
	Internal = func(sev Severity, msg string, err error) {
		gotSev, gotMsg, gotErr = sev, msg, err
	}

	wantErr := errors.New("boom")
	reportInternal(SeverityCritical, "something broke", wantErr)

	if gotSev != SeverityCritical || gotMsg != "something broke" || gotErr != wantErr {
		t.Fatalf("hook received (%v, %q, %v)", gotSev, gotMsg, gotErr)
	}
}

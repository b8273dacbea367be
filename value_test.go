package corelog

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type stringerThing struct{}

func (stringerThing) String() string { return "stringer-repr" }

type displayerThing struct{}

func (displayerThing) AppendCoreLog(w io.Writer) { io.WriteString(w, "displayer-repr") }

func writeToString(v View) string {
	var sb strings.Builder
	v.WriteTo(&sb)
	return sb.String()
}

func TestAnyDispatchesKnownScalars(t *testing.T) {
	if Any(nil).Kind() != KindNull {
		t.Error("Any(nil) should be KindNull")
	}
	if Any(true).Kind() != KindBool || !Any(true).Bool() {
		t.Error("Any(true) should be a true KindBool")
	}
	if Any(42).Kind() != KindInt64 || Any(42).Int64() != 42 {
		t.Error("Any(int) should box as KindInt64")
	}
	if Any("x").Kind() != KindString || Any("x").String() != "x" {
		t.Error("Any(string) should box as KindString")
	}
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if Any(ts).Kind() != KindTime {
		t.Error("Any(time.Time) should box as KindTime")
	}
	if Any(5 * time.Second).Kind() != KindDuration {
		t.Error("Any(time.Duration) should box as KindDuration")
	}
}

func TestAnyFallsBackToKindAny(t *testing.T) {
	v := Any(stringerThing{})
	if v.Kind() != KindAny {
		t.Fatalf("Kind = %v, want KindAny", v.Kind())
	}
}

func TestWriteToDisplayerPreferredOverStringer(t *testing.T) {
	got := writeToString(Any(displayerThing{}))
	if got != "displayer-repr" {
		t.Fatalf("WriteTo = %q, want displayer-repr", got)
	}
}

func TestWriteToErrorPreferredOverGenericSprint(t *testing.T) {
	got := writeToString(Any(errors.New("boom")))
	if got != "boom" {
		t.Fatalf("WriteTo(error) = %q, want %q", got, "boom")
	}
}

func TestWriteToStringer(t *testing.T) {
	got := writeToString(Any(stringerThing{}))
	if got != "stringer-repr" {
		t.Fatalf("WriteTo(stringer) = %q, want %q", got, "stringer-repr")
	}
}

func TestWriteToScalarKinds(t *testing.T) {
	cases := []struct {
		v    View
		want string
	}{
		{NullView, "null"},
		{BoolView(true), "true"},
		{BoolView(false), "false"},
		{Int64View(-7), "-7"},
		{Uint64View(7), "7"},
		{StringView("hi"), "hi"},
	}
	for _, tc := range cases {
		if got := writeToString(tc.v); got != tc.want {
			t.Errorf("WriteTo(%v) = %q, want %q", tc.v.Kind(), got, tc.want)
		}
	}
}

func TestFuncViewOwnMaterializesImmediately(t *testing.T) {
	called := false
	v := FuncView(func(w io.Writer) {
		called = true
		io.WriteString(w, "lazy")
	})
	owned := v.Own()
	if !called {
		t.Fatal("Own should invoke the func immediately")
	}
	if owned.Kind() != KindString {
		t.Fatalf("owned Kind = %v, want KindString", owned.Kind())
	}
	if owned.View().String() != "lazy" {
		t.Fatalf("owned value = %q, want %q", owned.View().String(), "lazy")
	}
}

func TestValueViewRoundTrip(t *testing.T) {
	v := Any("hello").Own()
	view := v.View()
	if view.Kind() != KindString || view.String() != "hello" {
		t.Fatalf("View() round trip = %v %q", view.Kind(), view.String())
	}
}

package corelog

import "testing"

func TestListAppendAndGet(t *testing.T) {
	var l List
	l = l.Append("a", Int(1))
	l = l.Append("b", StringView("two"))

	if v, ok := l.Get("a"); !ok || v.Int64() != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	if v, ok := l.Get("b"); !ok || v.String() != "two" {
		t.Fatalf("Get(b) = %v, %v", v, ok)
	}
	if _, ok := l.Get("missing"); ok {
		t.Fatal("Get(missing) should report false")
	}
}

func TestListGetFirstOccurrenceWins(t *testing.T) {
	l := List{{Key: "a", Value: Int(1)}, {Key: "a", Value: Int(2)}}
	v, ok := l.Get("a")
	if !ok || v.Int64() != 1 {
		t.Fatalf("Get(a) = %v, %v, want first occurrence (1)", v, ok)
	}
}

func TestFields(t *testing.T) {
	l := Fields("a", 1, "b", "two", "c", true)
	if len(l) != 3 {
		t.Fatalf("len = %d, want 3", len(l))
	}
	if v, ok := l.Get("a"); !ok || v.Int64() != 1 {
		t.Errorf("a = %v, %v", v, ok)
	}
	if v, ok := l.Get("b"); !ok || v.String() != "two" {
		t.Errorf("b = %v, %v", v, ok)
	}
	if v, ok := l.Get("c"); !ok || v.Bool() != true {
		t.Errorf("c = %v, %v", v, ok)
	}
}

func TestFieldsOddArgsDropsTrailing(t *testing.T) {
	l := Fields("a", 1, "dangling")
	if len(l) != 1 {
		t.Fatalf("len = %d, want 1 (trailing unmatched key dropped)", len(l))
	}
}

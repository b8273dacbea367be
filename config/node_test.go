package config

import "testing"

func TestNoneAccessorsFail(t *testing.T) {
	n := None{}
	if _, err := n.Bool(); err != ErrBadOptionalAccess {
		t.Errorf("Bool: got %v, want ErrBadOptionalAccess", err)
	}
	if _, err := n.String(); err != ErrBadOptionalAccess {
		t.Errorf("String: got %v, want ErrBadOptionalAccess", err)
	}
	if k := n.Key("x"); k != (None{}) {
		t.Error("Key on None should recurse into None")
	}
	if i := n.Index(0); i != (None{}) {
		t.Error("Index on None should recurse into None")
	}
}

func TestFromAnyScalarsAndCast(t *testing.T) {
	n := FromAny("hello")
	s, err := n.String()
	if err != nil || s != "hello" {
		t.Fatalf("String() = %q, %v", s, err)
	}
	if _, err := n.Bool(); err != ErrBadCast {
		t.Fatalf("Bool() on a string node: got %v, want ErrBadCast", err)
	}
}

func TestFromAnyMapAndMissingKey(t *testing.T) {
	n := FromAny(map[string]any{"a": "x", "b": 42.0})
	if s, err := n.Key("a").String(); err != nil || s != "x" {
		t.Fatalf("Key(a).String() = %q, %v", s, err)
	}
	if i, err := n.Key("b").Int64(); err != nil || i != 42 {
		t.Fatalf("Key(b).Int64() = %d, %v", i, err)
	}
	if _, err := n.Key("missing").String(); err != ErrBadOptionalAccess {
		t.Fatalf("missing key: got %v, want ErrBadOptionalAccess", err)
	}
}

func TestFromAnyList(t *testing.T) {
	n := FromAny([]any{"a", "b", "c"})
	var got []string
	n.Each(func(v Node) bool {
		s, _ := v.String()
		got = append(got, s)
		return true
	})
	if len(got) != 3 || got[1] != "b" {
		t.Fatalf("Each collected %v", got)
	}
	if s, err := n.Index(1).String(); err != nil || s != "b" {
		t.Fatalf("Index(1).String() = %q, %v", s, err)
	}
	if n.Index(10) != (None{}) {
		t.Fatal("out-of-range Index should return None")
	}
}

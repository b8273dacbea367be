package corelog

import "testing"

func TestPackGetFirstListWins(t *testing.T) {
	inner := &List{{Key: "a", Value: Int(1)}}
	outer := &List{{Key: "a", Value: Int(2)}, {Key: "b", Value: Int(3)}}
	p := Pack{inner, outer}

	if v, ok := p.Get("a"); !ok || v.Int64() != 1 {
		t.Fatalf("Get(a) = %v, %v, want inner list's value", v, ok)
	}
	if v, ok := p.Get("b"); !ok || v.Int64() != 3 {
		t.Fatalf("Get(b) = %v, %v", v, ok)
	}
	if _, ok := p.Get("missing"); ok {
		t.Fatal("Get(missing) should report false")
	}
}

func TestPackGetSkipsNilLists(t *testing.T) {
	p := Pack{nil, &List{{Key: "a", Value: Int(1)}}}
	if v, ok := p.Get("a"); !ok || v.Int64() != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
}

func TestPackPush(t *testing.T) {
	var p Pack
	l1 := &List{{Key: "a", Value: Int(1)}}
	l2 := &List{{Key: "b", Value: Int(2)}}
	p = p.Push(l1)
	p = p.Push(l2)
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	if p[0] != l1 || p[1] != l2 {
		t.Fatal("Push should append in call order")
	}
}

func TestPackEachVisitsDuplicates(t *testing.T) {
	p := Pack{
		&List{{Key: "a", Value: Int(1)}},
		&List{{Key: "a", Value: Int(2)}, {Key: "b", Value: Int(3)}},
	}
	var keys []string
	p.Each(func(key string, v View) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) != 3 {
		t.Fatalf("Each visited %d pairs, want 3 (no dedup)", len(keys))
	}
}

func TestPackEachUniqueFirstOccurrenceWins(t *testing.T) {
	p := Pack{
		&List{{Key: "a", Value: Int(1)}},
		&List{{Key: "a", Value: Int(2)}, {Key: "b", Value: Int(3)}},
	}
	seen := map[string]int64{}
	var order []string
	p.EachUnique(func(key string, v View) bool {
		seen[key] = v.Int64()
		order = append(order, key)
		return true
	})
	if len(order) != 2 {
		t.Fatalf("EachUnique visited %d keys, want 2", len(order))
	}
	if seen["a"] != 1 {
		t.Errorf("a = %d, want 1 (first occurrence)", seen["a"])
	}
	if seen["b"] != 3 {
		t.Errorf("b = %d, want 3", seen["b"])
	}
}

func TestPackEachUniqueStopsEarly(t *testing.T) {
	p := Pack{&List{{Key: "a", Value: Int(1)}, {Key: "b", Value: Int(2)}, {Key: "c", Value: Int(3)}}}
	var visited int
	p.EachUnique(func(key string, v View) bool {
		visited++
		return key != "b"
	})
	if visited != 2 {
		t.Fatalf("visited %d, want 2 (stop after b)", visited)
	}
}

package corelog

import "github.com/cespare/xxhash/v2"

// Pack is the ordered set of attribute lists visible to a single log call.
// Lists are consulted in the order they were pushed by the caller: the first
// list containing a key wins lookup (inner scope overrides outer). Iteration
// (for the leftover placeholder and the JSON formatter) walks the pack in
// that same order.
type Pack []*List

// Push appends a list to the pack and returns the resulting pack. Lists
// pushed later are consulted later by Get but still iterated after earlier
// ones by Each — first-wins on lookup, pack-order on iteration, as specified.
func (p Pack) Push(l *List) Pack {
	return append(p, l)
}

// Get resolves key against the pack: the first list (in pack order) that
// contains the key wins.
func (p Pack) Get(key string) (View, bool) {
	for _, l := range p {
		if l == nil {
			continue
		}
		if v, ok := l.Get(key); ok {
			return v, true
		}
	}
	return View{}, false
}

// Each calls fn for every (key, value) pair in the pack, in pack order,
// without suppressing duplicates.
func (p Pack) Each(fn func(key string, v View) bool) {
	for _, l := range p {
		if l == nil {
			continue
		}
		for _, kv := range *l {
			if !fn(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// EachUnique calls fn for every (key, value) pair in the pack, in pack
// order, skipping a key once it has already been seen (first occurrence
// wins, matching Get's semantics). Seen keys are tracked by a 64-bit hash
// rather than the string itself, since this runs on the hot leftover-
// placeholder and JSON-formatter paths and avoids re-hashing long keys
// through the runtime's generic map hash on every record.
func (p Pack) EachUnique(fn func(key string, v View) bool) {
	seen := make(map[uint64]struct{}, 8)
	for _, l := range p {
		if l == nil {
			continue
		}
		for _, kv := range *l {
			h := xxhash.Sum64String(kv.Key)
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			if !fn(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// Len returns the number of lists in the pack (not the number of attributes).
func (p Pack) Len() int { return len(p) }

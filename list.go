package corelog

// KV is a single key/value pair within a [List].
type KV struct {
	Key   string
	Value View
}

// List is an ordered, duplicate-preserving sequence of attributes
// contributed by a single scope (a Log call's pack argument, a Wrapper's
// attributes, or a Frame's attributes).
type List []KV

// Append adds a key/value pair to the list and returns the (possibly
// reallocated) list, in the style of the built-in append.
func (l List) Append(key string, v View) List {
	return append(l, KV{Key: key, Value: v})
}

// Get returns the first value for key in the list, insertion order.
func (l List) Get(key string) (View, bool) {
	for _, kv := range l {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return View{}, false
}

// Fields is a convenience constructor building a List from alternating
// key/value pairs, where values are converted with [Any].
func Fields(kv ...any) List {
	l := make(List, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		l = append(l, KV{Key: key, Value: Any(kv[i+1])})
	}
	return l
}

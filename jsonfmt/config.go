package jsonfmt

import "github.com/quay/corelog/config"

// FromConfig builds a Formatter from a config.Node tree, for callers that
// assemble a Builder from parsed configuration rather than Go call sites.
// Recognized keys: "newline" (bool), "unique" (bool), "timestamp" (string,
// a strftime pattern), "rename" (map of field name to field name), "route"
// (map of "/"-separated path to a list of field names).
func FromConfig(cfg config.Node) *Builder {
	b := New()
	if v, err := cfg.Key("newline").Bool(); err == nil && v {
		b.Newline()
	}
	if v, err := cfg.Key("unique").Bool(); err == nil && v {
		b.Unique()
	}
	if v, err := cfg.Key("timestamp").String(); err == nil {
		b.Timestamp(v)
	}
	cfg.Key("rename").EachMap(func(from string, v config.Node) bool {
		if to, err := v.String(); err == nil {
			b.Rename(from, to)
		}
		return true
	})
	cfg.Key("route").EachMap(func(path string, v config.Node) bool {
		var keys []string
		v.Each(func(n config.Node) bool {
			if k, err := n.String(); err == nil {
				keys = append(keys, k)
			}
			return true
		})
		if len(keys) > 0 {
			b.Route(path, keys...)
		}
		return true
	})
	return b
}

// Package config defines the consumer-facing configuration tree interface
// used by this module's builder FromConfig constructors. It implements no
// parser of its own: a caller hands in a Node backed by whatever config
// format (JSON, YAML, TOML, a flag set) they already parse elsewhere.
package config

import "errors"

// ErrBadCast is returned by a Node accessor (Bool, Int64, String, ...) when
// the underlying value exists but is not of the requested type.
var ErrBadCast = errors.New("corelog/config: value is not of the requested type")

// ErrBadOptionalAccess is returned by any accessor on None: the node this
// value would have lived at was never present in the configuration tree.
var ErrBadOptionalAccess = errors.New("corelog/config: no value at this node")

// Node is a single position in a configuration tree: a scalar, a list
// (accessed by Index/Each), or a map (accessed by Key/EachMap).
type Node interface {
	Bool() (bool, error)
	Int64() (int64, error)
	Uint64() (uint64, error)
	Float64() (float64, error)
	String() (string, error)

	// Index returns the i-th element of a list node. A missing index (out
	// of range, or this node isn't a list) returns None.
	Index(i int) Node
	// Key returns the named element of a map node. A missing key (or this
	// node isn't a map) returns None.
	Key(k string) Node

	// Each iterates a list node's elements in order, stopping early if fn
	// returns false. A no-op on any other node kind.
	Each(fn func(Node) bool)
	// EachMap iterates a map node's entries; iteration order is left to the
	// implementation. A no-op on any other node kind.
	EachMap(fn func(key string, v Node) bool)
}

// None is the Node returned in place of any value that wasn't present.
// Every scalar accessor fails with ErrBadOptionalAccess; Index and Key
// recurse into None rather than panicking, so a caller can chain
// cfg.Key("sink").Key("file").Key("path").String() without a nil check at
// every step.
type None struct{}

func (None) Bool() (bool, error)       { return false, ErrBadOptionalAccess }
func (None) Int64() (int64, error)     { return 0, ErrBadOptionalAccess }
func (None) Uint64() (uint64, error)   { return 0, ErrBadOptionalAccess }
func (None) Float64() (float64, error) { return 0, ErrBadOptionalAccess }
func (None) String() (string, error)   { return "", ErrBadOptionalAccess }

func (None) Index(int) Node  { return None{} }
func (None) Key(string) Node { return None{} }

func (None) Each(func(Node) bool)            {}
func (None) EachMap(func(string, Node) bool) {}

var _ Node = None{}

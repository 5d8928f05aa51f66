package request

import (
	"iter"
	"slices"
)

// Loader references one step of a loader chain.
type Loader struct {
	// Path is the loader's module path. It is never empty.
	Path string
	// Query is the literal query suffix beginning with '?', or empty if the
	// segment had none.
	Query string
	// Module reports whether Path is a module reference rather than a
	// filesystem path.
	Module bool
}

// HasQuery reports whether the loader carries a query string.
func (l Loader) HasQuery() bool { return l.Query != "" }

// String returns the loader segment as it appears in an identifier.
func (l Loader) String() string { return l.Path + l.Query }

// Resource is the trailing segment of an identifier that the loader chain
// operates on.
type Resource struct {
	// Path is the resource path, or empty if the segment held only a query.
	Path string
	// Query is the literal query suffix beginning with '?', or empty.
	Query string
	// Module reports whether Path is a module reference.
	// It is always false when Path is empty; use [Resource.IsModule] to
	// tell "filesystem path" apart from "no path".
	Module bool
}

// HasPath reports whether the resource segment contained a path.
func (r Resource) HasPath() bool { return r.Path != "" }

// HasQuery reports whether the resource segment contained a query.
func (r Resource) HasQuery() bool { return r.Query != "" }

// IsModule returns the module flag and whether it is defined.
// The flag is undefined when the resource has no path.
func (r Resource) IsModule() (module, ok bool) {
	return r.Module, r.HasPath()
}

// String returns the resource segment as it appears in an identifier.
func (r Resource) String() string { return r.Path + r.Query }

// Chain is an ordered sequence of loader references that may also be null.
//
// The zero value is the null chain.
type Chain struct {
	loaders []Loader
	valid   bool
}

// NullChain returns the chain of an identifier that contains no '!'.
func NullChain() Chain { return Chain{} }

// NewChain returns a non-null chain holding a copy of the given loaders.
// NewChain() with no arguments is the empty, non-null chain.
func NewChain(loaders ...Loader) Chain {
	c := Chain{valid: true}
	if len(loaders) > 0 {
		c.loaders = slices.Clone(loaders)
	}

	return c
}

// IsNull reports whether the identifier had no loader separators at all.
func (c Chain) IsNull() bool { return !c.valid }

// Len returns the number of loaders. A null chain has length zero.
func (c Chain) Len() int { return len(c.loaders) }

// At returns the loader at index i. It panics if i is out of range.
func (c Chain) At(i int) Loader { return c.loaders[i] }

// All returns an iterator over the loaders and their indices.
func (c Chain) All() iter.Seq2[int, Loader] {
	return func(yield func(int, Loader) bool) {
		for i, l := range c.loaders {
			if !yield(i, l) {
				return
			}
		}
	}
}

// Loaders returns a copy of the loaders, or nil for a null chain.
// A non-null empty chain returns a non-nil empty slice.
func (c Chain) Loaders() []Loader {
	if !c.valid {
		return nil
	}

	return append(make([]Loader, 0, len(c.loaders)), c.loaders...)
}

// Equal reports whether two chains have the same null-ness and loaders.
func (c Chain) Equal(o Chain) bool {
	return c.valid == o.valid && slices.Equal(c.loaders, o.loaders)
}

// Request is the structured form of a module request identifier.
//
// A Request is a value: it shares no memory with the string it was parsed
// from, and callers should treat it as immutable.
type Request struct {
	// Loaders is the loader chain, null when the identifier had no '!'.
	Loaders Chain
	// Resource is nil when the identifier had no resource segment.
	Resource *Resource
}

// HasResource reports whether the request has a resource segment.
func (r Request) HasResource() bool { return r.Resource != nil }

// Equal reports whether a and b are structurally identical, including the
// distinction between null and empty loader chains.
func Equal(a, b Request) bool {
	if !a.Loaders.Equal(b.Loaders) {
		return false
	}

	switch {
	case a.Resource == nil && b.Resource == nil:
		return true
	case a.Resource == nil || b.Resource == nil:
		return false
	default:
		return *a.Resource == *b.Resource
	}
}

// Parsed pairs an identifier with the request parsed from it.
type Parsed struct {
	Identifier string
	Request
}

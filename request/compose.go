package request

import (
	"slices"
	"strings"

	"github.com/ardnew/mung"
)

// Prepend returns identifier with loaders placed at the front of its loader
// chain, in argument order. The existing loaders and the resource segment
// are preserved as is, repeats included.
func Prepend(identifier string, loaders ...string) string {
	return PrependIf(identifier, nil, loaders...)
}

// PrependIf is like [Prepend] but only keeps the loader segments, prepended
// or existing, for which keep returns true. A nil keep accepts every segment.
//
// The prepended loaders are munged as a '!'-delimited list the same way as
// PATH-like variables, so a loader given more than once is prepended only at
// its first position. The existing chain is never de-duplicated.
func PrependIf(
	identifier string,
	keep func(segment string) bool,
	loaders ...string,
) string {
	r := Parse(identifier)

	chain := make([]Loader, 0, len(loaders)+r.Loaders.Len())
	chain = append(chain, prefixLoaders(keep, loaders)...)

	for _, l := range r.Loaders.All() {
		if keep == nil || keep(l.String()) {
			chain = append(chain, l)
		}
	}

	if len(chain) == 0 && r.Loaders.IsNull() {
		return r.String()
	}

	return Request{Loaders: NewChain(chain...), Resource: r.Resource}.String()
}

// prefixLoaders munges loaders into the loaders to prepend. mung emits its
// prefix items last-to-first, so they are handed over reversed.
func prefixLoaders(keep func(string) bool, loaders []string) []Loader {
	if len(loaders) == 0 {
		return nil
	}

	prefix := slices.Clone(loaders)
	slices.Reverse(prefix)

	delim := string(Separator)

	var list string
	if keep != nil {
		list = mung.Make(
			mung.WithSubjectItems(""),
			mung.WithDelim(delim),
			mung.WithPrefixItems(prefix...),
			mung.WithFilter(keep),
		).String()
	} else {
		list = mung.Make(
			mung.WithSubjectItems(""),
			mung.WithDelim(delim),
			mung.WithPrefixItems(prefix...),
		).String()
	}

	out := make([]Loader, 0, len(loaders))

	for segment := range strings.SplitSeq(list, delim) {
		if l, ok := parseLoader(segment); ok {
			out = append(out, l)
		}
	}

	return out
}

// Retain returns identifier rebuilt with only the loaders for which keep
// returns true. Identifiers without a loader chain are returned in canonical
// form.
func Retain(identifier string, keep func(Loader) bool) string {
	r := Parse(identifier)
	if r.Loaders.IsNull() {
		return r.String()
	}

	kept := make([]Loader, 0, r.Loaders.Len())
	for _, l := range r.Loaders.All() {
		if keep(l) {
			kept = append(kept, l)
		}
	}

	return Request{Loaders: NewChain(kept...), Resource: r.Resource}.String()
}

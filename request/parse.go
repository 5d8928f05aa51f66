package request

import "strings"

const (
	// Separator delimits the segments of an identifier.
	Separator = '!'
	// QueryMark begins the query portion of a segment.
	QueryMark = '?'
)

// Parse decomposes a module request identifier.
//
// The identifier is split on every '!'. The final segment is the resource;
// every preceding non-empty segment is a loader. Each segment is then divided
// at its first '?' into path and query.
//
// Parse never fails. The empty string yields a null chain and no resource,
// and "!" yields an empty (non-null) chain and no resource.
func Parse(identifier string) Request {
	// Own a private copy so the result never aliases caller memory.
	identifier = strings.Clone(identifier)

	sep := strings.LastIndexByte(identifier, Separator)
	if sep < 0 {
		return Request{Resource: parseResource(identifier)}
	}

	head, tail := identifier[:sep], identifier[sep+1:]

	chain := Chain{valid: true}

	for segment := range strings.SplitSeq(head, string(Separator)) {
		if l, ok := parseLoader(segment); ok {
			chain.loaders = append(chain.loaders, l)
		}
	}

	return Request{
		Loaders:  chain,
		Resource: parseResource(tail),
	}
}

// ParseAll parses each identifier in order.
func ParseAll(identifiers ...string) []Parsed {
	parsed := make([]Parsed, len(identifiers))
	for i, id := range identifiers {
		parsed[i] = Parsed{Identifier: id, Request: Parse(id)}
	}

	return parsed
}

// split divides a segment at its first '?'.
func split(segment string) (path, query string) {
	if i := strings.IndexByte(segment, QueryMark); i >= 0 {
		return segment[:i], segment[i:]
	}

	return segment, ""
}

// parseLoader decomposes a loader segment. Segments without a path, including
// the empty segments produced by leading or repeated separators, contribute
// no loader.
func parseLoader(segment string) (Loader, bool) {
	path, query := split(segment)
	if path == "" {
		return Loader{}, false
	}

	return Loader{Path: path, Query: query, Module: IsModule(path)}, true
}

// parseResource decomposes the resource segment, returning nil if it is empty.
func parseResource(segment string) *Resource {
	if segment == "" {
		return nil
	}

	path, query := split(segment)

	return &Resource{Path: path, Query: query, Module: IsModule(path)}
}

// Package request parses module request identifiers.
//
// A module request identifier combines an ordered chain of loader references
// and a trailing resource, each optionally followed by a query string:
//
//	raw!./loader?qqq!module/lib/file?query
//	└┬┘ └────┬─────┘ └──────┬──────────────┘
//	 loader  loader         resource
//
// Segments are separated by '!'. Within a segment, everything from the first
// '?' onward is the query, kept verbatim (including any further '?').
//
// # Parsing
//
// [Parse] is total: every string, including the empty string, yields a
// structurally valid [Request]. There is no error result.
//
//	r := request.Parse("raw!./file")
//	for _, l := range r.Loaders.All() {
//		fmt.Println(l.Path, l.Module) // raw true
//	}
//	fmt.Println(r.Resource.Path) // ./file
//
// # Null and empty loader chains
//
// A [Chain] distinguishes "no '!' at all" ([Chain.IsNull]) from "'!' present
// but no loader segments" (non-null, zero length). Callers relying on the
// distinction must use [Chain.IsNull] rather than [Chain.Len].
//
// # Module references
//
// A path is a module reference unless it begins with a relative prefix
// ("./", "../", or their backslash forms), a leading slash or backslash, or a
// drive letter ("C:\", "C:/"). See [IsModule].
//
// # Rendering
//
// A parsed request renders back to canonical identifier text with
// [Request.String], to a native map with [Request.ToMap], and to JSON, YAML,
// or a text table with [FormatJSON], [FormatYAML], and [FormatText]. [Render]
// dispatches on an output name listed by [Outputs].
//
// # Filtering and composition
//
// [CompileFilter] compiles an expr-lang predicate evaluated against parsed
// requests. [Prepend] and [Retain] rewrite the loader chain of an identifier.
package request

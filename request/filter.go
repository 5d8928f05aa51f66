package request

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over parsed requests.
//
// Expressions see the following variables:
//
//	identifier    string   the text the request was parsed from
//	loaders       []any    each loader as {path, query, module}; empty when null
//	resource      map      {path, query, module}; empty when absent
//	has_loaders   bool     false when the identifier contained no '!'
//	has_resource  bool     false when there is no resource segment
//	loader_count  int      number of loaders
//
// Absent values (queries, query-only resource paths) are nil. For example:
//
//	has_resource && resource.module == false
//	any(loaders, .query != nil)
//	identifier startsWith "raw!"
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles src into a Filter. The expression must yield a bool.
func CompileFilter(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(filterEnv(Parsed{})), expr.AsBool())
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("expr", src))
	}

	return &Filter{source: src, program: program}, nil
}

// String returns the source of the expression.
func (f *Filter) String() string { return f.source }

// Match reports whether p satisfies the filter.
func (f *Filter) Match(p Parsed) (bool, error) {
	out, err := expr.Run(f.program, filterEnv(p))
	if err != nil {
		return false, ErrFilterEvaluate.Wrap(err).
			With(
				slog.String("expr", f.source),
				slog.String("identifier", p.Identifier),
			)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// filterEnv builds the expression environment for p. Absent chains and
// resources are typed empty values so member access yields nil instead of
// failing at runtime.
func filterEnv(p Parsed) map[string]any {
	loaders := []any{}
	for _, l := range p.Loaders.All() {
		loaders = append(loaders, l.toMap())
	}

	resource := map[string]any{}
	if p.Resource != nil {
		resource = p.Resource.toMap()
	}

	return map[string]any{
		"identifier":   p.Identifier,
		"loaders":      loaders,
		"resource":     resource,
		"has_loaders":  !p.Loaders.IsNull(),
		"has_resource": p.Resource != nil,
		"loader_count": p.Loaders.Len(),
	}
}

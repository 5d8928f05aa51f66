package repl

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/ardnew/modreq/request"
)

// preview summarizes the parse of line on a single line.
func preview(line string, filter *request.Filter, s styles) string {
	r := request.Parse(line)

	parts := []string{s.result.Render(r.String())}

	switch n := r.Loaders.Len(); {
	case r.Loaders.IsNull():
		parts = append(parts, "no loaders")
	case n == 1:
		parts = append(parts, "1 loader")
	default:
		parts = append(parts, strconv.Itoa(n)+" loaders")
	}

	switch {
	case r.Resource == nil:
		parts = append(parts, "no resource")
	case !r.Resource.HasPath():
		parts = append(parts, "query-only resource")
	case r.Resource.Module:
		parts = append(parts, "module resource")
	default:
		parts = append(parts, "file resource")
	}

	if filter != nil {
		parts = append(parts, filterMark(filter, request.Parsed{Identifier: line, Request: r}, s))
	}

	return s.hint.Render("→ ") + strings.Join(parts, s.hint.Render(" · "))
}

func filterMark(filter *request.Filter, p request.Parsed, s styles) string {
	ok, err := filter.Match(p)

	switch {
	case err != nil:
		return s.err.Render("filter error")
	case ok:
		return s.result.Render("✔ " + filter.String())
	default:
		return s.err.Render("✘ " + filter.String())
	}
}

// render formats the parse of line in the named format.
func render(ctx context.Context, format, line string, color bool) (string, error) {
	var buf bytes.Buffer

	err := request.Render(ctx, &buf, format, 2, color, request.ParseAll(line)...)

	return strings.TrimRight(buf.String(), "\n"), err
}

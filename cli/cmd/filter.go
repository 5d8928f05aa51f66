package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/modreq/log"
	"github.com/ardnew/modreq/request"
)

// Filter prints the identifiers whose parsed form satisfies an expression.
//
// The expression sees the variables identifier, loaders, resource,
// has_loaders, has_resource, and loader_count.
type Filter struct {
	Invert bool     `help:"Print identifiers that do not match." short:"v"`
	Expr   string   `arg:"" help:"Boolean filter expression."`
	IDs    []string `arg:"" help:"Identifiers to filter."        name:"identifier" optional:""`
}

// Run executes the filter command.
func (f *Filter) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := request.CompileFilter(f.Expr)
	if err != nil {
		return err
	}

	w := stdioFrom(ctx).out

	var matched, total int

	for id, err := range identifiers(ctx, f.IDs) {
		if err != nil {
			return err
		}

		total++

		ok, err := filter.Match(request.Parsed{Identifier: id, Request: request.Parse(id)})
		if err != nil {
			return err
		}

		if ok == f.Invert {
			continue
		}

		matched++

		if err := writeLine(w, id); err != nil {
			return err
		}
	}

	log.DebugContext(ctx, "filtered identifiers",
		slog.String("expr", filter.String()),
		slog.Int("total", total),
		slog.Int("matched", matched),
	)

	return nil
}

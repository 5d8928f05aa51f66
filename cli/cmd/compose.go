package cmd

import (
	"context"
	"slices"
	"strings"

	"github.com/ardnew/modreq/request"
)

// Compose rewrites the loader chain of each identifier.
//
// Filesystem loaders are dropped first (with --drop-files), then the
// --prepend loaders are placed at the front of the chain, omitting any
// loader whose path is listed by --exclude.
type Compose struct {
	Prepend   []string `help:"Loader to place at the front of the chain (repeatable)." placeholder:"LOADER" sep:"none" short:"p"`
	Exclude   []string `help:"Loader path to remove from the chain (repeatable)."       placeholder:"PATH"   sep:"none" short:"x"`
	DropFiles bool     `help:"Remove filesystem loaders."`
	IDs       []string `arg:"" help:"Identifiers to compose." name:"identifier" optional:""`
}

// Run executes the compose command.
func (c *Compose) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	w := stdioFrom(ctx).out

	for id, err := range identifiers(ctx, c.IDs) {
		if err != nil {
			return err
		}

		if err := writeLine(w, c.compose(id)); err != nil {
			return err
		}
	}

	return nil
}

func (c *Compose) compose(id string) string {
	if c.DropFiles {
		id = request.Retain(id, func(l request.Loader) bool { return l.Module })
	}

	if len(c.Exclude) == 0 {
		if len(c.Prepend) == 0 {
			return request.Parse(id).String()
		}

		return request.Prepend(id, c.Prepend...)
	}

	return request.PrependIf(id, c.keep, c.Prepend...)
}

// keep reports whether a loader segment survives --exclude.
func (c *Compose) keep(segment string) bool {
	path, _, _ := strings.Cut(segment, string(request.QueryMark))

	return !slices.Contains(c.Exclude, path)
}

package cmd

import (
	"context"

	"github.com/ardnew/modreq/cli/cmd/repl"
	"github.com/ardnew/modreq/log"
)

// Repl parses identifiers interactively.
type Repl struct {
	Format string `default:"text" enum:"text,json,yaml,canon" help:"Initial output format (${enum})." short:"o"`
	Filter string `help:"Initial filter expression."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, repl.Config{
		Logger:   log.Default(),
		Output:   stdioFrom(ctx).out,
		CacheDir: cacheDir,
		Format:   r.Format,
		Filter:   r.Filter,
		Color:    colorFrom(ctx),
	})
}

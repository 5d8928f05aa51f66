package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/modreq/log"
	"github.com/ardnew/modreq/request"
)

// Parse prints the structure of each identifier.
type Parse struct {
	Format string   `default:"text" enum:"text,json,yaml,canon" help:"Output format (${enum})."        short:"o"`
	Indent int      `default:"0"                                help:"Indent width of JSON/YAML output." short:"i"`
	IDs    []string `arg:""                                     help:"Identifiers to parse."             name:"identifier" optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ps, err := parseAll(ctx, p.IDs)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "parsed identifiers",
		slog.Int("count", len(ps)),
		slog.String("format", p.Format),
	)

	return Render(ctx, p.Format, p.Indent, ps...)
}

// Render writes ps to the output in ctx using the named format.
// The format names are those of [request.Outputs].
func Render(ctx context.Context, format string, indent int, ps ...request.Parsed) error {
	err := request.Render(ctx, stdioFrom(ctx).out, format, indent, colorFrom(ctx), ps...)

	switch {
	case err == nil:
		return nil

	case errors.Is(err, request.ErrUnknownOutput):
		return ErrInvalidFormat.Wrap(err).With(slog.String("format", format))

	default:
		return ErrWriteOutput.Wrap(err).With(slog.String("format", format))
	}
}

package request

import (
	"context"
	"io"
	"log/slog"
)

// Names of the output formats accepted by [Render].
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputCanon = "canon"
)

// Outputs returns the names of the output formats, the default first.
func Outputs() []string {
	return []string{OutputText, OutputJSON, OutputYAML, OutputCanon}
}

// Render writes ps to w in the named output format. An empty name selects
// text. Text output uses [ColorStyles] when color is set, and indent applies
// to JSON and YAML only.
func Render(
	ctx context.Context,
	w io.Writer,
	output string,
	indent int,
	color bool,
	ps ...Parsed,
) error {
	switch output {
	case OutputJSON:
		return FormatJSON(ctx, w, indent, ps...)

	case OutputYAML:
		return FormatYAML(ctx, w, indent, ps...)

	case OutputCanon:
		return FormatCanonical(ctx, w, ps...)

	case OutputText, "":
		styles := PlainStyles()
		if color {
			styles = ColorStyles()
		}

		return FormatText(ctx, w, styles, ps...)

	default:
		return ErrUnknownOutput.With(
			formatAttr(output),
			slog.Any("valid", Outputs()),
		)
	}
}

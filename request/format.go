package request

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
)

// String returns the canonical identifier text of r.
//
// Empty loader segments are dropped, so the result may differ from the text r
// was parsed from, but Parse(r.String()) is always equal to r.
func (r Request) String() string {
	var sb strings.Builder

	if !r.Loaders.IsNull() {
		for _, l := range r.Loaders.All() {
			sb.WriteString(l.String())
			sb.WriteByte(Separator)
		}

		// An empty non-null chain still needs its separator.
		if r.Loaders.Len() == 0 {
			sb.WriteByte(Separator)
		}
	}

	if r.Resource != nil {
		sb.WriteString(r.Resource.String())
	}

	return sb.String()
}

// ToMap converts r to native Go values.
//
// The result always has the keys "loaders" and "resource". Absent values are
// nil: a null chain, a missing resource, a missing query, and the path and
// module flag of a query-only resource.
func (r Request) ToMap() map[string]any {
	result := map[string]any{
		"loaders":  nil,
		"resource": nil,
	}

	if !r.Loaders.IsNull() {
		loaders := make([]any, 0, r.Loaders.Len())
		for _, l := range r.Loaders.All() {
			loaders = append(loaders, l.toMap())
		}

		result["loaders"] = loaders
	}

	if r.Resource != nil {
		result["resource"] = r.Resource.toMap()
	}

	return result
}

func (l Loader) toMap() map[string]any {
	return map[string]any{
		"path":   l.Path,
		"query":  optional(l.Query),
		"module": l.Module,
	}
}

func (r Resource) toMap() map[string]any {
	m := map[string]any{
		"path":   optional(r.Path),
		"query":  optional(r.Query),
		"module": nil,
	}

	if module, ok := r.IsModule(); ok {
		m["module"] = module
	}

	return m
}

func optional(s string) any {
	if s == "" {
		return nil
	}

	return s
}

// MarshalJSON implements json.Marshaler for Request.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// ToMap converts p to native Go values, adding the source identifier under
// the key "identifier".
func (p Parsed) ToMap() map[string]any {
	m := p.Request.ToMap()
	m["identifier"] = p.Identifier

	return m
}

// MarshalJSON implements json.Marshaler for Parsed.
func (p Parsed) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// FormatJSON writes each parsed request to w as a JSON object.
// With indent 0, objects are written one per line.
func FormatJSON(_ context.Context, w io.Writer, indent int, ps ...Parsed) error {
	for _, p := range ps {
		var (
			data []byte
			err  error
		)

		if indent > 0 {
			data, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(p)
		}

		if err != nil {
			return ErrFormat.Wrap(err).With(formatAttr("json"))
		}

		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}

	return nil
}

// FormatYAML writes each parsed request to w as a YAML document.
// Documents are separated by "---". With indent 0, flow style is used.
func FormatYAML(ctx context.Context, w io.Writer, indent int, ps ...Parsed) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	for i, p := range ps {
		data, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
		if err != nil {
			return ErrFormat.Wrap(err).With(formatAttr("yaml"))
		}

		if i > 0 {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprint(w, string(data)); err != nil {
			return err
		}
	}

	return nil
}

// FormatCanonical writes the canonical identifier of each request to w, one
// per line.
func FormatCanonical(_ context.Context, w io.Writer, ps ...Parsed) error {
	for _, p := range ps {
		if _, err := fmt.Fprintln(w, p.Request.String()); err != nil {
			return err
		}
	}

	return nil
}

// Styles controls the appearance of [FormatText] output.
type Styles struct {
	Identifier lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Border     lipgloss.Style
	Null       lipgloss.Style
}

// PlainStyles returns styles that add no color or emphasis.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()

	return Styles{Identifier: s, Header: s, Cell: s, Border: s, Null: s}
}

// ColorStyles returns the default colorized styles.
func ColorStyles() Styles {
	return Styles{
		Identifier: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")),
		Cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Null:       lipgloss.NewStyle().Faint(true),
	}
}

// nullText is displayed for absent values in text output.
const nullText = "-"

// FormatText writes a table per parsed request to w, listing each loader and
// the resource with its path, query, and kind.
func FormatText(_ context.Context, w io.Writer, styles Styles, ps ...Parsed) error {
	for i, p := range ps {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, styles.Identifier.Render(p.Identifier)); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, textTable(p.Request, styles)); err != nil {
			return err
		}
	}

	return nil
}

func textTable(r Request, styles Styles) string {
	rows := make([][]string, 0, r.Loaders.Len()+1)

	if r.Loaders.IsNull() {
		rows = append(rows, []string{"loaders", nullText, nullText, nullText})
	}

	for i, l := range r.Loaders.All() {
		rows = append(rows, []string{
			fmt.Sprintf("loader %d", i),
			l.Path,
			orNull(l.Query),
			kind(l.Module, true),
		})
	}

	if r.Resource == nil {
		rows = append(rows, []string{"resource", nullText, nullText, nullText})
	} else {
		module, ok := r.Resource.IsModule()
		rows = append(rows, []string{
			"resource",
			orNull(r.Resource.Path),
			orNull(r.Resource.Query),
			kind(module, ok),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers("SEGMENT", "PATH", "QUERY", "KIND").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}

			if row >= 0 && row < len(rows) && rows[row][col] == nullText {
				return styles.Null.Padding(0, 1)
			}

			return styles.Cell.Padding(0, 1)
		}).
		String()
}

func orNull(s string) string {
	if s == "" {
		return nullText
	}

	return s
}

func kind(module, ok bool) string {
	switch {
	case !ok:
		return nullText
	case module:
		return "module"
	default:
		return "file"
	}
}

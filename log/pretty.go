package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the styles of each part of a pretty record.
type prettyStyles struct {
	time    lipgloss.Style
	source  lipgloss.Style
	message lipgloss.Style
	key     lipgloss.Style
	str     lipgloss.Style
	number  lipgloss.Style
	boolean lipgloss.Style
	err     lipgloss.Style
	level   map[Level]lipgloss.Style
}

// makePrettyStyles binds styles to a renderer for w, so color is used only
// when w is a terminal that supports it.
func makePrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)
	level := r.NewStyle().Bold(true).Width(5)

	return prettyStyles{
		time:    r.NewStyle().Faint(true),
		source:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		message: r.NewStyle().Bold(true),
		key:     r.NewStyle().Foreground(lipgloss.Color("8")),
		str:     r.NewStyle().Foreground(lipgloss.Color("2")),
		number:  r.NewStyle().Foreground(lipgloss.Color("5")),
		boolean: r.NewStyle().Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")),
		level: map[Level]lipgloss.Style{
			LevelTrace: level.Foreground(lipgloss.Color("8")),
			LevelDebug: level.Foreground(lipgloss.Color("4")),
			LevelInfo:  level.Foreground(lipgloss.Color("6")),
			LevelWarn:  level.Foreground(lipgloss.Color("3")),
			LevelError: level.Foreground(lipgloss.Color("1")),
		},
	}
}

// prettyHandler writes one styled line per record:
//
//	TIME LEVEL source:line message key=value ...
type prettyHandler struct {
	opts   slog.HandlerOptions
	styles *prettyStyles
	mu     *sync.Mutex
	w      io.Writer
	prefix string // dotted group path applied to attribute keys
	attrs  []byte // attributes rendered by WithAttrs
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	styles := makePrettyStyles(w)

	return &prettyHandler{
		opts:   *opts,
		styles: &styles,
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.builtin(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			h.space(&buf)
			buf.WriteString(h.styles.time.Render(a.Value.String()))
		}
	}

	h.space(&buf)
	buf.WriteString(h.levelStyle(Level(r.Level)).Render(Level(r.Level).label()))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			h.space(&buf)
			buf.WriteString(h.styles.source.Render(
				shortPath(src.File) + ":" + strconv.Itoa(src.Line),
			))
		}
	}

	h.space(&buf)
	buf.WriteString(h.styles.message.Render(r.Message))

	buf.Write(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	buf := bytes.NewBuffer(bytes.Clone(h.attrs))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// builtin passes a record field through ReplaceAttr, if configured.
func (h *prettyHandler) builtin(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) levelStyle(l Level) lipgloss.Style {
	if s, ok := h.styles.level[l]; ok {
		return s
	}

	return h.styles.level[LevelInfo]
}

func (*prettyHandler) space(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}

		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range group {
			h.writeAttr(buf, prefix, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.value(a.Value))
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.styles.str.Render(quoteIfNeeded(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.styles.number.Render(v.String())

	case slog.KindBool:
		return h.styles.boolean.Render(v.String())

	case slog.KindDuration:
		return h.styles.number.Render(v.Duration().String())

	case slog.KindTime:
		return h.styles.time.Render(v.Time().Format(time.RFC3339))

	default:
		if err, ok := v.Any().(error); ok {
			return h.styles.err.Render(quoteIfNeeded(err.Error()))
		}

		return h.styles.str.Render(quoteIfNeeded(fmt.Sprint(v.Any())))
	}
}

// quoteIfNeeded quotes s when it is empty or would be ambiguous unquoted.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\r\"=") {
		return strconv.Quote(s)
	}

	return s
}

// shortPath trims a source file path to its last two elements.
func shortPath(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return path
	}

	if j := strings.LastIndexByte(path[:i], '/'); j >= 0 {
		return path[j+1:]
	}

	return path
}

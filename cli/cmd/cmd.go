package cmd

import (
	"bufio"
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/modreq/request"
)

type (
	contextKey struct{}
	sourcesKey struct{}
	stdioKey   struct{}
	colorKey   struct{}
)

// WithContext returns ctx carrying the kong context of the parsed command
// line.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdio is the standard input and output of a command.
type stdio struct {
	in  io.Reader
	out io.Writer
}

// WithStdio returns ctx carrying the reader and writer commands use in place
// of os.Stdin and os.Stdout. A nil argument keeps the current value.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	s := stdioFrom(ctx)

	if in != nil {
		s.in = in
	}

	if out != nil {
		s.out = out
	}

	return context.WithValue(ctx, stdioKey{}, s)
}

func stdioFrom(ctx context.Context) stdio {
	if s, ok := ctx.Value(stdioKey{}).(stdio); ok {
		return s
	}

	return stdio{in: os.Stdin, out: os.Stdout}
}

// Output returns the writer commands print to.
func Output(ctx context.Context) io.Writer { return stdioFrom(ctx).out }

// WithColor returns ctx carrying whether output may be styled with color.
func WithColor(ctx context.Context, enable bool) context.Context {
	return context.WithValue(ctx, colorKey{}, enable)
}

func colorFrom(ctx context.Context) bool {
	enable, _ := ctx.Value(colorKey{}).(bool)

	return enable
}

// stdinSource is the source name that selects standard input.
const stdinSource = "-"

// Sources is an ordered set of input files with duplicates removed.
// Standard input, if named, is always read last.
type Sources struct {
	paths []string
	stdin bool
}

// NewSources resolves the given paths into a [Sources].
//
// "-" selects standard input. Paths naming the same file, whether through
// symlinks, relative paths, or hard links, are read only once.
func NewSources(paths []string) (Sources, error) {
	var (
		src  Sources
		seen []os.FileInfo
	)

	stdinInfo, _ := os.Stdin.Stat()

	for _, path := range paths {
		if path == stdinSource {
			src.stdin = true

			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return Sources{}, ErrReadInput.Wrap(err).With(slog.String("file", path))
		}

		info, err := os.Stat(abs)
		if err != nil {
			return Sources{}, ErrReadInput.Wrap(err).With(slog.String("file", path))
		}

		if stdinInfo != nil && os.SameFile(info, stdinInfo) {
			src.stdin = true

			continue
		}

		if sameAny(info, seen) {
			continue
		}

		seen = append(seen, info)
		src.paths = append(src.paths, abs)
	}

	return src, nil
}

func sameAny(info os.FileInfo, seen []os.FileInfo) bool {
	for _, s := range seen {
		if os.SameFile(info, s) {
			return true
		}
	}

	return false
}

// IsZero reports whether no source was named.
func (s Sources) IsZero() bool { return len(s.paths) == 0 && !s.stdin }

// Paths returns the resolved file paths, excluding standard input.
func (s Sources) Paths() []string { return append([]string(nil), s.paths...) }

// Lines yields the identifiers in every source in order, one per line.
// Blank lines are skipped and a trailing carriage return is removed.
// Iteration stops with an error when ctx is done or a file cannot be read.
func (s Sources) Lines(ctx context.Context, stdin io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, path := range s.paths {
			if !readFile(ctx, path, yield) {
				return
			}
		}

		if s.stdin && stdin != nil {
			readLines(ctx, stdinSource, stdin, yield)
		}
	}
}

func readFile(ctx context.Context, path string, yield func(string, error) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		yield("", ErrReadInput.Wrap(err).With(slog.String("file", path)))

		return false
	}
	defer f.Close()

	return readLines(ctx, path, f, yield)
}

// maxLine is the longest identifier accepted from an input source.
const maxLine = 1 << 20

func readLines(
	ctx context.Context,
	name string,
	r io.Reader,
	yield func(string, error) bool,
) bool {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			yield("", err)

			return false
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !yield(line, nil) {
			return false
		}
	}

	if err := scanner.Err(); err != nil {
		yield("", ErrReadInput.Wrap(err).With(slog.String("file", name)))

		return false
	}

	return true
}

// WithSources returns ctx carrying the input sources named by --source.
func WithSources(ctx context.Context, src Sources) context.Context {
	return context.WithValue(ctx, sourcesKey{}, src)
}

func sourcesFrom(ctx context.Context) Sources {
	src, _ := ctx.Value(sourcesKey{}).(Sources)

	return src
}

// identifiers yields args if any are given, otherwise the lines of the
// sources in ctx, otherwise the lines of standard input.
func identifiers(ctx context.Context, args []string) iter.Seq2[string, error] {
	if len(args) > 0 {
		return func(yield func(string, error) bool) {
			for _, arg := range args {
				if !yield(arg, nil) {
					return
				}
			}
		}
	}

	src := sourcesFrom(ctx)
	if src.IsZero() {
		src = Sources{stdin: true}
	}

	return src.Lines(ctx, stdioFrom(ctx).in)
}

// parseAll parses every identifier yielded by [identifiers].
func parseAll(ctx context.Context, args []string) ([]request.Parsed, error) {
	var ps []request.Parsed

	for id, err := range identifiers(ctx, args) {
		if err != nil {
			return nil, err
		}

		ps = append(ps, request.Parsed{Identifier: id, Request: request.Parse(id)})
	}

	return ps, nil
}

// writeLine writes s and a newline to w.
func writeLine(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s+"\n"); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/modreq/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, so that errors reported while kong is still
// parsing are already formatted as requested.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Set timestamp format."            placeholder:"LAYOUT"`
	Caller     bool      `default:"false"                           help:"Include caller information."      negatable:""`
	Pretty     bool      `default:"true"                            help:"Colorize text log records."       negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the final logger configuration, including values resolved
// from configuration files.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before kong parses them, so that
// the logger is configured regardless of flag position. Boolean flags never
// reach an UnmarshalText method, so they are only handled here and in
// [logConfig.start].
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			return
		}

		name, value, assigned := strings.Cut(args[i], "=")

		var negated bool

		if n, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = n, true
		} else if n, ok := strings.CutPrefix(name, "--log-"); ok {
			name = n
		} else {
			continue
		}

		switch name {
		case "level", "format", "time-layout":
			if negated {
				continue
			}

			if !assigned {
				if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}

				i++
				value = args[i]
			}

			f.set(name, value)

		case "caller", "pretty":
			enable := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			f.set(name, strconv.FormatBool(enable != negated))
		}
	}
}

func (f *logConfig) set(name, value string) {
	switch name {
	case "level":
		_ = f.Level.UnmarshalText([]byte(value))

	case "format":
		_ = f.Format.UnmarshalText([]byte(value))

	case "time-layout":
		f.TimeLayout = value
		log.Config(log.WithTimeLayout(value))

	case "caller":
		f.Caller, _ = strconv.ParseBool(value)
		log.Config(log.WithCaller(f.Caller))

	case "pretty":
		f.Pretty, _ = strconv.ParseBool(value)
		log.Config(log.WithPretty(f.Pretty))
	}
}

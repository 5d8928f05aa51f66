package cli

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/ardnew/modreq/cli/cmd"
	"github.com/ardnew/modreq/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// Values of the --color flag.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// CLI is the top-level command-line interface for modreq.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Color   string           `default:"auto" enum:"auto,always,never" help:"Colorize output (${enum})."`
	Source  []string         `help:"Input source file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version and exit."           short:"V"`

	Parse   cmd.Parse   `cmd:"" default:"withargs" help:"Parse identifiers"`
	Filter  cmd.Filter  `cmd:""                    help:"Print identifiers matching an expression"`
	Compose cmd.Compose `cmd:""                    help:"Rewrite the loader chain of identifiers"`
	Repl    cmd.Repl    `cmd:""                    help:"Parse identifiers interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the modreq CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, as with --help or --version.
//
// Command output goes to the writer installed with [cmd.WithStdio], or
// os.Stdout.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	configFile := pkg.ConfigPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.VersionInfo(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports any parse error.
	cli.Log.scan(args)

	out := cmd.Output(ctx)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(out, os.Stderr),
		kong.ExplicitGroups(
			append([]kong.Group{cli.Log.group()}, cli.Pprof.groups()...),
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(baseConfig+".json")),
		kong.Configuration(loadYAML, configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	src, err := cmd.NewSources(cli.Source)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSources(ctx, src)
	ctx = cmd.WithColor(ctx, colorize(cli.Color, out))

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

// colorize reports whether output written to w should be styled, and sets
// the lipgloss color profile to agree.
func colorize(mode string, w io.Writer) bool {
	var enable bool

	switch mode {
	case colorAlways:
		enable = true

	case colorNever:
		enable = false

	default:
		f, ok := w.(interface{ Fd() uintptr })
		enable = ok && os.Getenv("NO_COLOR") == "" &&
			(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}

	switch {
	case !enable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case lipgloss.ColorProfile() == termenv.Ascii:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	return enable
}

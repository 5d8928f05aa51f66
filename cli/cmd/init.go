package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/modreq/log"
	"github.com/ardnew/modreq/pkg"
	"github.com/ardnew/modreq/profile"
)

// defaultConfigIndent is the indent width of generated configuration files.
const defaultConfigIndent = 2

// ignoreFlags are flag name prefixes never written to a configuration file.
var ignoreFlags = []string{"help", "version", "source", profile.Tag}

// Init writes the current global flag values to the configuration file.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.With(slog.String("reason", "no command context"))
	}

	path, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || path == "" {
		return ErrWriteConfig.With(slog.String("reason", "no configuration path"))
	}

	attr := slog.String("file", path)

	_, err = os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteConfig.With(attr).Wrap(ErrFileExists)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	data, err := yaml.MarshalContext(ctx, configValues(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), pkg.DirMode); err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file", attr)

	return nil
}

// configValues returns the values of the global flags of ktx keyed by flag
// name, omitting hidden flags, ignored flags, and empty values.
func configValues(ktx *kong.Context) yaml.MapSlice {
	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoreFlags, func(p string) bool {
			return strings.HasPrefix(flag.Name, p)
		}) {
			continue
		}

		v := configValue(ktx.FlagValue(flag))
		if v == nil {
			continue
		}

		values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
	}

	return values
}

// configValue converts a flag value to a YAML-encodable value, or nil if the
// value is empty.
func configValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case bool, int, int64, uint, uint64, float64:
		return v

	case interface{ String() string }:
		return configValue(v.String())

	default:
		return v
	}
}

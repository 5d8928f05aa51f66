package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] that reads YAML config files.
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Each flag is looked up by its name, then with hyphens replaced by
// underscores, then as a path through nested mappings split at any hyphen.
// These three files all set --log-level:
//
//	log-level: debug
//
//	log_level: debug
//
//	log:
//	  level: debug
//
// Command-line flags override config file values. An empty file is an empty
// configuration.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	return config(values), nil
}

// config implements [kong.Resolver] for a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := lookup(c, flag.Name)
	if !ok {
		return nil, nil
	}

	return flagValue(value), nil
}

func lookup(m map[string]any, name string) (any, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}

	if v, ok := m[strings.ReplaceAll(name, "-", "_")]; ok {
		return v, true
	}

	for i := range len(name) {
		if name[i] != '-' {
			continue
		}

		if sub, ok := m[name[:i]].(map[string]any); ok {
			if v, ok := lookup(sub, name[i+1:]); ok {
				return v, true
			}
		}
	}

	return nil, false
}

// flagValue converts a decoded YAML value to a form kong's mappers accept.
// Numbers are passed as strings for kong to parse into the flag's type.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = flagValue(e)
		}

		return out
	default:
		return v
	}
}

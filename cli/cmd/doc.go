// Package cmd implements the modreq subcommands.
//
// Each command is a struct parsed by kong with a Run(context.Context) error
// method. Commands read identifiers from their positional arguments, or,
// when none are given, one per line from the --source files or standard
// input. Values shared by all commands (the kong context, input sources,
// output writer, and color preference) travel in the context.
package cmd

const (
	// ConfigIdentifier is the kong variable holding the YAML configuration
	// file path.
	ConfigIdentifier = "config"

	// CacheIdentifier is the kong variable holding the cache directory path.
	CacheIdentifier = "cache"
)

// Package cli contains the command line interface for modreq.
//
// # Usage
//
// Identifiers given without a command are parsed:
//
//	modreq 'style-loader!css-loader?modules!./app.css'
//	modreq parse -o json -i 2 < identifiers.txt
//	modreq filter 'loader_count > 1' -s identifiers.txt
//	modreq compose -p raw-loader -x css-loader 'style-loader!css-loader!./a.css'
//	modreq repl
//
// # Configuration
//
// Flag defaults are read from config.json and then config.yaml in the user
// configuration directory (for example ~/.config/modreq). The YAML file
// accepts flat keys (log-level, log_level) or nested mappings:
//
//	color: never
//	log:
//	  level: debug
//	  format: json
//
// "modreq init" writes the current global flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, or a Go layout)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text records
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o modreq .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the user cache directory)
package cli

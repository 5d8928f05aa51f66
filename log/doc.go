// Package log is a small leveled logger built on [log/slog].
//
// A [Logger] is configured once with functional options and is immutable
// afterward; [Logger.Wrap] and [Logger.With] return modified copies.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("parsed", slog.String("identifier", id))
//
// # Levels
//
// In addition to the four [slog] levels, [LevelTrace] sits below
// [LevelDebug] and is printed as TRACE rather than DEBUG-4.
//
// # Formats
//
// [FormatJSON] writes one JSON object per record. [FormatText] writes
// key=value records; with [WithPretty] enabled (the default) they are
// rendered with lipgloss styles, colored only when the output is a terminal.
//
// # Package-level logger
//
// Functions such as [Info] and [ErrorContext] write through a package-level
// logger that [Config] reconfigures and [SetDefault] replaces.
package log

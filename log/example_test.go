package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/modreq/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("parsed", slog.String("identifier", "raw!./file"))
	logger.Debug("hidden")

	// Output:
	// level=INFO msg=parsed identifier=raw!./file
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout(""))

	logger.With(slog.String("command", "parse")).Warn("empty input")

	// Output:
	// {"level":"WARN","msg":"empty input","command":"parse"}
}

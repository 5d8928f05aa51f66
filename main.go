package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/modreq/cli"
	"github.com/ardnew/modreq/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Errors from the cli packages implement slog.LogValuer.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

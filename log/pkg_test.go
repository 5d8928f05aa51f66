package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_UsesDefaultLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace)))

	tests := []struct {
		name  string
		log   func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"TraceContext", func(msg string, attrs ...slog.Attr) {
			TraceContext(context.Background(), msg, attrs...)
		}, "TRACE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{`"msg":"message"`, `"level":"` + tt.level + `"`, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %s", out, want)
				}
			}
		})
	}
}

func TestConfig_UpdatesDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithFormat(FormatJSON)))
	Config(WithLevel(LevelError))

	Warn("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected warn to be filtered, got %q", buf.String())
	}

	With(slog.String("k", "v")).Error("shown")

	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("output %q missing attribute", buf.String())
	}
}

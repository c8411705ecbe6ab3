package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestComponentAttachedToRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "cache",
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("loaded", "expenses", 3)

	out := buf.String()
	if !strings.Contains(out, "component=cache") {
		t.Errorf("record missing component attribute: %s", out)
	}
	if !strings.Contains(out, "expenses=3") {
		t.Errorf("record missing caller attribute: %s", out)
	}
}

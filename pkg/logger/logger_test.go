package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopLoggerWith(t *testing.T) {
	l := NewNopLogger().With("runID", "abc")
	l.Info("discarded", "key", 1)
	if _, ok := l.(*ZapLogger); !ok {
		t.Fatalf("With returned %T, want *ZapLogger", l)
	}
}

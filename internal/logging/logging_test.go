package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/fizzbuzz/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := New(config.LoggingConfig{Level: "warn", Format: format})
		if err != nil {
			t.Fatalf("New(%s) error = %v", format, err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("New(%s) enabled info at warn level", format)
		}
		if !logger.Core().Enabled(zapcore.ErrorLevel) {
			t.Errorf("New(%s) disabled error at warn level", format)
		}
	}

	if _, err := New(config.LoggingConfig{Level: "loud", Format: "json"}); err == nil {
		t.Error("New() with invalid level should fail")
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, zapcore.InfoLevel)

	logger.Debug("hidden")
	logger.Info("generated", zap.Int("n", 15))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"generated"`) || !strings.Contains(out, `"n":15`) {
		t.Errorf("output = %s", out)
	}
}

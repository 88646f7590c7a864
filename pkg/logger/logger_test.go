package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonny/epsdash/pkg/config"
)

func newTestLogger(level string, buf *bytes.Buffer) *Logger {
	return NewWithWriter(&config.Config{
		Env:       "development",
		LogLevel:  level,
		LogFormat: "json",
	}, buf)
}

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Failed to parse log line %q: %v", line, err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newTestLogger(tt.level, &buf)
			if logger == nil {
				t.Fatal("Expected logger to be created")
			}

			if logger.Level() != tt.wantLevel {
				t.Errorf("Level() = %v, want %v", logger.Level(), tt.wantLevel)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger("debug", &buf)

	tests := []struct {
		name      string
		logFunc   func()
		wantMsg   string
		wantLevel string
	}{
		{"debug", func() { logger.Debug("debug message") }, "debug message", "debug"},
		{"info", func() { logger.Info("info message") }, "info message", "info"},
		{"warn", func() { logger.Warn("warn message") }, "warn message", "warn"},
		{"error", func() { logger.Error("error message") }, "error message", "error"},
		{"infof", func() { logger.Infof("loaded %d candidates", 30) }, "loaded 30 candidates", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()

			entry := decodeLine(t, strings.TrimSpace(buf.String()))
			if entry["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %v", entry["message"], tt.wantMsg)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", entry["level"], tt.wantLevel)
			}
			if entry["service"] != "epsdash" {
				t.Errorf("service = %v, want epsdash", entry["service"])
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger("warn", &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below warn, got %q", buf.String())
	}

	logger.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("Expected warn message to be written")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger("debug", &buf)

	logger.WithFields(map[string]interface{}{
		"date":   "2024-01-05",
		"ticker": "NVDA",
	}).WithField("rows", 30).Info("snapshot loaded")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["date"] != "2024-01-05" {
		t.Errorf("date = %v, want 2024-01-05", entry["date"])
	}
	if entry["ticker"] != "NVDA" {
		t.Errorf("ticker = %v, want NVDA", entry["ticker"])
	}
	if entry["rows"] != float64(30) {
		t.Errorf("rows = %v, want 30", entry["rows"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger("debug", &buf)

	logger.WithError(errors.New("upstream timeout")).Error("fetch failed")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["error"] != "upstream timeout" {
		t.Errorf("error = %v, want upstream timeout", entry["error"])
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Info("nothing")
	logger.WithField("k", "v").Error("still nothing")
}

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gatherhq/gather/internal/errors"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := New(Config{
		Level:  level,
		Format: format,
		Output: NewOutput(buf),
	})
	return logger, buf
}

func TestLoggerLevels(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.Debug("debug message")
	if buf.Len() != 0 {
		t.Errorf("debug message should be suppressed at info level, got: %s", buf.String())
	}

	logger.Info("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("info message should be logged, got: %s", buf.String())
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.Info("request complete", "status", 200)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON output: %v", err)
	}

	if entry["msg"] != "request complete" {
		t.Errorf("unexpected msg field: %v", entry["msg"])
	}

	if entry["status"] != float64(200) {
		t.Errorf("unexpected status field: %v", entry["status"])
	}
}

func TestWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	err := errors.New(errors.ErrCodeAuthRequired, "please log in again").
		WithSuggestion("Run 'gather login'")
	logger.WithError(err).Info("request rejected")

	out := buf.String()
	if !strings.Contains(out, "AUTH-001") {
		t.Errorf("log entry should contain the error code, got: %s", out)
	}
	if !strings.Contains(out, "please log in again") {
		t.Errorf("log entry should contain the error message, got: %s", out)
	}
}

func TestWithErrorPlain(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.WithError(fmt.Errorf("connection refused")).Warn("fetch failed")

	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("log entry should contain the plain error, got: %s", buf.String())
	}
}

func TestLogError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	cause := fmt.Errorf("dial tcp: connection refused")
	logger.LogError(errors.Wrap(errors.ErrCodeAPIUnreachable, "backend unreachable", cause))

	out := buf.String()
	if !strings.Contains(out, "API-001") {
		t.Errorf("expected error code in output, got: %s", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Errorf("expected cause in output, got: %s", out)
	}

	// nil is a no-op
	buf.Reset()
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) should log nothing, got: %s", buf.String())
	}
}

func TestEnabled(t *testing.T) {
	logger, _ := newBufferLogger(LevelWarn, FormatText)
	ctx := context.Background()

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("debug should not be enabled at warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	logger, _ := newBufferLogger(LevelDebug, FormatText)
	SetDefaultLogger(logger)

	if DefaultLogger() != logger {
		t.Error("DefaultLogger should return the configured logger")
	}
}

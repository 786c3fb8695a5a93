package logger

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestLevelFor(t *testing.T) {
	if LevelFor(false) != LevelWarn {
		t.Errorf("LevelFor(false) should be LevelWarn, got %v", LevelFor(false))
	}
	if LevelFor(true) != LevelDebug {
		t.Errorf("LevelFor(true) should be LevelDebug, got %v", LevelFor(true))
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.level.String() != tt.expected {
				t.Errorf("Level(%d).String() = %v, want %v", tt.level, tt.level.String(), tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelWarn},
		{"", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	type logFunc func(*zap.Logger, string)
	debug := func(l *zap.Logger, m string) { l.Debug(m) }
	info := func(l *zap.Logger, m string) { l.Info(m) }
	warn := func(l *zap.Logger, m string) { l.Warn(m) }
	errorf := func(l *zap.Logger, m string) { l.Error(m) }

	tests := []struct {
		name       string
		level      Level
		logFunc    logFunc
		shouldShow bool
	}{
		{"debug at debug level", LevelDebug, debug, true},
		{"info at debug level", LevelDebug, info, true},
		{"warn at debug level", LevelDebug, warn, true},
		{"error at debug level", LevelDebug, errorf, true},
		{"debug at info level", LevelInfo, debug, false},
		{"info at info level", LevelInfo, info, true},
		{"debug at warn level", LevelWarn, debug, false},
		{"info at warn level", LevelWarn, info, false},
		{"warn at warn level", LevelWarn, warn, true},
		{"error at warn level", LevelWarn, errorf, true},
		{"debug at error level", LevelError, debug, false},
		{"warn at error level", LevelError, warn, false},
		{"error at error level", LevelError, errorf, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithLevel(&buf, tt.level)

			tt.logFunc(log, "test message")

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldShow {
				t.Errorf("got output=%v, want output=%v", hasOutput, tt.shouldShow)
			}
		})
	}
}

func TestLogFormatting(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug("rendered vhost", zap.String("site", "a.test"), zap.Int("bytes", 42))
	output := buf.String()

	if !strings.Contains(output, "DEBUG") {
		t.Errorf("Missing DEBUG level: %s", output)
	}
	if !strings.Contains(output, "rendered vhost") {
		t.Errorf("Missing message: %s", output)
	}
	if !strings.Contains(output, `"site": "a.test"`) {
		t.Errorf("Missing site field: %s", output)
	}
	if !strings.Contains(output, `"bytes": 42`) {
		t.Errorf("Missing bytes field: %s", output)
	}
}

func TestNonVerboseHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger should hide debug/info, got %q", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("warn should be shown: %q", buf.String())
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithLevel(&buf, LevelError)

	LogError(log, nil, "should not log")
	if buf.Len() > 0 {
		t.Error("LogError with nil should not produce output")
	}

	LogError(nil, fmt.Errorf("ignored"), "nil logger")

	testErr := fmt.Errorf("test error")
	LogError(log, testErr, "operation failed")
	output := buf.String()
	if !strings.Contains(output, "ERROR") {
		t.Errorf("LogError should produce ERROR level: %s", output)
	}
	if !strings.Contains(output, "operation failed") {
		t.Errorf("LogError should contain message: %s", output)
	}
	if !strings.Contains(output, "test error") {
		t.Errorf("LogError should contain error: %s", output)
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log.Debug("goroutine", zap.Int("n", n))
			log.Info("info", zap.Int("n", n))
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 200 {
		t.Errorf("Expected 200 log lines, got %d", len(lines))
	}

	for i, line := range lines {
		if !strings.Contains(line, "DEBUG") && !strings.Contains(line, "INFO") {
			t.Errorf("Line %d may be corrupted: %s", i, line)
		}
	}
}

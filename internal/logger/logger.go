// Package logger builds the diagnostic loggers used by the vhost CLI tool.
//
// Diagnostics go to stderr through go.uber.org/zap, separate from the
// user-facing outcome lines that the output package prints on stdout. Loggers
// are values: every component receives the *zap.Logger it should use instead
// of reaching for a process-wide instance, so tests can pass zap.NewNop() or
// an observer core.
//
// # Log Levels
//
// Four levels are used, in order of severity:
//   - Debug: Detailed information for debugging
//   - Info: General operational information
//   - Warn: Warning conditions that don't prevent operation
//   - Error: Error conditions that affect operation
//
// By default (verbose=false), only Warn and Error messages are shown.
// When verbose=true, all levels including Debug and Info are shown.
//
// # Usage
//
//	log := logger.New(os.Stderr, verbose)
//	defer func() { _ = log.Sync() }()
//
//	log.Debug("loading config", zap.String("path", path))
//	log.Warn("unknown server reference", zap.String("site", name))
//
// # Output Format
//
// Log lines use zap's console encoder:
//
//	2026-02-03 10:30:45	DEBUG	loading config	{"path": "/home/u/.config/vhost/config.yaml"}
package logger

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// zapLevel maps a Level onto the zap level it enables.
func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level.
// Unknown names map to LevelWarn.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "ERROR":
		return LevelError
	default:
		return LevelWarn
	}
}

// LevelFor returns the minimum level for the given verbosity.
func LevelFor(verbose bool) Level {
	if verbose {
		return LevelDebug
	}
	return LevelWarn
}

// New creates a logger writing to w. When verbose is true, Debug and Info
// levels are enabled; otherwise only Warn and Error are shown.
func New(w io.Writer, verbose bool) *zap.Logger {
	return NewWithLevel(w, LevelFor(verbose))
}

// NewWithLevel creates a logger writing to w with the given minimum level.
func NewWithLevel(w io.Writer, level Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level.zapLevel(),
	)
	return zap.New(core)
}

// LogError logs err at error level with an additional context message.
// A nil error is ignored.
func LogError(log *zap.Logger, err error, msg string) {
	if err == nil || log == nil {
		return
	}
	log.Error(msg, zap.Error(err))
}

package calculation

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

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

// StdLogger writes leveled lines through a standard library log.Logger.
// Messages below Min are dropped.
type StdLogger struct {
	Min Level
	out *log.Logger
}

// NewStdLogger creates a StdLogger writing to w.
func NewStdLogger(w io.Writer, min Level) *StdLogger {
	return &StdLogger{Min: min, out: log.New(w, "", log.LstdFlags)}
}

func (s *StdLogger) logf(level Level, format string, args ...any) {
	if level < s.Min {
		return
	}
	s.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (s *StdLogger) Debugf(format string, args ...any) { s.logf(LevelDebug, format, args...) }
func (s *StdLogger) Infof(format string, args ...any)  { s.logf(LevelInfo, format, args...) }
func (s *StdLogger) Warnf(format string, args ...any)  { s.logf(LevelWarn, format, args...) }
func (s *StdLogger) Errorf(format string, args ...any) { s.logf(LevelError, format, args...) }

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/term"
)

// Format represents the log output format
type Format int

const (
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// ParseFormat parses console, json or auto. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "console":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, goerr.New("invalid log format", goerr.V("format", s))
	}
}

// NewLoggerWithFormat creates a new slog.Logger with specified format.
// FormatAuto picks clog console output on a terminal and JSON otherwise.
// Nil w writes to stderr, leaving stdout to reports.
func NewLoggerWithFormat(level slog.Level, w io.Writer, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	if format == FormatAuto {
		format = FormatJSON
		if IsTerminal(w) {
			format = FormatConsole
		}
	}

	var handler slog.Handler
	switch format {
	case FormatConsole:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ParseLogLevel parses a string log level to slog.Level
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "info", "INFO", "":
		return slog.LevelInfo
	case "warn", "warning", "WARN", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

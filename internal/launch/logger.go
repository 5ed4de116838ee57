package launch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/warpnine/wezlix/internal/system"
)

// Logger wraps slog.Logger with wezlix-specific configuration.
type Logger struct {
	*slog.Logger
}

// NewLoggerTo creates a logger writing to stderr, or to the destination named
// by WEZLIX_LOG_DEST ("file:<path>" or "both:<path>").
func NewLoggerTo(stderr io.Writer, debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var writers []io.Writer
	logDest := system.GetString(system.EnvLogDest, "")

	switch {
	case strings.HasPrefix(logDest, "file:"):
		logPath := strings.TrimPrefix(logDest, "file:")
		if f, err := openLog(logPath); err == nil {
			writers = append(writers, f)
		} else {
			fmt.Fprintf(stderr, "wezlix: failed to open log file %s: %v\n", logPath, err)
			writers = append(writers, stderr)
		}
	case strings.HasPrefix(logDest, "both:"):
		logPath := strings.TrimPrefix(logDest, "both:")
		writers = append(writers, stderr)
		if f, err := openLog(logPath); err == nil {
			writers = append(writers, f)
		} else {
			fmt.Fprintf(stderr, "wezlix: failed to open log file %s: %v\n", logPath, err)
		}
	default:
		writers = append(writers, stderr)
	}

	output := writers[0]
	if len(writers) > 1 {
		output = io.MultiWriter(writers...)
	}

	var handler slog.Handler
	if system.GetBool(system.EnvLogJSON) {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		showTime := system.GetBool(system.EnvLogTime)
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && !showTime && len(groups) == 0 {
					return slog.Attr{}
				}
				return a
			},
		})
	}

	return &Logger{Logger: slog.New(handler).With("component", "wezlix")}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func openLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

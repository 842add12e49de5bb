// Package logger builds the structured logger from configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level, destination and encoding of log output.
type Options struct {
	Level   string // debug, info, warn, error; empty means warn.
	Logfile string // append to this file instead of the default writer.
	Format  string // text or json; empty means text.
}

// New returns a logger writing to w unless opts names a log file. Options
// that cannot be honored fall back to their defaults and the problem is
// logged as a warning on the resulting logger.
func New(opts Options, w io.Writer) *slog.Logger {
	var problems []any

	var handlerOpts slog.HandlerOptions
	switch strings.ToLower(opts.Level) {
	case "debug":
		handlerOpts.Level = slog.LevelDebug
	case "info":
		handlerOpts.Level = slog.LevelInfo
	case "", "warn":
		handlerOpts.Level = slog.LevelWarn
	case "error":
		handlerOpts.Level = slog.LevelError
	default:
		handlerOpts.Level = slog.LevelWarn
		problems = append(problems, "could not parse logger level", opts.Level)
	}

	output := w
	switch opts.Logfile {
	case "":
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(opts.Logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			problems = append(problems, "could not open logger output", err.Error())
		} else {
			output = f
		}
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &handlerOpts)
	case "", "text":
		handler = slog.NewTextHandler(output, &handlerOpts)
	default:
		handler = slog.NewTextHandler(output, &handlerOpts)
		problems = append(problems, "could not parse logger format", opts.Format)
	}

	logger := slog.New(handler)
	for i := 0; i+1 < len(problems); i += 2 {
		logger.Warn(problems[i].(string), "value", problems[i+1])
	}
	return logger
}

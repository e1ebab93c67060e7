package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level  string // debug, info, warn or error
	File   string // empty or "-" for stderr
	Format string // text or json
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(strings.TrimSpace(option)) {
	case "":
		return slog.LevelWarn, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New builds a logger from options. Options that cannot be honoured fall back
// to their defaults and the returned logger warns about them.
//
// The returned closer releases the log file, if one was opened.
func New(options Options) (*slog.Logger, io.Closer) {
	lvl, ok := level(options.Level)
	if !ok {
		bad := options.Level
		options.Level = ""
		logger, closer := New(options)
		logger.Warn("could not parse logger level", slog.String("level", bad))
		return logger, closer
	}
	opts := slog.HandlerOptions{Level: lvl}

	var (
		output io.Writer
		closer io.Closer = nopCloser{}
	)
	switch options.File {
	case "", "-":
		output = os.Stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler), closer
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			logger, closer := New(options)
			logger.Warn("could not open logger file", slog.String("error", err.Error()))
			return logger, closer
		}
		output, closer = f, f
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts)), closer
	case "", "text":
		return slog.New(slog.NewTextHandler(output, &opts)), closer
	default:
		options.Format = "text"
		_ = closer.Close()
		logger, closer := New(options)
		logger.Warn("could not parse logger format")
		return logger, closer
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

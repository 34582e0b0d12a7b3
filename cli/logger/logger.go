package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error"`
	LogFile   string `doc:"append logs to file"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
}

// New returns a [slog.Logger] configured by options whose records carry
// the service name and version.
// Invalid options are reset to their default and each one is reported by a warning.
func New(options *Options, service, version string) *slog.Logger {
	type warning struct {
		msg  string
		attr slog.Attr
	}
	var warnings []warning
	handler := options.handler(func(msg string, attr slog.Attr) {
		warnings = append(warnings, warning{msg, attr})
	})

	logger := slog.New(handler).With("service", service, "version", version)
	for _, w := range warnings {
		logger.LogAttrs(context.Background(), slog.LevelWarn, w.msg, w.attr)
	}
	return logger
}

func (o *Options) handler(warn func(string, slog.Attr)) slog.Handler {
	var level slog.Leveler
	switch strings.ToLower(o.LogLevel) {
	case "":
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		warn("could not parse logger level", slog.String("option", o.LogLevel))
		o.LogLevel = ""
	}

	format := strings.ToLower(o.LogFormat)
	switch format {
	case "json", "text", "":
	default:
		warn("could not parse logger format", slog.String("option", o.LogFormat))
		o.LogFormat = "text"
		format = "text"
	}

	var output io.Writer
	switch o.LogFile {
	case "", "-":
		output = os.Stdout
	case os.DevNull:
		return slog.DiscardHandler
	default:
		f, err := os.OpenFile(o.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			warn("could not open logger file", slog.Any("err", err))
			o.LogFile = ""
			output = os.Stdout
		} else {
			output = f
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(output, opts)
	}
	return slog.NewTextHandler(output, opts)
}

package logger

import (
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options struct {
	Output io.Writer
	Level  Level
	Type   Type
}

// DefaultLogger writes to stderr so log lines never interleave with whatever
// the host application does with stdout.
var DefaultLogger = New(Options{os.Stderr, DefaultLevel, TypeText})

type logger struct {
	*slog.Logger
}

func New(opts Options) Logger {
	var handler slog.Handler
	switch opts.Type {
	case TypeJSON:
		handler = slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	case TypeText:
		fallthrough
	default:
		handler = slog.NewTextHandler(opts.Output, &slog.HandlerOptions{
			Level: levels[opts.Level],
		})
	}
	return &logger{
		Logger: slog.New(handler),
	}
}

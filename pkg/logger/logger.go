package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Option configures the logger factory.
type Option func(*options)

type options struct {
	writer      io.Writer
	level       slog.Level
	sentryDSN   string
	environment string
}

func defaultOptions() *options {
	return &options{
		writer:      os.Stderr,
		level:       slog.LevelInfo,
		environment: "production",
	}
}

// WithLevel sets the minimum log level.
// Default: Info.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithWriter sets the log destination.
// Default: stderr, keeping stdout free for command output.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithSentry forwards warnings and errors to Sentry in addition to the
// local writer. An empty DSN leaves Sentry disabled.
func WithSentry(dsn, environment string) Option {
	return func(o *options) {
		o.sentryDSN = dsn
		if environment != "" {
			o.environment = environment
		}
	}
}

// New creates a JSON slog logger. When a Sentry DSN is configured the
// logger fans out to Sentry as well; if Sentry fails to initialize the
// local logger is returned and the failure is reported through it
// rather than aborting the client.
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	local := slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})
	if o.sentryDSN == "" {
		return slog.New(local)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         o.sentryDSN,
		Environment: o.environment,
		EnableLogs:  true,
	}); err != nil {
		log := slog.New(local)
		log.Error("failed to initialize sentry", slog.Any("error", err))
		return log
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(teeHandler{local: local, mirror: sentryHandler})
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(nopHandler{})
}

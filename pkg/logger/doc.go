// Package logger builds the slog loggers used across the client: JSON
// output to stderr by default, with optional fan-out to Sentry when a
// DSN is configured.
package logger

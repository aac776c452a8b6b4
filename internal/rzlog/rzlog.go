// Package rzlog provides the small slog-based contextual logging helper used
// to report the errors, including recovered panics, of functions run by
// rendezvous.Async and rendezvous.AsyncWithError. It has no process-wide configuration surface of its own; it
// only decorates whatever *slog.Logger is already installed as the default.
package rzlog

import (
	"context"
	"log/slog"

	"go.uber.org/atomic"
)

// contextKey is an unexported type used for storing values in context.Context,
// so keys here can never collide with another package's context keys.
type contextKey string

const loggerValuesKey contextKey = "loggerValues"

// subsystem is the default subsystem name attached to every log line emitted
// through Get. Override with SetSubsystem; callers that never call it get an
// unlabeled logger. It is an atomic.Value rather than a plain string so Get
// and SetSubsystem can run concurrently from different goroutines.
var subsystem atomic.Value //nolint:gochecknoglobals

// SetSubsystem sets the subsystem attribute attached to every log line.
func SetSubsystem(name string) {
	subsystem.Store(name)
}

// getRealContext extracts the first non-nil context from a variadic list,
// falling back to context.Background(). This lets Get be called as either
// Get() or Get(ctx).
func getRealContext(ctx ...context.Context) context.Context {
	for _, c := range ctx {
		if c != nil {
			return c
		}
	}

	return context.Background()
}

// With returns a new context carrying additional key-value pairs that will
// be attached to every logger subsequently obtained via Get(ctx).
func With(ctx context.Context, values ...any) context.Context {
	if len(values) == 0 && ctx != nil {
		return ctx
	}

	return context.WithValue(ctx, loggerValuesKey, append(getValues(ctx), values...))
}

func getValues(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	vals, ok := ctx.Value(loggerValuesKey).([]any)
	if !ok {
		return nil
	}

	return vals
}

// Get returns a logger built from the default slog logger, decorated with
// the configured subsystem name and any key-value pairs attached via With.
func Get(ctx ...context.Context) *slog.Logger {
	realCtx := getRealContext(ctx...)

	logger := slog.Default()
	if name, ok := subsystem.Load().(string); ok && name != "" {
		logger = logger.With("subsystem", name)
	}

	if vals := getValues(realCtx); vals != nil {
		logger = logger.With(vals...)
	}

	return logger
}

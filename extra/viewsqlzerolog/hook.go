// Package viewsqlzerolog logs viewsql.Compiler calls through zerolog.
package viewsqlzerolog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pivotdb/viewsql"
)

var _ viewsql.CompileHook = (*CompileHook)(nil)

// Option configures a CompileHook.
type Option func(*CompileHook)

// WithLogger sets the *zerolog.Logger instance used instead of the
// context/global logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(h *CompileHook) { h.logger = logger }
}

// WithCompileLogLevel sets the log level for ordinary compiles.
func WithCompileLogLevel(level zerolog.Level) Option {
	return func(h *CompileHook) { h.compileLogLevel = level }
}

// WithSlowCompileLogLevel sets the log level for compiles at or above
// the slow-compile threshold.
func WithSlowCompileLogLevel(level zerolog.Level) Option {
	return func(h *CompileHook) { h.slowCompileLogLevel = level }
}

// WithErrorCompileLogLevel sets the log level for compiles that
// returned an error.
func WithErrorCompileLogLevel(level zerolog.Level) Option {
	return func(h *CompileHook) { h.errorLogLevel = level }
}

// WithSlowCompileThreshold sets the duration at or above which a
// compile is logged at the slow level instead of the ordinary level.
func WithSlowCompileThreshold(threshold time.Duration) Option {
	return func(h *CompileHook) { h.slowCompileThreshold = threshold }
}

// LogFormatFn builds the zerolog event for a finished compile.
type LogFormatFn func(ctx context.Context, event *viewsql.CompileEvent, zeroevent *zerolog.Event) *zerolog.Event

// WithLogFormat overrides the default field set written per compile.
func WithLogFormat(f LogFormatFn) Option {
	return func(h *CompileHook) { h.logFormat = f }
}

// CompileHook is a viewsql.CompileHook that logs every compile through
// zerolog. The zero value is unusable; construct one with NewCompileHook.
type CompileHook struct {
	logger               *zerolog.Logger
	compileLogLevel      zerolog.Level
	slowCompileLogLevel  zerolog.Level
	errorLogLevel        zerolog.Level
	slowCompileThreshold time.Duration
	logFormat            LogFormatFn
	now                  func() time.Time
}

// NewCompileHook builds a CompileHook from opts.
func NewCompileHook(opts ...Option) *CompileHook {
	h := &CompileHook{
		compileLogLevel:     zerolog.DebugLevel,
		slowCompileLogLevel: zerolog.WarnLevel,
		errorLogLevel:       zerolog.ErrorLevel,
		now:                 time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.logFormat == nil {
		h.logFormat = func(ctx context.Context, event *viewsql.CompileEvent, zeroevent *zerolog.Event) *zerolog.Event {
			duration := h.now().Sub(event.StartTime)
			return zeroevent.
				Ctx(ctx).
				Err(event.Err).
				Str("query", event.Query).
				Str("operation", event.Operation).
				Str("table", event.Table).
				Str("view", event.View).
				Str("duration", duration.String())
		}
	}

	return h
}

// BeforeCompile returns ctx unmodified; there is nothing to log yet.
func (h *CompileHook) BeforeCompile(ctx context.Context, event *viewsql.CompileEvent) context.Context {
	return ctx
}

// AfterCompile logs event at a level chosen by whether it errored or
// ran past the slow-compile threshold.
func (h *CompileHook) AfterCompile(ctx context.Context, event *viewsql.CompileEvent) {
	level := h.compileLogLevel
	duration := h.now().Sub(event.StartTime)
	if h.slowCompileThreshold > 0 && h.slowCompileThreshold <= duration {
		level = h.slowCompileLogLevel
	}

	if event.Err != nil {
		level = h.errorLogLevel
	}

	l := h.logger
	if l == nil {
		l = log.Ctx(ctx)
	}

	h.logFormat(ctx, event, l.WithLevel(level)).Send()
}

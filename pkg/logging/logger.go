// Package logging provides structured JSON logging for the moonstrike
// binaries and simulation. Lines carry the session they belong to and, for
// batch runs, the run that started them.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/google/uuid"
)

// LevelEnvVar names the environment variable that selects the log level
const LevelEnvVar = "MOONSTRIKE_LOG_LEVEL"

// floatPrecision is the number of decimals kept for float attributes
const floatPrecision = 4

// Logger is a slog.Logger whose level methods take a context
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON Logger on stdout. The level comes from
// MOONSTRIKE_LOG_LEVEL and defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter creates a JSON Logger writing to w. The terminal client
// uses it to keep log output off the screen it draws on.
func NewLoggerWithWriter(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       levelFromEnv(),
		ReplaceAttr: roundFloats,
	})
	return &Logger{slog.New(handler)}
}

// NewDiscardLogger returns a Logger that drops everything
func NewDiscardLogger() *Logger {
	return &Logger{slog.New(slog.DiscardHandler)}
}

// WithSession returns a child logger that stamps every line with sessionID
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{l.Logger.With("session_id", sessionID)}
}

func (l *Logger) emit(ctx context.Context, level slog.Level, msg string, args ...any) {
	if id := runID(ctx); id != "" {
		args = append(args, "run_id", id)
	}
	l.Log(ctx, level, msg, args...)
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, slog.LevelWarn, msg, args...)
}

// Error logs msg at error level with err's text under "error"
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.emit(ctx, slog.LevelError, msg, args...)
}

type runIDKey struct{}

// WithRunID tags ctx with a batch run ID; an empty id gets a fresh one.
// Every line logged with the returned context carries it as "run_id".
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewID()
	}
	return context.WithValue(ctx, runIDKey{}, id)
}

func runID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// NewID returns a random (v4) UUID string for sessions and runs
func NewID() string {
	return uuid.NewString()
}

// levelFromEnv parses LevelEnvVar. WARNING is accepted for WARN; anything
// unparsable falls back to INFO.
func levelFromEnv() slog.Level {
	name := strings.ToUpper(strings.TrimSpace(os.Getenv(LevelEnvVar)))
	if name == "WARNING" {
		name = "WARN"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// roundFloats trims float attributes (positions, distances, timers) to
// floatPrecision decimals.
func roundFloats(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return a
	}
	scale := math.Pow(10, floatPrecision)
	return slog.Float64(a.Key, math.Round(f*scale)/scale)
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return fmt.Errorf("%s: %w", format, err)
}

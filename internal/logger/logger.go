package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

const (
	envLevel    = "KEYOP_LOG_LEVEL"
	envFormat   = "KEYOP_LOG_FORMAT"
	envTestMode = "KEYOP_TEST_MODE"

	formatJSON   = "json"
	componentKey = "component"
	errorKey     = "error"
)

var current atomic.Pointer[slog.Logger]

// Scoped tags every record with the component that emitted it. It resolves
// the logger on each call, so Reload applies to scoped loggers too.
type Scoped struct {
	name string
}

func init() {
	Reload()
}

// Reload rebuilds the logger from KEYOP_LOG_LEVEL, KEYOP_LOG_FORMAT and
// KEYOP_TEST_MODE. Test mode discards every record.
func Reload() {
	if isTestMode() {
		install(io.Discard)
		return
	}

	install(os.Stderr)
}

// SetOutput sends records to writer regardless of test mode.
func SetOutput(writer io.Writer) {
	install(writer)
}

func install(writer io.Writer) {
	options := &slog.HandlerOptions{Level: levelFromEnv()}

	var handler slog.Handler = slog.NewTextHandler(writer, options)

	if strings.EqualFold(os.Getenv(envFormat), formatJSON) {
		handler = slog.NewJSONHandler(writer, options)
	}

	current.Store(slog.New(handler))
}

// levelFromEnv accepts any name slog understands ("debug", "WARN+2").
func levelFromEnv() slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(os.Getenv(envLevel))); noError(err) {
		return level
	}

	if isTestMode() {
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Component(name string) Scoped {
	return Scoped{name: name}
}

func (scoped Scoped) Debug(msg string, args ...any) {
	current.Load().Debug(msg, scoped.tag(args)...)
}

func (scoped Scoped) Info(msg string, args ...any) {
	current.Load().Info(msg, scoped.tag(args)...)
}

func (scoped Scoped) Warn(msg string, args ...any) {
	current.Load().Warn(msg, scoped.tag(args)...)
}

func (scoped Scoped) Error(msg string, args ...any) {
	current.Load().Error(msg, scoped.tag(args)...)
}

func (scoped Scoped) tag(args []any) []any {
	return append([]any{componentKey, scoped.name}, args...)
}

// Err is the attribute every component uses to attach an error.
func Err(err error) slog.Attr {
	return slog.Any(errorKey, err)
}

func Info(msg string, args ...any) {
	current.Load().Info(msg, args...)
}

func Debug(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	current.Load().Error(msg, args...)
}

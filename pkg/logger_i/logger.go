package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/akolanti/DocChat/internal/config"
)

// Logger resolves slog.Default() on every call, so loggers created at package
// init still follow the handler installed later by Init.
type Logger struct {
	section string
	attrs   []any
}

// Init installs the process-wide handler. Production gets JSON at info level,
// everything else gets text at debug level.
func Init(isProd bool) {
	InitWithWriter(os.Stdout, isProd)
}

func InitWithWriter(w io.Writer, isProd bool) {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var handler slog.Handler
	if isProd {
		options.Level = config.LOG_LEVEL_PROD
		handler = slog.NewJSONHandler(w, options)

	} else {
		handler = slog.NewTextHandler(w, options)

	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(section string) *Logger {
	return &Logger{section: section}
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// log checks the level before any attribute is copied.
func (l *Logger) log(level slog.Level, msg string, args ...any) {
	base := slog.Default()
	if !base.Enabled(context.Background(), level) {
		return
	}
	attrs := make([]any, 0, 2+len(l.attrs)+len(args))
	attrs = append(attrs, "component", l.section)
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, args...)
	base.Log(context.Background(), level, msg, attrs...)
}

func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, args...)
	return &Logger{section: l.section, attrs: attrs}
}

// WithTrace attaches the trace id carried by ctx, if any.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With("traceId", trace)
	}
	return l
}

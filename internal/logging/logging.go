package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

var WithVerbose = false
var WithDebug = false

const VerboseLevel slog.Level = 650

var (
	mutex         sync.Mutex
	output        io.Writer = os.Stderr
	outputHandler slog.Handler
	defaultLevel            = slog.InfoLevel
)

func init() {
	slog.LevelNames[VerboseLevel] = "VERBOSE"
	slog.AllLevels = slog.Levels{
		slog.PanicLevel,
		slog.FatalLevel,
		slog.ErrorLevel,
		slog.WarnLevel,
		slog.NoticeLevel,
		slog.InfoLevel,
		VerboseLevel,
		slog.DebugLevel,
		slog.TraceLevel,
	}
	slog.ColorTheme[VerboseLevel] = color.FgLightGreen
}

// SetOutput redirects the output of loggers created afterwards.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	output = w
	outputHandler = nil
}

// SetLevel sets the level of loggers created afterwards.
func SetLevel(level slog.Level) {
	mutex.Lock()
	defer mutex.Unlock()
	defaultLevel = level
}

func currentHandler() slog.Handler {
	mutex.Lock()
	defer mutex.Unlock()
	if outputHandler == nil {
		h := handler.NewIOWriterHandler(output, slog.AllLevels)
		h.TextFormatter().SetTemplate("[{{datetime}}] [{{level}}] {{message}}\n")
		outputHandler = h
	}
	return outputHandler
}

type Logger struct {
	slogger *slog.Logger
	level   slog.Level
	name    string
}

func NewLogger(name string) *Logger {
	mutex.Lock()
	level := defaultLevel
	mutex.Unlock()

	h := currentHandler()
	slogger := slog.NewWithName(name, func(l *slog.Logger) {
		l.CallerSkip = l.CallerSkip + 2
		l.AddHandler(h)
	})
	return &Logger{
		slogger: slogger,
		level:   level,
		name:    name,
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logf(slog.DebugLevel, format, args)
}

func (l *Logger) Verbosef(format string, args ...any) {
	l.logf(VerboseLevel, format, args)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logf(slog.InfoLevel, format, args)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logf(slog.WarnLevel, format, args)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logf(slog.ErrorLevel, format, args)
}

func (l *Logger) enabled(level slog.Level) bool {
	switch level {
	case slog.DebugLevel:
		return WithDebug || l.level >= level
	case VerboseLevel:
		return WithVerbose || WithDebug || l.level >= level
	}
	return l.level >= level
}

func (l *Logger) logf(level slog.Level, format string, args []any) {
	if l.enabled(level) {
		format = strings.TrimSuffix(format, "\n")
		l.slogger.Logf(level, fmt.Sprintf("[%s] %s", l.name, format), args...)
	}
}

func Name2Level(ln string) slog.Level {
	switch strings.ToLower(ln) {
	case "err", "error":
		return slog.ErrorLevel
	case "warn", "warning":
		return slog.WarnLevel
	case "verbose":
		return VerboseLevel
	case "debug":
		return slog.DebugLevel
	default:
		return slog.InfoLevel
	}
}

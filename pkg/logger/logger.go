package logger

import (
	"io"
	"os"
	"strings"

	charm "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/schema"
)

// ErrInvalidLogLevel indicates an unsupported log level string.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Logger wraps a charm logger and adds the Trace level. There is no package
// default: commands construct one and pass it down.
type Logger struct {
	*charm.Logger
}

// New creates a Logger writing to w at Info level.
func New(w io.Writer) *Logger {
	l := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	l.SetStyles(logStyles())
	return &Logger{Logger: l}
}

// NewFromConfig builds a Logger from the logs settings: level parsed with
// ParseLogLevel and the sink resolved from the file path. Standard device
// paths map to the process streams; anything else is opened for append.
func NewFromConfig(cfg *schema.TerraforgeConfiguration) (*Logger, error) {
	if cfg == nil {
		return nil, errUtils.ErrNilConfiguration
	}

	level, err := ParseLogLevel(cfg.Logs.Level)
	if err != nil {
		return nil, err
	}

	w, err := resolveWriter(cfg.Logs.File)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("file", cfg.Logs.File).
			Err()
	}

	l := New(w)
	l.SetLevel(level.CharmLevel())
	return l, nil
}

// resolveWriter maps a configured log file path to an io.Writer.
func resolveWriter(file string) (io.Writer, error) {
	switch file {
	case "", "/dev/stderr":
		return os.Stderr, nil
	case "/dev/stdout":
		return os.Stdout, nil
	case "/dev/null":
		return io.Discard, nil
	default:
		return os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	}
}

// ParseLogLevel converts a level string from configuration or flags.
// The empty string defaults to Info. Matching is case-sensitive.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch LogLevel(logLevel) {
	case LogLevelOff, LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning:
		return LogLevel(logLevel), nil
	default:
		return "", errUtils.Build(ErrInvalidLogLevel).
			WithHint("Supported log levels are Trace, Debug, Info, Warning, Off").
			WithContext("level", logLevel).
			Err()
	}
}

// Trace logs at the custom trace level with key-value pairs.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Logger.Log(TraceLevel, msg, keyvals...)
}

// Tracef logs a formatted message at the custom trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Logger.Logf(TraceLevel, format, args...)
}

// GetLevelString returns the current level as a lowercase string.
func (l *Logger) GetLevelString() string {
	if l.GetLevel() == TraceLevel {
		return "trace"
	}
	return strings.ToLower(l.GetLevel().String())
}

// logStyles extends the charm defaults with a label for the trace level and
// highlighted keys for the fields the pipeline logs most.
func logStyles() *charm.Styles {
	styles := charm.DefaultStyles()

	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Bold(true).
		Foreground(lipgloss.Color("63"))

	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Keys["file"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styles.Keys["template"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	return styles
}

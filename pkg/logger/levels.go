package logger

import (
	"math"

	charm "github.com/charmbracelet/log"
)

// TraceLevel is a custom level one step more verbose than Debug. charm/log
// has no native trace level, so we slot one in below DebugLevel.
const TraceLevel = charm.DebugLevel - 1

// Aliases for the charm levels so callers only import this package.
const (
	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
)

// offLevel sits above every real level; setting it suppresses all output.
const offLevel = charm.Level(math.MaxInt32)

// LogLevel is the string form of a level as it appears in configuration
// files and on the command line.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

// CharmLevel converts a LogLevel to the underlying charm level.
func (l LogLevel) CharmLevel() charm.Level {
	switch l {
	case LogLevelOff:
		return offLevel
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return charm.DebugLevel
	case LogLevelWarning:
		return charm.WarnLevel
	default:
		return charm.InfoLevel
	}
}

package errors

import (
	"os"
)

// OsExit is a variable so tests can intercept process exits.
var OsExit = os.Exit

// Exit terminates the process with the specified exit code.
func Exit(exitCode int) {
	OsExit(exitCode)
}

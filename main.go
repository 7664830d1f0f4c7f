package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/terraforge/terraforge/cmd"
	errUtils "github.com/terraforge/terraforge/errors"
)

func main() {
	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		// Exit with the correct POSIX exit code (128 + signal number).
		// Use errUtils.OsExit to allow test interception.
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		// Fallback to the SIGINT exit code if the signal type assertion fails.
		errUtils.OsExit(130)
	}()

	// Run the application and exit with the appropriate code.
	errUtils.OsExit(run())
}

// run executes the CLI and returns an exit code. The separation from main()
// lets deferred cleanup run before the process exits.
func run() int {
	err := cmd.Execute()
	if err != nil {
		// Format and print the error using the centralized formatter.
		formatted := errUtils.Format(err, errUtils.DefaultFormatterConfig())
		os.Stderr.WriteString(formatted + "\n")

		return errUtils.GetExitCode(err)
	}

	return 0
}

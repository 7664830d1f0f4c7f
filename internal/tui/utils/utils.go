package utils

import (
	"os"

	"github.com/arsham/figurine/figurine"
	"golang.org/x/term"
)

// PrintStyledText prints a styled ASCII-art banner to the terminal.
// The banner is skipped when stdout is not a terminal, so piped output
// stays clean.
func PrintStyledText(text string) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return figurine.Write(os.Stdout, text, "ANSI Regular.flf")
	}
	return nil
}

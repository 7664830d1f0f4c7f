package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

const (
	// DefaultMaxLineLength is the default maximum line length before wrapping.
	DefaultMaxLineLength = 80

	newline = "\n"

	titleHintPrefix   = "TITLE:"
	exampleHintPrefix = "EXAMPLE:"

	colorError  = "#FF0000"
	colorBorder = "#5F5FD7"
	colorHeader = "#00D787"
	colorDimmed = "#808080"
)

// FormatterConfig controls error formatting behavior.
type FormatterConfig struct {
	// Verbose enables detailed error chain output.
	Verbose bool

	// Color controls color output: "auto", "always", or "never".
	Color string

	// MaxLineLength is the maximum length before wrapping (default: 80).
	MaxLineLength int
}

// DefaultFormatterConfig returns default formatting configuration.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		Verbose:       false,
		Color:         "auto",
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Format formats an error for display. The main message comes first, followed
// by indented hints, an example block when present, and (in verbose mode) the
// context table and the full error chain.
func Format(err error, config FormatterConfig) string {
	if err == nil {
		return ""
	}

	useColor := shouldUseColor(config.Color)

	errorStyle := lipgloss.NewStyle()
	titleStyle := lipgloss.NewStyle()
	if useColor {
		errorStyle = errorStyle.Foreground(lipgloss.Color(colorError))
		titleStyle = titleStyle.Foreground(lipgloss.Color(colorError)).Bold(true)
	}

	title, hints, examples := partitionHints(errors.GetAllHints(err))

	var output strings.Builder

	if title != "" {
		output.WriteString(titleStyle.Render(title))
		output.WriteString(newline)
	}

	mainMsg := err.Error()
	if len(mainMsg) > config.MaxLineLength && !config.Verbose {
		output.WriteString(errorStyle.Render(wrapText(mainMsg, config.MaxLineLength)))
	} else {
		output.WriteString(errorStyle.Render(mainMsg))
	}

	if len(hints) > 0 {
		output.WriteString(newline)
		for _, hint := range hints {
			output.WriteString("    \U0001F4A1 " + hint)
			output.WriteString(newline)
		}
	}

	for _, example := range examples {
		output.WriteString(newline)
		output.WriteString(indentBlock(example))
		output.WriteString(newline)
	}

	if config.Verbose {
		contextTable := formatContextTable(err, useColor)
		if contextTable != "" {
			output.WriteString(contextTable)
			output.WriteString(newline)
		}
		output.WriteString(newline)
		output.WriteString(formatStackTrace(err, useColor))
	}

	return output.String()
}

// partitionHints splits raw hints into the custom title, plain hints and
// example blocks. The builder encodes titles and examples as prefixed hints.
func partitionHints(raw []string) (title string, hints []string, examples []string) {
	for _, hint := range raw {
		switch {
		case strings.HasPrefix(hint, titleHintPrefix):
			title = strings.TrimPrefix(hint, titleHintPrefix)
		case strings.HasPrefix(hint, exampleHintPrefix):
			examples = append(examples, strings.TrimPrefix(hint, exampleHintPrefix))
		default:
			hints = append(hints, hint)
		}
	}
	return title, hints, examples
}

// formatContextTable creates a styled 2-column table from the error's safe
// details. Context keys are attached by the builder as "key=value" pairs.
func formatContextTable(err error, useColor bool) string {
	details := errors.GetSafeDetails(err)
	if len(details.SafeDetails) == 0 {
		return ""
	}

	var rows [][]string
	for _, detail := range details.SafeDetails {
		str := fmt.Sprintf("%v", detail)
		pairs := strings.Split(str, " ")
		for _, pair := range pairs {
			if parts := strings.SplitN(pair, "=", 2); len(parts) == 2 {
				rows = append(rows, []string{parts[0], parts[1]})
			}
		}
	}

	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.ThickBorder()).
		Headers("Context", "Value").
		Rows(rows...)

	if useColor {
		t = t.
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))).
			StyleFunc(func(row, col int) lipgloss.Style {
				style := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
				if row == -1 {
					return style.Foreground(lipgloss.Color(colorHeader)).Bold(true)
				}
				if col == 0 {
					return style.Foreground(lipgloss.Color(colorDimmed))
				}
				return style
			})
	}

	return "\n" + t.String()
}

// shouldUseColor determines if color output should be used.
func shouldUseColor(colorMode string) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		// "auto": color only when stderr is a TTY.
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

// wrapText wraps text to the specified width at word boundaries.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = DefaultMaxLineLength
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range strings.Fields(text) {
		testLine := currentLine.String()
		if len(testLine) > 0 {
			testLine += " " + word
		} else {
			testLine = word
		}

		if len(testLine) > width && currentLine.Len() > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		} else {
			if currentLine.Len() > 0 {
				currentLine.WriteString(" ")
			}
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, newline)
}

func indentBlock(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, newline)
}

// formatStackTrace formats the full error chain with stack traces.
func formatStackTrace(err error, useColor bool) string {
	style := lipgloss.NewStyle()
	if useColor {
		style = style.Foreground(lipgloss.Color(colorDimmed))
	}

	details := fmt.Sprintf("%+v", err)
	return style.Render(details)
}

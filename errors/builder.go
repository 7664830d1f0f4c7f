package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder provides a fluent API for constructing enriched errors.
type ErrorBuilder struct {
	err       error
	title     *string
	hints     []string
	context   map[string]interface{}
	exitCode  *int
	sentinels []error
}

// Build creates a new ErrorBuilder from a base error.
// If the base error is a leaf (no wrapped cause), it is treated as a sentinel
// and marked on the final error so errors.Is() keeps working after wrapping.
func Build(err error) *ErrorBuilder {
	builder := &ErrorBuilder{err: err}

	if err != nil && errors.UnwrapOnce(err) == nil {
		builder.sentinels = append(builder.sentinels, err)
	}

	return builder
}

// WithCause chains an underlying cause below the base error. The resulting
// message reads "<base>: <cause>" and both remain visible to errors.Is().
func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	if cause == nil || b.err == nil {
		return b
	}
	b.err = errors.Wrap(cause, b.err.Error())
	return b
}

// WithHint adds a user-facing hint to the error.
// Multiple hints can be added and all will be displayed.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hints = append(b.hints, hint)
	return b
}

// WithHintf adds a formatted user-facing hint to the error.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hints = append(b.hints, fmt.Sprintf(format, args...))
	return b
}

// WithExplanation adds a detailed explanation of what went wrong and why.
// Explanations are shown in verbose output.
func (b *ErrorBuilder) WithExplanation(explanation string) *ErrorBuilder {
	b.err = errors.WithDetail(b.err, explanation)
	return b
}

// WithExplanationf adds a formatted explanation to the error.
func (b *ErrorBuilder) WithExplanationf(format string, args ...interface{}) *ErrorBuilder {
	return b.WithExplanation(fmt.Sprintf(format, args...))
}

// WithExample adds an inline code or configuration example. Examples are
// stored as hints prefixed with "EXAMPLE:" and rendered in their own block.
func (b *ErrorBuilder) WithExample(example string) *ErrorBuilder {
	b.hints = append(b.hints, "EXAMPLE:"+example)
	return b
}

// WithContext adds safe structured context to the error.
// Context is displayed in verbose mode as a key-value table.
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	if b.context == nil {
		b.context = make(map[string]interface{})
	}
	b.context[key] = value
	return b
}

// WithTitle sets a custom error title. By default errors are titled "Error".
func (b *ErrorBuilder) WithTitle(title string) *ErrorBuilder {
	b.title = &title
	return b
}

// WithExitCode attaches an exit code to the error.
func (b *ErrorBuilder) WithExitCode(code int) *ErrorBuilder {
	b.exitCode = &code
	return b
}

// WithSentinel marks the error with a sentinel for errors.Is() checks.
// Multiple sentinels can be added and all will be marked.
func (b *ErrorBuilder) WithSentinel(sentinel error) *ErrorBuilder {
	b.sentinels = append(b.sentinels, sentinel)
	return b
}

// Err finalizes and returns the enriched error.
func (b *ErrorBuilder) Err() error {
	if b.err == nil {
		return nil
	}

	err := b.err

	if b.title != nil {
		err = errors.WithHint(err, "TITLE:"+*b.title)
	}

	for _, hint := range b.hints {
		err = errors.WithHint(err, hint)
	}

	if len(b.context) > 0 {
		// Sort keys for deterministic output.
		keys := make([]string, 0, len(b.context))
		for k := range b.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var formatParts []string
		var safeValues []interface{}

		for _, key := range keys {
			formatParts = append(formatParts, key+"=%v")
			safeValues = append(safeValues, errors.Safe(b.context[key]))
		}

		err = errors.WithSafeDetails(err, strings.Join(formatParts, " "), safeValues...)
	}

	// Mark sentinels after all other wrapping so they survive at the top level.
	for _, sentinel := range b.sentinels {
		err = errors.Mark(err, sentinel)
	}

	if b.exitCode != nil {
		err = WithExitCode(err, *b.exitCode)
	}

	return err
}

package errors

import "github.com/cockroachdb/errors"

// Sentinel errors for the generation pipeline. Wrap these with Build() to
// attach causes, hints and context; check them with errors.Is().
var (
	// ErrNotFound indicates a required file or directory does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrParse indicates a data file could not be parsed in its declared format.
	ErrParse = errors.New("failed to parse file")

	// ErrInvalidFormat indicates a data file parsed successfully but does not
	// hold the shape the pipeline requires (a top-level mapping).
	ErrInvalidFormat = errors.New("invalid data format")

	// ErrIO indicates a filesystem read or write failed.
	ErrIO = errors.New("input/output error")

	// ErrMerge indicates deep-merging of configuration maps failed.
	ErrMerge = errors.New("merge failed")

	// ErrInvalidListMergeStrategy indicates an unsupported list merge strategy.
	ErrInvalidListMergeStrategy = errors.New("invalid list merge strategy")

	// ErrTemplateNotFound indicates a template could not be located by its engine.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateSyntax indicates a template failed to parse.
	ErrTemplateSyntax = errors.New("template syntax error")

	// ErrUndefinedReference indicates a template referenced a variable that is
	// not present in the merged data.
	ErrUndefinedReference = errors.New("undefined reference in template")

	// ErrTemplateEngine indicates a template failed during evaluation for a
	// reason other than syntax or an undefined reference.
	ErrTemplateEngine = errors.New("template evaluation failed")

	// ErrUnknownEngine indicates the configured template engine is not registered.
	ErrUnknownEngine = errors.New("unknown template engine")

	// ErrInvalidDelimiters indicates custom template delimiters are malformed.
	ErrInvalidDelimiters = errors.New("invalid template delimiters")

	// ErrInvalidSource indicates the configured input source URI is unsupported
	// or malformed.
	ErrInvalidSource = errors.New("invalid source")

	// ErrDownload indicates fetching a remote input tree failed.
	ErrDownload = errors.New("failed to download source")

	// ErrSchemaValidation indicates the merged data failed JSON Schema validation.
	ErrSchemaValidation = errors.New("schema validation failed")

	// ErrNilConfiguration indicates a nil configuration was passed to a
	// function that requires one.
	ErrNilConfiguration = errors.New("configuration cannot be nil")

	// ErrFailedToInitConfig indicates the CLI configuration could not be loaded.
	ErrFailedToInitConfig = errors.New("failed to initialize CLI configuration")
)

package exec

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v5"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/downloader"
	"github.com/terraforge/terraforge/pkg/filetype"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/merge"
	"github.com/terraforge/terraforge/pkg/schema"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// loadAndMergeDataFiles parses the data files in the given order and deep-merges
// each one into the accumulator, so later files win key by key. Any unreadable,
// malformed or non-mapping file aborts the whole load; a partially merged result
// is never returned. When a schema is configured, the merged result is validated
// against it before being handed to the renderer.
func loadAndMergeDataFiles(cfg *schema.TerraforgeConfiguration, logger *log.Logger, paths []string) (map[string]any, error) {
	merged := map[string]any{}

	for _, path := range paths {
		logger.Debug("Loading data file", "file", path)

		parsed, err := filetype.ParseFileByExtension(os.ReadFile, path)
		if err != nil {
			return nil, classifyDataFileError(path, err)
		}

		// An empty file decodes to nil and contributes nothing.
		if parsed == nil {
			logger.Warn("Data file is empty, skipping", "file", path)
			continue
		}

		dataMap, ok := parsed.(map[string]any)
		if !ok {
			return nil, errUtils.Build(errUtils.ErrInvalidFormat).
				WithCause(fmt.Errorf("%s holds a top-level %T", path, parsed)).
				WithHint("Data files must contain a top-level mapping of keys to values").
				WithContext("file", path).
				Err()
		}

		merged, err = merge.Merge(cfg, []map[string]any{merged, dataMap})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Schema != "" {
		if err := validateAgainstSchema(cfg.Schema, merged); err != nil {
			return nil, err
		}
		logger.Debug("Merged data validated against schema", "schema", cfg.Schema)
	}

	return merged, nil
}

// classifyDataFileError maps a read or parse failure onto the error taxonomy:
// missing file → not-found, other read failures → IO, everything else → parse
// error carrying the parser diagnostic.
func classifyDataFileError(path string, err error) error {
	var pathError *os.PathError
	if errors.As(err, &pathError) {
		if os.IsNotExist(pathError) {
			return errUtils.Build(errUtils.ErrNotFound).
				WithCause(pathError).
				WithHint("Check that every configured data file exists").
				WithContext("file", path).
				Err()
		}
		return errUtils.Build(errUtils.ErrIO).
			WithCause(pathError).
			WithContext("file", path).
			Err()
	}

	// HCL failures arrive already classified with the file attached.
	if errors.Is(err, errUtils.ErrParse) {
		return err
	}

	return errUtils.Build(errUtils.ErrParse).
		WithCause(fmt.Errorf("%s: %w", path, err)).
		WithContext("file", path).
		Err()
}

// validateAgainstSchema compiles the JSON Schema at schemaPath (a local file or
// a downloadable URL) and validates the merged data against it.
func validateAgainstSchema(schemaPath string, data map[string]any) error {
	schemaText, err := loadSchemaDocument(schemaPath)
	if err != nil {
		return err
	}

	// Convert the data to JSON and back to Go types to prevent the error:
	// jsonschema: invalid jsonType: map[interface {}]interface {}
	dataJSON, err := u.ConvertToJSONFast(data)
	if err != nil {
		return errUtils.Build(errUtils.ErrSchemaValidation).WithCause(err).Err()
	}

	instance, err := u.ConvertFromJSON(dataJSON)
	if err != nil {
		return errUtils.Build(errUtils.ErrSchemaValidation).WithCause(err).Err()
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaPath, strings.NewReader(schemaText)); err != nil {
		return errUtils.Build(errUtils.ErrParse).
			WithCause(err).
			WithContext("schema", schemaPath).
			Err()
	}

	compiledSchema, err := compiler.Compile(schemaPath)
	if err != nil {
		return errUtils.Build(errUtils.ErrParse).
			WithCause(err).
			WithContext("schema", schemaPath).
			Err()
	}

	if err := compiledSchema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			output, marshalErr := jsoniter.ConfigDefault.MarshalIndent(validationErr.BasicOutput(), "", "  ")
			if marshalErr == nil {
				return errUtils.Build(errUtils.ErrSchemaValidation).
					WithCause(errors.New(string(output))).
					WithContext("schema", schemaPath).
					Err()
			}
		}
		return errUtils.Build(errUtils.ErrSchemaValidation).
			WithCause(err).
			WithContext("schema", schemaPath).
			Err()
	}

	return nil
}

// loadSchemaDocument reads the schema from a local path, or downloads it when
// the path carries a URL scheme.
func loadSchemaDocument(schemaPath string) (string, error) {
	if strings.Contains(schemaPath, "://") {
		if err := downloader.ValidateURI(schemaPath); err != nil {
			return "", err
		}

		data, err := downloader.NewFileDownloader(downloader.NewGoGetterClientFactory()).FetchData(schemaPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if !u.FileExists(schemaPath) {
		return "", errUtils.Build(errUtils.ErrNotFound).
			WithCause(fmt.Errorf("schema file %s does not exist", schemaPath)).
			WithContext("schema", schemaPath).
			Err()
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("schema", schemaPath).
			Err()
	}
	return string(data), nil
}

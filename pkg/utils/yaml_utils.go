package utils

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultYAMLIndent = 2

type YAMLOptions struct {
	Indent int
}

// ConvertToYAML converts the provided value to a YAML string
func ConvertToYAML(data any, opts ...YAMLOptions) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)

	indent := DefaultYAMLIndent
	if len(opts) > 0 && opts[0].Indent > 0 {
		indent = opts[0].Indent
	}
	encoder.SetIndent(indent)

	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// UnmarshalYAML unmarshals YAML into a Go type.
// An empty document yields the zero value of T without an error.
func UnmarshalYAML[T any](input string) (T, error) {
	var zeroValue T
	var node yaml.Node

	if err := yaml.Unmarshal([]byte(input), &node); err != nil {
		return zeroValue, err
	}

	if node.Kind == 0 {
		return zeroValue, nil
	}

	var data T
	if err := node.Decode(&data); err != nil {
		return zeroValue, err
	}

	return data, nil
}

// WriteToFileAsYAML converts the provided value to YAML and writes it to the specified file
func WriteToFileAsYAML(filePath string, data any, fileMode os.FileMode) error {
	y, err := ConvertToYAML(data, YAMLOptions{Indent: DefaultYAMLIndent})
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(y), fileMode)
}

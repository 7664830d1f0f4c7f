package utils

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ConvertToJSONFast converts the provided value to a JSON-encoded string
// using the 'ConfigFastest' config and without indenting
func ConvertToJSONFast(data interface{}) (string, error) {
	var json = jsoniter.ConfigFastest
	j, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(j), nil
}

// ConvertFromJSON converts the provided JSON-encoded string to Go data types
func ConvertFromJSON(jsonString string) (interface{}, error) {
	var json = jsoniter.ConfigDefault
	var data interface{}
	if err := json.Unmarshal([]byte(jsonString), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// PrintAsJSON prints the provided value as a JSON document to the console
func PrintAsJSON(data interface{}) error {
	var json = jsoniter.ConfigDefault
	j, err := json.MarshalIndent(data, "", strings.Repeat(" ", 2))
	if err != nil {
		return err
	}
	fmt.Println(string(j))
	return nil
}

// WriteToFileAsJSON converts the provided value to JSON and writes it to the provided file
func WriteToFileAsJSON(filePath string, data interface{}, fileMode os.FileMode) error {
	var json = jsoniter.ConfigDefault
	j, err := json.MarshalIndent(data, "", strings.Repeat(" ", 2))
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, j, fileMode)
}

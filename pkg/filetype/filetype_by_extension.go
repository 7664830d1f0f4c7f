package filetype

import (
	"path/filepath"
	"strings"
)

// ParseFileByExtension parses a file based on its file extension.
// It determines the format from the extension, not the content.
// Supported extensions:
// - .json → JSON parsing
// - .yaml, .yml → YAML parsing
// - .hcl, .tf, .tfvars → HCL parsing
// - All others (including .txt or no extension) → YAML parsing, the
//   pipeline's default data format.
func ParseFileByExtension(readFileFunc func(string) ([]byte, error), filename string) (any, error) {
	// Extract clean filename from potential URL
	cleanFilename := ExtractFilenameFromPath(filename)
	ext := GetFileExtension(cleanFilename)

	data, err := readFileFunc(filename)
	if err != nil {
		return nil, err
	}

	return ParseByExtension(data, ext, filename)
}

// ParseByExtension parses data based on the provided extension.
func ParseByExtension(data []byte, ext string, filename string) (any, error) {
	switch ext {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".hcl", ".tf", ".tfvars":
		return parseHCL(data, filename)
	default:
		return parseYAML(data)
	}
}

// DetectFormatAndParseFile parses a file by sniffing its content when the
// extension is not authoritative: valid JSON parses as JSON, anything else is
// attempted as YAML, and unparseable content is returned as a raw string.
func DetectFormatAndParseFile(readFileFunc func(string) ([]byte, error), filename string) (any, error) {
	data, err := readFileFunc(filename)
	if err != nil {
		return nil, err
	}

	if isValidJSON(data) {
		return parseJSON(data)
	}

	if parsed, err := parseYAML(data); err == nil {
		return parsed, nil
	}

	return string(data), nil
}

// ExtractFilenameFromPath extracts the actual filename from a path or URL.
// It removes query strings and fragments from URLs.
// Examples:
//   - "https://example.com/file.json?v=1#section" → "file.json"
//   - "/path/to/file.yaml" → "file.yaml"
//   - "file.txt" → "file.txt"
func ExtractFilenameFromPath(path string) string {
	// Remove fragment (everything after #)
	if idx := strings.Index(path, "#"); idx != -1 {
		path = path[:idx]
	}

	// Remove query string (everything after ?)
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	return filepath.Base(path)
}

// GetFileExtension returns the lowercase file extension including the dot.
// Examples:
//   - "file.json" → ".json"
//   - "FILE.JSON" → ".json"
//   - "file.backup.json" → ".json"
//   - "file" → ""
//   - ".hidden" → ""
func GetFileExtension(filename string) string {
	if filename == "" || filename == "." {
		return ""
	}

	ext := filepath.Ext(filename)

	// If the extension is the whole filename, decide whether it is a known
	// extension (".json") or a hidden file without one (".gitignore").
	if ext == filename {
		if len(ext) > 1 && !strings.Contains(ext[1:], ".") {
			lowerExt := strings.ToLower(ext)
			knownExts := []string{".json", ".yaml", ".yml", ".hcl", ".tf", ".tfvars", ".txt", ".md"}
			for _, known := range knownExts {
				if lowerExt == known {
					return lowerExt
				}
			}
		}
		return ""
	}

	if ext == "." {
		return ""
	}

	return strings.ToLower(ext)
}

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToYAML(t *testing.T) {
	data := map[string]any{
		"vpc": map[string]any{
			"cidr": "10.0.0.0/16",
			"azs":  []any{"us-east-1a", "us-east-1b"},
		},
	}

	y, err := ConvertToYAML(data)
	require.NoError(t, err)

	assert.Contains(t, y, "vpc:")
	assert.Contains(t, y, "cidr: 10.0.0.0/16")
	assert.Contains(t, y, "- us-east-1a")
}

func TestUnmarshalYAML(t *testing.T) {
	input := `
vpc:
  cidr: 10.0.0.0/16
  enabled: true
  subnets:
    - a
    - b
`
	data, err := UnmarshalYAML[map[string]any](input)
	require.NoError(t, err)

	vpc, ok := data["vpc"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.0/16", vpc["cidr"])
	assert.Equal(t, true, vpc["enabled"])
	assert.Equal(t, []any{"a", "b"}, vpc["subnets"])
}

func TestUnmarshalYAML_EmptyDocument(t *testing.T) {
	data, err := UnmarshalYAML[map[string]any]("")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestUnmarshalYAML_Invalid(t *testing.T) {
	_, err := UnmarshalYAML[map[string]any]("key: [unclosed")
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	original := map[string]any{
		"name":  "terraforge",
		"count": 3,
		"tags":  map[string]any{"env": "dev"},
	}

	y, err := ConvertToYAML(original)
	require.NoError(t, err)

	decoded, err := UnmarshalYAML[map[string]any](y)
	require.NoError(t, err)

	assert.Equal(t, "terraforge", decoded["name"])
	assert.Equal(t, 3, decoded["count"])
	assert.Equal(t, map[string]any{"env": "dev"}, decoded["tags"])
}

func TestWriteToFileAsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	err := WriteToFileAsYAML(path, map[string]any{"region": "us-east-1"}, 0o644)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "region: us-east-1")
}

func TestWriteToFileAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	err := WriteToFileAsJSON(path, map[string]any{"region": "us-east-1"}, 0o644)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"region": "us-east-1"`)
}

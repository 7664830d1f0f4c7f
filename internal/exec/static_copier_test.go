package exec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/terraforge/terraforge/errors"
)

func TestCopyStaticFiles(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "README.md"), "# demo\n")
	writeTestFile(t, filepath.Join(inputRoot, "config", "app.yaml"), "key: value\n")
	writeTestFile(t, filepath.Join(inputRoot, "main.tf.tmpl"), "{{ .project }}\n")

	cfg := defaultTestConfig()

	tally, err := copyStaticFiles(cfg, testLogger(), inputRoot, outputRoot)
	require.NoError(t, err)

	assert.Equal(t, 2, tally.Found, "templates are excluded from the candidate set")
	assert.Equal(t, 2, tally.Succeeded)
	assert.Equal(t, 0, tally.Failed)

	assert.Equal(t, "# demo\n", readTestFile(t, filepath.Join(outputRoot, "README.md")))
	assert.Equal(t, "key: value\n", readTestFile(t, filepath.Join(outputRoot, "config", "app.yaml")))
	assert.NoFileExists(t, filepath.Join(outputRoot, "main.tf.tmpl"))
	assert.NoFileExists(t, filepath.Join(outputRoot, "main.tf"))
}

func TestCopyStaticFilesMarkerPairSeparation(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "web.conf.j2"), "host={{ host }}\n")
	writeTestFile(t, filepath.Join(inputRoot, "web.conf"), "host=static\n")

	cfg := pongo2TestConfig()

	tally, err := copyStaticFiles(cfg, testLogger(), inputRoot, outputRoot)
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Found, "only the non-template half of the pair is a copy candidate")
	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, "host=static\n", readTestFile(t, filepath.Join(outputRoot, "web.conf")))
}

func TestCopyStaticFilesOverwritesPreviousOutput(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "README.md"), "fresh\n")
	writeTestFile(t, filepath.Join(outputRoot, "README.md"), "stale\n")

	cfg := defaultTestConfig()

	tally, err := copyStaticFiles(cfg, testLogger(), inputRoot, outputRoot)
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, "fresh\n", readTestFile(t, filepath.Join(outputRoot, "README.md")))
}

func TestCopyStaticFilesPreservesBytes(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	// A file with template-looking content stays untouched when it does not
	// carry the marker suffix.
	payload := "binary-ish \x00\x01 and {{ .not.rendered }}\n"
	writeTestFile(t, filepath.Join(inputRoot, "data.bin"), payload)

	cfg := defaultTestConfig()

	tally, err := copyStaticFiles(cfg, testLogger(), inputRoot, outputRoot)
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, payload, readTestFile(t, filepath.Join(outputRoot, "data.bin")))
}

func TestCopyStaticFilesEmptyInput(t *testing.T) {
	cfg := defaultTestConfig()

	tally, err := copyStaticFiles(cfg, testLogger(), t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
}

func TestCopyStaticFilesMissingInputRoot(t *testing.T) {
	cfg := defaultTestConfig()

	_, err := copyStaticFiles(cfg, testLogger(), filepath.Join(t.TempDir(), "absent"), t.TempDir())
	assert.ErrorIs(t, err, errUtils.ErrNotFound)
}

func TestCopyStaticFilesTallyInvariant(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "a.txt"), "a\n")
	writeTestFile(t, filepath.Join(inputRoot, "nested", "b.txt"), "b\n")
	writeTestFile(t, filepath.Join(inputRoot, "nested", "deep", "c.txt"), "c\n")

	cfg := defaultTestConfig()

	tally, err := copyStaticFiles(cfg, testLogger(), inputRoot, outputRoot)
	require.NoError(t, err)

	assert.Equal(t, 3, tally.Found)
	assert.Equal(t, tally.Found, tally.Succeeded+tally.Skipped+tally.Failed)

	entries, err := os.ReadDir(outputRoot)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

package exec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/terraforge/terraforge/errors"
)

func TestRenderTemplatesMirrorsTree(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "main.tf.tmpl"), "project = \"{{ .project }}\"\n")
	writeTestFile(t, filepath.Join(inputRoot, "modules", "vpc", "vpc.tf.tmpl"), "cidr = \"{{ .vpc.cidr }}\"\n")

	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)
	merged := map[string]any{
		"project": "demo",
		"vpc":     map[string]any{"cidr": "10.0.0.0/16"},
	}

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, merged)
	require.NoError(t, err)

	assert.Equal(t, 2, tally.Found)
	assert.Equal(t, 2, tally.Succeeded)
	assert.Equal(t, 0, tally.Skipped)
	assert.Equal(t, 0, tally.Failed)

	assert.Equal(t, "project = \"demo\"\n", readTestFile(t, filepath.Join(outputRoot, "main.tf")))
	assert.Equal(t, "cidr = \"10.0.0.0/16\"\n", readTestFile(t, filepath.Join(outputRoot, "modules", "vpc", "vpc.tf")))
}

func TestRenderTemplatesOutputSuffix(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "web.tmpl"), "name = {{ .name }}\n")

	cfg := defaultTestConfig()
	cfg.Templates.OutputSuffix = ".conf"
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{"name": "demo"})
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, "name = demo\n", readTestFile(t, filepath.Join(outputRoot, "web.conf")))
}

func TestRenderTemplatesSkipEmpty(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "empty.tf.tmpl"), "{{ if .enabled }}resource {}{{ end }}\n")

	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{"enabled": false})
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Found)
	assert.Equal(t, 1, tally.Skipped)
	assert.NoFileExists(t, filepath.Join(outputRoot, "empty.tf"))
}

func TestRenderTemplatesSkipEmptyDisabled(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "empty.tf.tmpl"), "{{ if .enabled }}resource {}{{ end }}")

	cfg := defaultTestConfig()
	cfg.Templates.SkipEmpty = false
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{"enabled": false})
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, 0, tally.Skipped)
	assert.FileExists(t, filepath.Join(outputRoot, "empty.tf"))
}

func TestRenderTemplatesIsolatesFailures(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "good.tf.tmpl"), "name = \"{{ .name }}\"\n")
	writeTestFile(t, filepath.Join(inputRoot, "empty.tf.tmpl"), "{{ if false }}x{{ end }}")
	writeTestFile(t, filepath.Join(inputRoot, "broken.tf.tmpl"), "{{ .name \n")
	writeTestFile(t, filepath.Join(inputRoot, "undefined.tf.tmpl"), "{{ .absent.key }}\n")

	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{"name": "demo"})
	require.NoError(t, err, "per-file failures never abort the pass")

	assert.Equal(t, 4, tally.Found)
	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, 2, tally.Failed)
	assert.Equal(t, tally.Found, tally.Succeeded+tally.Skipped+tally.Failed)

	assert.Equal(t, "name = \"demo\"\n", readTestFile(t, filepath.Join(outputRoot, "good.tf")))
	assert.NoFileExists(t, filepath.Join(outputRoot, "broken.tf"), "failed templates write nothing")
	assert.NoFileExists(t, filepath.Join(outputRoot, "undefined.tf"))
}

func TestRenderTemplatesPongo2(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "server.conf.j2"), "host={{ host }} port={{ port }}\n")

	cfg := pongo2TestConfig()
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{
		"host": "localhost",
		"port": 8080,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Succeeded)
	assert.Equal(t, "host=localhost port=8080\n", readTestFile(t, filepath.Join(outputRoot, "server.conf")))
}

func TestRenderTemplatesNoTemplates(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()
	writeTestFile(t, filepath.Join(inputRoot, "README.md"), "static only\n")

	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
}

func TestRenderTemplatesMissingInputRoot(t *testing.T) {
	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)

	_, err := renderTemplates(cfg, testLogger(), engine, filepath.Join(t.TempDir(), "absent"), t.TempDir(), map[string]any{})
	assert.ErrorIs(t, err, errUtils.ErrNotFound)
}

func TestRenderTemplatesInputRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	writeTestFile(t, file, "not a directory\n")

	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)

	_, err := renderTemplates(cfg, testLogger(), engine, file, t.TempDir(), map[string]any{})
	assert.ErrorIs(t, err, errUtils.ErrNotFound)
}

func TestRenderTemplatesCreatesOutputRoot(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := filepath.Join(t.TempDir(), "nested", "out")
	writeTestFile(t, filepath.Join(inputRoot, "a.tmpl"), "ok\n")

	cfg := defaultTestConfig()
	engine := newTestEngine(t, cfg)

	tally, err := renderTemplates(cfg, testLogger(), engine, inputRoot, outputRoot, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Succeeded)

	info, err := os.Stat(outputRoot)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDeriveOutputPath(t *testing.T) {
	cfg := defaultTestConfig()

	assert.Equal(t,
		filepath.Join("out", "main.tf"),
		deriveOutputPath(cfg, "out", "main.tf.tmpl"))

	assert.Equal(t,
		filepath.Join("out", "modules", "vpc", "vpc.tf"),
		deriveOutputPath(cfg, "out", "modules/vpc/vpc.tf.tmpl"))

	cfg.Templates.OutputSuffix = ".tf"
	assert.Equal(t,
		filepath.Join("out", "main.tf"),
		deriveOutputPath(cfg, "out", "main.tmpl"))
}

package exec

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/terraforge/terraforge/pkg/config"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
	"github.com/terraforge/terraforge/pkg/templater"
)

// testLogger returns a logger that swallows all output.
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// defaultTestConfig mirrors the production defaults for a local source with
// the Go template engine.
func defaultTestConfig() *schema.TerraforgeConfiguration {
	return &schema.TerraforgeConfiguration{
		Source: schema.Source{Type: "local"},
		Templates: schema.Templates{
			Engine:    templater.EngineGoTemplate,
			Marker:    ".tmpl",
			SkipEmpty: true,
			Sprig:     schema.Sprig{Enabled: true},
			Gomplate:  schema.Gomplate{Enabled: true},
		},
		Settings: schema.Settings{ListMergeStrategy: "replace"},
		Logs:     schema.Logs{File: "/dev/null", Level: "Off"},
	}
}

// pongo2TestConfig mirrors the production defaults for the pongo2 engine.
func pongo2TestConfig() *schema.TerraforgeConfiguration {
	cfg := defaultTestConfig()
	cfg.Templates.Engine = templater.EnginePongo2
	cfg.Templates.Marker = ".j2"
	return cfg
}

// newTestEngine builds the engine selected by the config.
func newTestEngine(t *testing.T, cfg *schema.TerraforgeConfiguration) templater.Engine {
	t.Helper()
	engine, err := templater.New(cfg, testLogger())
	require.NoError(t, err)
	return engine
}

// writeTestFile writes content to path, creating parent directories.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// readTestFile reads the file and returns its content.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// newTestCommand wraps a command implementation with the persistent flags the
// root command provides in production.
func newTestCommand(runE func(cmd *cobra.Command, args []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "test",
		RunE:          runE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("logs-level", "Info", "")
	cmd.Flags().String("logs-file", "/dev/stderr", "")
	return cmd
}

// isolateConfig keeps the layered config loader away from any real
// terraforge.yaml on the machine running the tests.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvCliConfigPath, "")
}

// captureStdout runs fn with stdout redirected to a pipe and returns what it
// printed. fn must succeed.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fnErr := fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, fnErr)

	return string(out)
}

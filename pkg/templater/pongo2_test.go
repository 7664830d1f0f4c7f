package templater

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/schema"
)

func pongo2Config() *schema.TerraforgeConfiguration {
	return &schema.TerraforgeConfiguration{
		Templates: schema.Templates{
			Engine: EnginePongo2,
			Marker: ".j2",
		},
	}
}

func TestPongo2RenderString(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	result, err := engine.RenderString("test", "Hello {{ name }}!", map[string]any{"name": "World"})
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", result)
}

func TestPongo2Filters(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	result, err := engine.RenderString("test", "{{ name|upper }}", map[string]any{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "WORLD", result)
}

func TestPongo2Loop(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	data := map[string]any{"items": []any{"a", "b", "c"}}

	result, err := engine.RenderString("test", "{% for i in items %}{{ i }}{% endfor %}", data)
	require.NoError(t, err)
	assert.Equal(t, "abc", result)
}

func TestPongo2UndefinedVariableRendersEmpty(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	// Jinja2's lenient default: undefined variables produce empty output, no error.
	result, err := engine.RenderString("test", "[{{ missing }}]", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "[]", result)
}

func TestPongo2SyntaxError(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	_, err = engine.RenderString("broken", "{% for %}", map[string]any{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrTemplateSyntax)
}

func TestPongo2RenderFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeting.txt.j2"), []byte("Hello {{ name }}!"), 0o644))

	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	result, err := engine.RenderFile(dir, "greeting.txt.j2", map[string]any{"name": "World"})
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", result)
}

func TestPongo2RenderFileNotFound(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	_, err = engine.RenderFile(t.TempDir(), "missing.j2", map[string]any{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrTemplateNotFound)
}

func TestPongo2Conditionals(t *testing.T) {
	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	data := map[string]any{"enabled": true, "name": "web"}

	result, err := engine.RenderString("test", `{% if enabled %}{{ name }} is enabled{% endif %}`, data)
	require.NoError(t, err)
	assert.Equal(t, "web is enabled", result)
}

func TestPongo2Include(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.j2"), []byte("from partial"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.j2"), []byte(`{% include "partial.j2" %}!`), 0o644))

	engine, err := New(pongo2Config(), testLogger())
	require.NoError(t, err)

	result, err := engine.RenderFile(dir, "main.j2", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "from partial!", result)
}

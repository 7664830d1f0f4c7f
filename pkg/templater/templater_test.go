package templater

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNewDefaultsToGoTemplate(t *testing.T) {
	cfg := &schema.TerraforgeConfiguration{}

	engine, err := New(cfg, testLogger())
	require.NoError(t, err)
	assert.Equal(t, EngineGoTemplate, engine.Name())
}

func TestNewSelectsEngine(t *testing.T) {
	tests := []struct {
		engine   string
		expected string
	}{
		{engine: "gotemplate", expected: EngineGoTemplate},
		{engine: "pongo2", expected: EnginePongo2},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			cfg := &schema.TerraforgeConfiguration{
				Templates: schema.Templates{
					Engine: tt.engine,
				},
			}

			engine, err := New(cfg, testLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, engine.Name())
		})
	}
}

func TestNewUnknownEngine(t *testing.T) {
	cfg := &schema.TerraforgeConfiguration{
		Templates: schema.Templates{
			Engine: "jinja",
		},
	}

	engine, err := New(cfg, testLogger())
	assert.Error(t, err)
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, errUtils.ErrUnknownEngine)
	assert.Contains(t, err.Error(), "jinja")
}

func TestNewNilConfiguration(t *testing.T) {
	engine, err := New(nil, testLogger())
	assert.Error(t, err)
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, errUtils.ErrNilConfiguration)
}

package templater

import (
	"fmt"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
)

// Supported template engines.
const (
	EngineGoTemplate = "gotemplate"
	EnginePongo2     = "pongo2"
)

// Engine renders templates against the merged data.
//
// `RenderFile` resolves `relPath` against `root` so engine constructs that reference
// sibling templates (includes, imports) keep working. `RenderString` renders in-memory
// content, used for templates read from stdin.
type Engine interface {
	Name() string
	RenderFile(root string, relPath string, data map[string]any) (string, error)
	RenderString(name string, content string, data map[string]any) (string, error)
}

// New returns the template engine selected by `templates.engine`.
// An empty engine name selects the Go template engine.
func New(cfg *schema.TerraforgeConfiguration, logger *log.Logger) (Engine, error) {
	if cfg == nil {
		return nil, errUtils.ErrNilConfiguration
	}

	engine := cfg.Templates.Engine
	if engine == "" {
		engine = EngineGoTemplate
	}

	switch engine {
	case EngineGoTemplate:
		return newGoTemplateEngine(cfg, logger)
	case EnginePongo2:
		return newPongo2Engine(cfg, logger), nil
	default:
		return nil, errUtils.Build(fmt.Errorf("%w '%s'", errUtils.ErrUnknownEngine, engine)).
			WithHintf("Supported template engines are: %s, %s", EngineGoTemplate, EnginePongo2).
			Err()
	}
}

package templater

import (
	"os"

	"github.com/flosch/pongo2/v6"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
)

// pongo2Engine renders Jinja2-syntax templates. Unlike the Go template engine,
// pongo2 follows Jinja2's lenient default for undefined variables: they render
// as empty output instead of failing the file.
type pongo2Engine struct {
	cfg    *schema.TerraforgeConfiguration
	logger *log.Logger
}

func newPongo2Engine(cfg *schema.TerraforgeConfiguration, logger *log.Logger) *pongo2Engine {
	return &pongo2Engine{
		cfg:    cfg,
		logger: logger,
	}
}

func (e *pongo2Engine) Name() string {
	return EnginePongo2
}

func (e *pongo2Engine) RenderFile(root string, relPath string, tmplData map[string]any) (string, error) {
	e.logger.Trace("Rendering template", "engine", e.Name(), "template", relPath)

	loader, err := pongo2.NewLocalFileSystemLoader(root)
	if err != nil {
		return "", errUtils.Build(errUtils.ErrNotFound).WithCause(err).WithContext("dir", root).Err()
	}

	set := pongo2.NewSet("terraforge", loader)

	tmpl, err := set.FromFile(relPath)
	if err != nil {
		return "", e.classifyParseError(err, relPath)
	}

	out, err := tmpl.ExecuteBytes(pongo2.Context(tmplData))
	if err != nil {
		return "", e.classifyExecuteError(err, relPath)
	}

	return string(out), nil
}

func (e *pongo2Engine) RenderString(name string, content string, tmplData map[string]any) (string, error) {
	e.logger.Trace("Rendering template", "engine", e.Name(), "template", name)

	// A cwd-relative loader keeps `include`/`extends` working for in-memory templates.
	set := pongo2.NewSet("terraforge", pongo2.MustNewLocalFileSystemLoader(""))

	tmpl, err := set.FromString(content)
	if err != nil {
		return "", e.classifyParseError(err, name)
	}

	out, err := tmpl.ExecuteBytes(pongo2.Context(tmplData))
	if err != nil {
		return "", e.classifyExecuteError(err, name)
	}

	return string(out), nil
}

func (e *pongo2Engine) classifyParseError(err error, name string) error {
	if pongoErr, ok := err.(*pongo2.Error); ok {
		if pongoErr.OrigError != nil && os.IsNotExist(pongoErr.OrigError) {
			return errUtils.Build(errUtils.ErrTemplateNotFound).
				WithCause(err).
				WithContext("template", name).
				Err()
		}
		builder := errUtils.Build(errUtils.ErrTemplateSyntax).
			WithCause(err).
			WithContext("template", name)
		if pongoErr.Line > 0 {
			builder = builder.WithContext("line", pongoErr.Line)
		}
		return builder.Err()
	}

	if os.IsNotExist(err) {
		return errUtils.Build(errUtils.ErrTemplateNotFound).
			WithCause(err).
			WithContext("template", name).
			Err()
	}

	return errUtils.Build(errUtils.ErrTemplateSyntax).
		WithCause(err).
		WithContext("template", name).
		Err()
}

func (e *pongo2Engine) classifyExecuteError(err error, name string) error {
	builder := errUtils.Build(errUtils.ErrTemplateEngine).
		WithCause(err).
		WithContext("template", name)
	if pongoErr, ok := err.(*pongo2.Error); ok && pongoErr.Line > 0 {
		builder = builder.WithContext("line", pongoErr.Line)
	}
	return builder.Err()
}

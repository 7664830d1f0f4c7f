package templater

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/hairyhenderson/gomplate/v3"
	"github.com/hairyhenderson/gomplate/v3/data"
	"github.com/samber/lo"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
)

const defaultGomplateTimeoutSeconds = 5

// Go `text/template` diagnostics embed the line as `template: name:LINE: message`.
var templateErrorLinePattern = regexp.MustCompile(`:(\d+):`)

type goTemplateEngine struct {
	cfg    *schema.TerraforgeConfiguration
	logger *log.Logger

	leftDelimiter  string
	rightDelimiter string
}

func newGoTemplateEngine(cfg *schema.TerraforgeConfiguration, logger *log.Logger) (*goTemplateEngine, error) {
	leftDelimiter := "{{"
	rightDelimiter := "}}"

	if len(cfg.Templates.Delimiters) > 0 {
		if len(cfg.Templates.Delimiters) != 2 ||
			cfg.Templates.Delimiters[0] == "" ||
			cfg.Templates.Delimiters[1] == "" {
			return nil, errUtils.Build(errUtils.ErrInvalidDelimiters).
				WithHint("'templates.delimiters' must be an array with two string items: the left and the right delimiter").
				WithHint("The left and right delimiters must not be empty").
				WithContext("delimiters", fmt.Sprintf("%v", cfg.Templates.Delimiters)).
				Err()
		}
		leftDelimiter = cfg.Templates.Delimiters[0]
		rightDelimiter = cfg.Templates.Delimiters[1]
	}

	return &goTemplateEngine{
		cfg:            cfg,
		logger:         logger,
		leftDelimiter:  leftDelimiter,
		rightDelimiter: rightDelimiter,
	}, nil
}

func (e *goTemplateEngine) Name() string {
	return EngineGoTemplate
}

func (e *goTemplateEngine) RenderFile(root string, relPath string, tmplData map[string]any) (string, error) {
	content, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errUtils.Build(errUtils.ErrTemplateNotFound).
				WithCause(err).
				WithContext("template", relPath).
				Err()
		}
		return "", errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("template", relPath).
			Err()
	}

	return e.RenderString(relPath, string(content), tmplData)
}

func (e *goTemplateEngine) RenderString(name string, content string, tmplData map[string]any) (string, error) {
	e.logger.Trace("Rendering template", "engine", e.Name(), "template", name)

	funcs, cancel, err := e.templateFuncs()
	if err != nil {
		return "", err
	}
	defer cancel()

	for k, v := range e.cfg.Templates.Env {
		if err = os.Setenv(k, v); err != nil {
			return "", errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("env", k).Err()
		}
	}

	t := template.New(name).Funcs(funcs).Delims(e.leftDelimiter, e.rightDelimiter)

	// Control the behavior when a map is indexed with a missing key.
	t.Option("missingkey=error")

	t, err = t.Parse(content)
	if err != nil {
		builder := errUtils.Build(errUtils.ErrTemplateSyntax).
			WithCause(err).
			WithContext("template", name)
		if line := templateErrorLine(err); line > 0 {
			builder = builder.WithContext("line", line)
		}
		return "", builder.Err()
	}

	var res bytes.Buffer
	if err = t.Execute(&res, tmplData); err != nil {
		if strings.Contains(err.Error(), "map has no entry for key") {
			return "", errUtils.Build(errUtils.ErrUndefinedReference).
				WithCause(err).
				WithContext("template", name).
				Err()
		}
		return "", errUtils.Build(errUtils.ErrTemplateEngine).
			WithCause(err).
			WithContext("template", name).
			Err()
	}

	return res.String(), nil
}

// templateFuncs assembles the Gomplate and Sprig function maps per the configuration.
// The returned cancel function releases the Gomplate datasource context.
func (e *goTemplateEngine) templateFuncs() (map[string]any, func(), error) {
	funcs := make(map[string]any)
	cancel := func() {}

	if e.cfg.Templates.Gomplate.Enabled {
		timeoutSeconds, _ := lo.Coalesce(e.cfg.Templates.Gomplate.Timeout, defaultGomplateTimeoutSeconds)
		ctx, cancelFunc := context.WithTimeout(context.TODO(), time.Second*time.Duration(timeoutSeconds))
		cancel = cancelFunc

		d := data.Data{Ctx: ctx}

		for k, v := range e.cfg.Templates.Gomplate.Datasources {
			if _, err := d.DefineDatasource(k, v.Url); err != nil {
				cancelFunc()
				return nil, nil, errUtils.Build(errUtils.ErrTemplateEngine).
					WithCause(err).
					WithContext("datasource", k).
					Err()
			}
			if len(v.Headers) > 0 {
				d.Sources[k].Header = v.Headers
			}
		}

		funcs = lo.Assign(funcs, gomplate.CreateFuncs(ctx, &d))
	}

	if e.cfg.Templates.Sprig.Enabled {
		funcs = lo.Assign(funcs, sprig.FuncMap())
	}

	return funcs, cancel, nil
}

func templateErrorLine(err error) int {
	matches := templateErrorLinePattern.FindStringSubmatch(err.Error())
	if len(matches) == 2 {
		if line, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return line
		}
	}
	return 0
}

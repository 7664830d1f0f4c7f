package exec

import (
	"os"
	"path/filepath"
	"strings"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
	"github.com/terraforge/terraforge/pkg/templater"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// renderTemplates renders every marker-suffixed file under inputRoot into the
// mirrored location under outputRoot, stripping the marker (and appending the
// configured output suffix) from each name. The whole merged configuration is
// visible to every template. One broken template never stops the pass: its
// failure is recorded in the tally and the loop moves on.
func renderTemplates(
	cfg *schema.TerraforgeConfiguration,
	logger *log.Logger,
	engine templater.Engine,
	inputRoot string,
	outputRoot string,
	merged map[string]any,
) (Tally, error) {
	if err := validatePassRoots(inputRoot, outputRoot); err != nil {
		return Tally{}, err
	}

	templates, err := discoverTemplates(inputRoot, cfg.Templates.Marker)
	if err != nil {
		return Tally{}, err
	}

	logger.Debug("Discovered templates", "count", len(templates), "marker", cfg.Templates.Marker, "engine", engine.Name())

	var tally Tally
	for _, templatePath := range templates {
		res := renderOneTemplate(cfg, engine, inputRoot, outputRoot, templatePath, merged)

		switch res.outcome {
		case outcomeSucceeded:
			logger.Debug("Rendered template", "template", res.relPath)
		case outcomeSkipped:
			logger.Debug("Skipped template with empty render", "template", res.relPath)
		case outcomeFailed:
			logger.Error("Failed to render template", "template", res.relPath, "err", res.err)
		}

		tally.record(res)
	}

	return tally, nil
}

// renderOneTemplate is the isolated per-file operation: derive the output
// path, render, honor skip-empty, write. Every failure is classified and
// returned in the result, never propagated.
func renderOneTemplate(
	cfg *schema.TerraforgeConfiguration,
	engine templater.Engine,
	inputRoot string,
	outputRoot string,
	templatePath string,
	merged map[string]any,
) fileResult {
	relPath, err := filepath.Rel(inputRoot, templatePath)
	if err != nil {
		return fileResult{
			relPath: templatePath,
			outcome: outcomeFailed,
			err:     errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("file", templatePath).Err(),
		}
	}
	relPath = filepath.ToSlash(relPath)

	outputPath := deriveOutputPath(cfg, outputRoot, relPath)
	if err := u.EnsureDir(outputPath); err != nil {
		return fileResult{
			relPath: relPath,
			outcome: outcomeFailed,
			err:     errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("dir", filepath.Dir(outputPath)).Err(),
		}
	}

	rendered, err := engine.RenderFile(inputRoot, relPath, merged)
	if err != nil {
		return fileResult{relPath: relPath, outcome: outcomeFailed, err: err}
	}

	if cfg.Templates.SkipEmpty && strings.TrimSpace(rendered) == "" {
		return fileResult{relPath: relPath, outcome: outcomeSkipped}
	}

	if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
		return fileResult{
			relPath: relPath,
			outcome: outcomeFailed,
			err:     errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("file", outputPath).Err(),
		}
	}

	return fileResult{relPath: relPath, outcome: outcomeSucceeded}
}

// deriveOutputPath maps a template's input-relative path onto the output tree:
// the marker suffix is stripped and the configured output suffix appended.
func deriveOutputPath(cfg *schema.TerraforgeConfiguration, outputRoot, relPath string) string {
	outName := strings.TrimSuffix(relPath, cfg.Templates.Marker)
	if cfg.Templates.OutputSuffix != "" {
		outName += cfg.Templates.OutputSuffix
	}
	return filepath.Join(outputRoot, outName)
}

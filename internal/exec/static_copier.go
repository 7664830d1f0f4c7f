package exec

import (
	"path/filepath"

	cp "github.com/otiai10/copy"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// copyStaticFiles mirrors every non-template file under inputRoot into
// outputRoot byte for byte. The candidate set is the set difference between
// all regular files and the marker-suffixed template set, so templates are
// never double-processed. Per-file copy failures are recorded and skipped
// over, matching the render pass.
func copyStaticFiles(
	cfg *schema.TerraforgeConfiguration,
	logger *log.Logger,
	inputRoot string,
	outputRoot string,
) (Tally, error) {
	if err := validatePassRoots(inputRoot, outputRoot); err != nil {
		return Tally{}, err
	}

	allFiles, err := u.GetGlobMatches(filepath.Join(inputRoot, "**", "*"))
	if err != nil {
		return Tally{}, errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("dir", inputRoot).
			Err()
	}

	templates, err := discoverTemplates(inputRoot, cfg.Templates.Marker)
	if err != nil {
		return Tally{}, err
	}

	templateSet := make(map[string]struct{}, len(templates))
	for _, templatePath := range templates {
		templateSet[templatePath] = struct{}{}
	}

	var tally Tally
	for _, srcPath := range allFiles {
		if _, isTemplate := templateSet[srcPath]; isTemplate {
			continue
		}

		res := copyOneFile(inputRoot, outputRoot, srcPath)

		switch res.outcome {
		case outcomeSucceeded:
			logger.Debug("Copied file", "file", res.relPath)
		case outcomeFailed:
			logger.Error("Failed to copy file", "file", res.relPath, "err", res.err)
		}

		tally.record(res)
	}

	return tally, nil
}

// copyOneFile copies one static file to its mirrored output path, overwriting
// any previous output.
func copyOneFile(inputRoot, outputRoot, srcPath string) fileResult {
	relPath, err := filepath.Rel(inputRoot, srcPath)
	if err != nil {
		return fileResult{
			relPath: srcPath,
			outcome: outcomeFailed,
			err:     errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("file", srcPath).Err(),
		}
	}
	relPath = filepath.ToSlash(relPath)

	dstPath := filepath.Join(outputRoot, relPath)
	if err := u.EnsureDir(dstPath); err != nil {
		return fileResult{
			relPath: relPath,
			outcome: outcomeFailed,
			err:     errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("dir", filepath.Dir(dstPath)).Err(),
		}
	}

	if err := cp.Copy(srcPath, dstPath); err != nil {
		return fileResult{
			relPath: relPath,
			outcome: outcomeFailed,
			err:     errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("file", srcPath).Err(),
		}
	}

	return fileResult{relPath: relPath, outcome: outcomeSucceeded}
}

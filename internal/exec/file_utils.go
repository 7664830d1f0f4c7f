package exec

import (
	"fmt"
	"os"
	"path/filepath"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// validatePassRoots checks the structural preconditions shared by the render
// and copy passes: the input root must be an existing directory and the output
// root must be creatable. Failures here are fatal, unlike per-file errors.
func validatePassRoots(inputRoot, outputRoot string) error {
	isDir, err := u.IsDirectory(inputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return errUtils.Build(errUtils.ErrNotFound).
				WithCause(fmt.Errorf("input directory %s does not exist", inputRoot)).
				WithHint("Check that the input directory exists inside the repository").
				WithContext("dir", inputRoot).
				Err()
		}
		return errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("dir", inputRoot).
			Err()
	}
	if !isDir {
		return errUtils.Build(errUtils.ErrNotFound).
			WithCause(fmt.Errorf("input path %s is not a directory", inputRoot)).
			WithContext("dir", inputRoot).
			Err()
	}

	if err := os.MkdirAll(outputRoot, os.ModePerm); err != nil {
		return errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("dir", outputRoot).
			Err()
	}

	return nil
}

// discoverTemplates returns every file under inputRoot whose name carries the
// marker suffix, at any depth.
func discoverTemplates(inputRoot, marker string) ([]string, error) {
	pattern := filepath.Join(inputRoot, "**", "*"+marker)

	matches, err := u.GetGlobMatches(pattern)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("pattern", pattern).
			Err()
	}

	return matches, nil
}

// removeTempDir cleans up a fetched source tree. Cleanup failures are logged,
// never fatal.
func removeTempDir(logger *log.Logger, path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		logger.Warn("Failed to remove temp directory", "dir", path, "err", err)
	}
}

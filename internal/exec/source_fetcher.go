package exec

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/downloader"
	"github.com/terraforge/terraforge/pkg/git"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// Supported source types.
const (
	sourceTypeLocal  = "local"
	sourceTypeGit    = "git"
	sourceTypeRemote = "remote"
)

// fetchTimeout bounds remote downloads; git clones run without a deadline,
// matching the clone library's own behavior.
const fetchTimeout = 10 * time.Minute

// fetchSource materializes the input tree: in place for local sources, into a
// fresh temp directory for git and remote sources. It returns the effective
// input root and the temp directory the caller must clean up ("" for local).
func fetchSource(cfg *schema.TerraforgeConfiguration, logger *log.Logger) (string, string, error) {
	sourceType := cfg.Source.Type
	if sourceType == "" {
		sourceType = sourceTypeLocal
	}

	switch sourceType {
	case sourceTypeLocal:
		return cfg.InputDir, "", nil

	case sourceTypeGit:
		tempDir, err := makeFetchDir()
		if err != nil {
			return "", "", err
		}

		if err := git.CloneRepo(&cfg.Source, tempDir, logger); err != nil {
			return "", tempDir, err
		}

		inputRoot, err := fetchedInputRoot(tempDir, cfg.InputDir)
		return inputRoot, tempDir, err

	case sourceTypeRemote:
		if err := downloader.ValidateURI(cfg.Source.Url); err != nil {
			return "", "", err
		}

		tempDir, err := makeFetchDir()
		if err != nil {
			return "", "", err
		}

		// Fetch into a fresh subpath: the file getter refuses to materialize
		// a directory source over an existing destination.
		fetchDst := filepath.Join(tempDir, "source")

		logger.Debug("Downloading source", "url", cfg.Source.Url, "dir", fetchDst)

		fd := downloader.NewFileDownloader(downloader.NewGoGetterClientFactory())
		if err := fd.Fetch(cfg.Source.Url, fetchDst, downloader.ClientModeAny, fetchTimeout); err != nil {
			return "", tempDir, err
		}

		inputRoot, err := fetchedInputRoot(fetchDst, cfg.InputDir)
		return inputRoot, tempDir, err

	default:
		return "", "", errUtils.Build(errUtils.ErrInvalidSource).
			WithCause(fmt.Errorf("unsupported source type '%s'", sourceType)).
			WithHintf("Supported source types are: %s, %s, %s", sourceTypeLocal, sourceTypeGit, sourceTypeRemote).
			Err()
	}
}

func makeFetchDir() (string, error) {
	tempDir, err := os.MkdirTemp("", "terraforge-*")
	if err != nil {
		return "", errUtils.Build(errUtils.ErrIO).WithCause(err).Err()
	}
	return tempDir, nil
}

// fetchedInputRoot resolves the configured input directory inside a fetched
// tree and requires it to exist.
func fetchedInputRoot(tempDir, inputDir string) (string, error) {
	inputRoot := filepath.Join(tempDir, inputDir)

	if isDir, err := u.IsDirectory(inputRoot); err != nil || !isDir {
		return "", errUtils.Build(errUtils.ErrNotFound).
			WithCause(fmt.Errorf("input directory '%s' not found in the fetched source", inputDir)).
			WithHint("Check that the input directory exists inside the repository").
			WithContext("dir", inputRoot).
			Err()
	}

	return inputRoot, nil
}

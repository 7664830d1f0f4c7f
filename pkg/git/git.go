package git

import (
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
)

// CloneRepo clones the repository described by `source` into `dest`.
// When a branch is configured, only that branch is fetched and checked out;
// otherwise the clone follows the HEAD of the default branch.
func CloneRepo(source *schema.Source, dest string, logger *log.Logger) error {
	if source == nil || source.Url == "" {
		return errUtils.Build(errUtils.ErrInvalidSource).
			WithHint("Set 'source.url' to the repository to clone").
			Err()
	}

	cloneOptions := git.CloneOptions{
		URL:        source.Url,
		NoCheckout: false,
	}

	if source.Branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(source.Branch)
		cloneOptions.SingleBranch = true
	}

	if logger.GetLevel() <= log.DebugLevel {
		cloneOptions.Progress = os.Stdout
	}

	if err := configureAuth(source, &cloneOptions); err != nil {
		return err
	}

	logger.Debug("Cloning repository", "url", source.Url, "dir", dest)

	if _, err := git.PlainClone(dest, false, &cloneOptions); err != nil {
		return errUtils.Build(errUtils.ErrDownload).
			WithCause(err).
			WithContext("url", source.Url).
			WithHint("Check that the repository URL, branch and credentials are correct").
			Err()
	}

	return nil
}

// configureAuth sets up clone credentials: a token for https remotes,
// or an SSH key (optionally passphrase-protected) for ssh remotes.
func configureAuth(source *schema.Source, cloneOptions *git.CloneOptions) error {
	if source.Token != "" {
		cloneOptions.Auth = &http.BasicAuth{
			Username: "git",
			Password: source.Token,
		}
		return nil
	}

	if source.SshKeyPath == "" {
		return nil
	}

	sshKeyContent, err := os.ReadFile(source.SshKeyPath)
	if err != nil {
		return errUtils.Build(errUtils.ErrNotFound).
			WithCause(err).
			WithContext("ssh_key_path", source.SshKeyPath).
			Err()
	}

	sshPublicKey, err := ssh.NewPublicKeys("git", sshKeyContent, source.SshKeyPassword)
	if err != nil {
		return errUtils.Build(errUtils.ErrInvalidSource).
			WithCause(err).
			WithContext("ssh_key_path", source.SshKeyPath).
			WithHint("Check that the SSH key is valid and the passphrase is correct").
			Err()
	}

	cloneOptions.Auth = sshPublicKey
	return nil
}

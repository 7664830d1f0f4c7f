package downloader

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-getter"

	errUtils "github.com/terraforge/terraforge/errors"
)

const maxURILength = 2048

// goGetterClientFactory builds `go-getter` clients, which support every
// go-getter source (https, git::, s3, gcs, archives with auto-unpack).
type goGetterClientFactory struct{}

// NewGoGetterClientFactory returns the production ClientFactory backed by `go-getter`.
func NewGoGetterClientFactory() ClientFactory {
	return &goGetterClientFactory{}
}

func (f *goGetterClientFactory) NewClient(ctx context.Context, src, dest string, mode ClientMode) (DownloadClient, error) {
	getterMode, err := toGetterClientMode(mode)
	if err != nil {
		return nil, err
	}

	// The destination directory is created if it doesn't exist.
	return &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dest,
		Mode: getterMode,
	}, nil
}

func toGetterClientMode(mode ClientMode) (getter.ClientMode, error) {
	switch mode {
	case ClientModeAny:
		return getter.ClientModeAny, nil
	case ClientModeFile:
		return getter.ClientModeFile, nil
	case ClientModeDir:
		return getter.ClientModeDir, nil
	default:
		return getter.ClientModeInvalid, fmt.Errorf("%w: invalid client mode %d", errUtils.ErrDownload, mode)
	}
}

// ValidateURI validates URIs before they are handed to the download client.
func ValidateURI(uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: URI cannot be empty", errUtils.ErrInvalidSource)
	}
	if len(uri) > maxURILength {
		return fmt.Errorf("%w: URI exceeds maximum length of %d characters", errUtils.ErrInvalidSource, maxURILength)
	}
	if strings.Contains(uri, "..") {
		return fmt.Errorf("%w: URI cannot contain path traversal sequences", errUtils.ErrInvalidSource)
	}
	if strings.Contains(uri, " ") {
		return fmt.Errorf("%w: URI cannot contain spaces", errUtils.ErrInvalidSource)
	}
	if strings.Contains(uri, "://") {
		scheme := strings.Split(uri, "://")[0]
		if !IsValidScheme(scheme) {
			return fmt.Errorf("%w: unsupported URI scheme: %s", errUtils.ErrInvalidSource, scheme)
		}
	}
	return nil
}

// IsValidScheme checks if the URL scheme is valid.
func IsValidScheme(scheme string) bool {
	validSchemes := map[string]bool{
		"http":       true,
		"https":      true,
		"git":        true,
		"ssh":        true,
		"file":       true,
		"s3":         true,
		"gcs":        true,
		"git::https": true,
		"git::ssh":   true,
	}
	return validSchemes[scheme]
}

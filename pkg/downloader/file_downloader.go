package downloader

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	errUtils "github.com/terraforge/terraforge/errors"
)

const fetchDataTimeout = 30 * time.Second

// fileDownloader handles downloading files and directories from various sources
// without exposing the underlying implementation.
type fileDownloader struct {
	clientFactory     ClientFactory
	tempPathGenerator func() string
	fileReader        func(string) ([]byte, error)
}

// NewFileDownloader initializes a FileDownloader with dependency injection.
func NewFileDownloader(factory ClientFactory) FileDownloader {
	return &fileDownloader{
		clientFactory:     factory,
		tempPathGenerator: func() string { return filepath.Join(os.TempDir(), uuid.New().String()) },
		fileReader:        os.ReadFile,
	}
}

// Fetch fetches content from a given source and saves it to the destination.
func (fd *fileDownloader) Fetch(src, dest string, mode ClientMode, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := fd.clientFactory.NewClient(ctx, src, dest, mode)
	if err != nil {
		return errUtils.Build(errUtils.ErrDownload).
			WithCause(err).
			WithContext("url", src).
			WithHint("Check that the URL format is valid").
			Err()
	}

	if err := client.Get(); err != nil {
		return errUtils.Build(errUtils.ErrDownload).
			WithCause(err).
			WithContext("url", src).
			WithHint("Check network connectivity and verify the URL is accessible").
			Err()
	}
	return nil
}

// FetchData fetches content from a given source and returns it as a byte slice.
func (fd *fileDownloader) FetchData(src string) ([]byte, error) {
	filePath := fd.tempPathGenerator()
	defer os.Remove(filePath)

	if err := fd.Fetch(src, filePath, ClientModeFile, fetchDataTimeout); err != nil {
		return nil, err
	}

	return fd.fileReader(filePath)
}

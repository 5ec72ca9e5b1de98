package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	apperrors "notegram/internal/errors"
	"notegram/internal/models"
)

// URLResolver resolves an opaque media reference to a time-limited
// download URL. Implemented by the bot transport.
type URLResolver interface {
	ResolveDownloadURL(ctx context.Context, fileID string) (string, error)
}

// Fetcher downloads message attachments into a flat local directory.
// Every fetch is a single attempt; a failure removes the partial file and
// the caller omits the item from the record.
type Fetcher struct {
	dir        string
	resolver   URLResolver
	httpClient *http.Client
}

// NewFetcher creates the attachments directory if needed and returns a
// fetcher bound to it.
func NewFetcher(dir string, resolver URLResolver, timeout time.Duration) (*Fetcher, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	return &Fetcher{
		dir:        dir,
		resolver:   resolver,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch resolves the media reference and streams the remote bytes to a
// uniquely named file. On success it returns the attachment result; on any
// failure the partially written file is gone and an error comes back.
func (f *Fetcher) Fetch(ctx context.Context, item models.MediaItem, arrival time.Time) (*models.AttachmentResult, error) {
	url, err := f.resolver.ResolveDownloadURL(ctx, item.FileID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeMediaDownload, "failed to resolve download URL").
			WithContext("kind", string(item.Kind))
	}

	storedName := StoredFileName(item, arrival)
	if err := f.download(ctx, url, filepath.Join(f.dir, storedName)); err != nil {
		return nil, err
	}

	return &models.AttachmentResult{
		StoredName:   storedName,
		Kind:         item.Kind,
		OriginalName: item.FileName,
	}, nil
}

func (f *Fetcher) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeMediaDownload, "failed to create download request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "attachment download timed out")
		}
		return apperrors.Wrap(err, apperrors.ErrCodeMediaDownload, "failed to download attachment")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.New(apperrors.ErrCodeMediaDownload, fmt.Sprintf("download failed with status: %d", resp.StatusCode))
	}

	out, err := os.Create(path) // #nosec G304 - path built from the configured attachments dir and a generated name
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeMediaDownload, "failed to create attachment file")
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return apperrors.Wrap(err, apperrors.ErrCodeMediaDownload, "failed to save attachment")
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return apperrors.Wrap(err, apperrors.ErrCodeMediaDownload, "failed to finalize attachment file")
	}

	return nil
}

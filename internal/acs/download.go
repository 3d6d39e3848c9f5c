package acs

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"
)

// ensureLocal guarantees the resolved file exists locally, downloading and
// extracting it when permitted. With download disabled a cache miss is a
// terminal error and no network request is made.
func (ds *DataSource) ensureLocal(ctx context.Context, res Resolution, download bool) error {
	if _, err := os.Stat(res.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", res.Path, err)
	}

	if !download {
		return newFileNotFoundError(res.Path)
	}
	return ds.downloadArchive(ctx, res)
}

// downloadArchive fetches the state's ZIP archive and extracts the target
// CSV member to the cache path. Re-downloading overwrites idempotently.
func (ds *DataSource) downloadArchive(ctx context.Context, res Resolution) error {
	payload, err := ds.get(ctx, res.URL)
	if err != nil {
		return err
	}

	archive, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return newDownloadError(res.URL, "response is not a valid ZIP archive", err)
	}

	member := filepath.Base(res.Path)
	for _, f := range archive.File {
		if f.Name == member {
			return extractMember(f, res.Path)
		}
	}
	return newDownloadError(res.URL, fmt.Sprintf("archive has no member %q", member), nil)
}

// get issues a GET request and returns the response body. Transport errors
// and 5xx responses are retried within the client's budget; anything that
// survives the budget is reported as a download error.
func (ds *DataSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newDownloadError(url, "build request", err)
	}

	resp, err := ds.client.Do(req)
	if err != nil {
		return nil, newDownloadError(url, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newDownloadError(url, fmt.Sprintf("unexpected status %s", resp.Status), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newDownloadError(url, "read response body", err)
	}
	return body, nil
}

func extractMember(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive member %s: %w", f.Name, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return out.Close()
}

package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"layout-switcher/internal/logger"
)

// downloadTimeout bounds a whole layout pack download, body included.
const downloadTimeout = 2 * time.Minute

var httpClient = &http.Client{Timeout: downloadTimeout}

// IsURL reports whether src should be fetched over HTTP before extraction.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Download fetches rawURL into a temp file in dir and returns its path. The temp file
// name ends with the URL's base name so the archive type can be detected from it.
// The caller removes the file.
func Download(ctx context.Context, rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to GET %s: %w", rawURL, err)
	}
	// Ensure the response body stream is closed when the function returns
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Debug("[DEBUG] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s failed: HTTP status %d", rawURL, resp.StatusCode)
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." {
		base = "download"
	}
	out, err := os.CreateTemp(dir, "layout-pack-*-"+base)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to close %s: %w", out.Name(), err)
	}

	logger.Debug("[DEBUG] Downloaded layout pack to: %s\n", out.Name())
	return out.Name(), nil
}

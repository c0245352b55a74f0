package archive

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"layout-switcher/internal/logger"
)

// Import unpacks a layout pack into dir. src is a local archive path or an http(s) URL;
// downloads go to a temp file that is removed afterwards.
func Import(ctx context.Context, src, dir string, opts Options) (Result, error) {
	if !IsURL(src) {
		return Extract(src, dir, opts)
	}

	// Refuse unsupported packs before fetching anything.
	if u, err := url.Parse(src); err == nil && !Supported(u.Path) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, src)
	}

	logger.Debug("[DEBUG] Fetching layout pack from %s\n", src)
	tmp, err := Download(ctx, src, os.TempDir())
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := os.Remove(tmp); err != nil {
			logger.Debug("[DEBUG] Failed to remove %s: %v\n", tmp, err)
		}
	}()
	return Extract(tmp, dir, opts)
}

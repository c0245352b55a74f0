package switcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"layout-switcher/internal/logger"
)

// copyFile copies src over dst byte for byte, preserving the source's permissions and
// modification time. The data is written to a temp file next to dst and renamed into
// place, so dst is either the old file or the complete new one.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source failed: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	// Write through a symlinked destination; the rename must land on the link's target.
	if resolved, err := filepath.EvalSymlinks(dst); err == nil {
		dst = resolved
	}

	// Ensure the destination directory exists
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file failed: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file failed: %w", err)
	}

	if err = os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod failed: %w", err)
	}
	if err = os.Chtimes(tmpName, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("chtimes failed: %w", err)
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("rename into place failed: %w", err)
	}

	logger.Debug("[DEBUG] Copied %s -> %s (%d bytes)\n", src, dst, info.Size())
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Package archive unpacks layout packs: archives of preset files, optionally with their
// own registry, that are dropped into the layouts directory.
package archive

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
	"layout-switcher/internal/logger"
)

// ErrUnsupported is returned for files whose extension is not a known archive format.
var ErrUnsupported = errors.New("unsupported archive format")

// Options control how entries are written.
type Options struct {
	Overwrite bool // replace files that already exist in the destination
}

// Result lists the destination paths touched by Extract.
type Result struct {
	Written []string
	Skipped []string // already present and Overwrite was false
}

// Supported reports whether name has an extension Extract understands.
func Supported(name string) bool {
	return format(name) != ""
}

func format(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z"} {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

// Extract routes to the extraction function for the archive type of src and unpacks it
// into dest. Entries that would land outside dest are rejected.
func Extract(src, dest string, opts Options) (Result, error) {
	ext := format(src)
	if ext == "" {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, src)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return Result{}, fmt.Errorf("cannot create destination %s: %w", dest, err)
	}
	x := &extractor{dest: dest, opts: opts}

	var err error
	switch ext {
	case ".zip":
		logger.Debug("[DEBUG] compression type is zip\n")
		err = x.zip(src)
	case ".7z":
		logger.Debug("[DEBUG] compression type is .7z\n")
		err = x.sevenZip(src)
	default:
		logger.Debug("[DEBUG] compression type is %s\n", ext)
		err = x.tar(src, ext)
	}
	return x.res, err
}

type extractor struct {
	dest string
	opts Options
	res  Result
}

// tar handles tar and compressed tar variants
func (x *extractor) tar(src, ext string) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, x.dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch ext {
	case ".tar.gz", ".tgz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case ".tar.bz2":
		reader = bzip2.NewReader(f)
	case ".tar.xz":
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil // End of archive
		}
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := x.mkdir(hdr.Name); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := x.write(hdr.Name, fs.FileMode(hdr.Mode), tr); err != nil {
				return err
			}
		default:
			logger.Debug("[DEBUG] skipping non-regular entry %s\n", hdr.Name)
		}
	}
}

// zip extracts a .zip archive
func (x *extractor) zip(src string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			if err := x.mkdir(f.Name); err != nil {
				return err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			logger.Debug("[DEBUG] skipping non-regular entry %s\n", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = x.write(f.Name, f.Mode(), rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// sevenZip handles .7z extraction using the sevenzip library
func (x *extractor) sevenZip(src string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			if err := x.mkdir(f.Name); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = x.write(f.Name, f.Mode(), rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// target maps an archive entry name to a path under dest.
func (x *extractor) target(name string) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(name, "./"))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("archive entry %q escapes the destination", name)
	}
	return filepath.Join(x.dest, rel), nil
}

func (x *extractor) mkdir(name string) error {
	path, err := x.target(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0755)
}

func (x *extractor) write(name string, mode fs.FileMode, r io.Reader) error {
	path, err := x.target(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !x.opts.Overwrite {
		logger.Debug("[DEBUG] %s exists, skipping\n", path)
		x.res.Skipped = append(x.res.Skipped, path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	x.res.Written = append(x.res.Written, path)
	return nil
}

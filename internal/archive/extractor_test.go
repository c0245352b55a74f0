package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type entry struct {
	name string
	body string
}

func writeZip(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeTarGz(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0644, Size: int64(len(e.body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

var pack = []entry{
	{name: "layout_config.json", body: `{"layouts": {}}`},
	{name: "presets/wide.json", body: `{"panels": ["wide"]}`},
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if string(got) != want {
		t.Fatalf("%s = %q, want %q", path, got, want)
	}
}

func TestExtractZip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "pack.zip")
	writeZip(t, src, pack)
	dest := t.TempDir()

	res, err := Extract(src, dest, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Written) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	assertFile(t, filepath.Join(dest, "presets", "wide.json"), `{"panels": ["wide"]}`)
}

func TestExtractTarGz(t *testing.T) {
	src := filepath.Join(t.TempDir(), "pack.tar.gz")
	writeTarGz(t, src, pack)
	dest := t.TempDir()

	if _, err := Extract(src, dest, Options{}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	assertFile(t, filepath.Join(dest, "layout_config.json"), `{"layouts": {}}`)
}

func TestExtractSkipsExistingUnlessOverwrite(t *testing.T) {
	src := filepath.Join(t.TempDir(), "pack.zip")
	writeZip(t, src, pack)
	dest := t.TempDir()
	existing := filepath.Join(dest, "layout_config.json")
	if err := os.WriteFile(existing, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := Extract(src, dest, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != existing {
		t.Fatalf("Skipped = %v, want [%s]", res.Skipped, existing)
	}
	assertFile(t, existing, "mine")

	if _, err := Extract(src, dest, Options{Overwrite: true}); err != nil {
		t.Fatalf("Extract overwrite: %v", err)
	}
	assertFile(t, existing, `{"layouts": {}}`)
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	src := filepath.Join(t.TempDir(), "evil.zip")
	writeZip(t, src, []entry{{name: "../evil.json", body: "x"}})
	parent := t.TempDir()
	dest := filepath.Join(parent, "layouts")

	_, err := Extract(src, dest, Options{})
	if err == nil {
		t.Fatal("expected an error for an entry outside the destination")
	}
	if _, err := os.Stat(filepath.Join(parent, "evil.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("escaping entry was written: %v", err)
	}
}

const artistLayout = `[{"id":"viewport_0","title":"Viewport","position":[0,0],"size":[1920,1080],"is_visible":true}]` + "\n"

// TestExtract unpacks the committed fixtures. Each holds layouts/ and layouts/artist.json.
func TestExtract(t *testing.T) {
	for _, name := range []string{"pack.tar", "pack.tar.bz2", "pack.tar.xz", "pack.7z"} {
		t.Run(name, func(t *testing.T) {
			dest := t.TempDir()
			res, err := Extract(filepath.Join("testdata", name), dest, Options{})
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			want := filepath.Join(dest, "layouts", "artist.json")
			if len(res.Written) != 1 || res.Written[0] != want {
				t.Fatalf("Written = %v, want [%s]", res.Written, want)
			}
			assertFile(t, want, artistLayout)

			info, err := os.Stat(want)
			if err != nil {
				t.Fatal(err)
			}
			if !info.Mode().IsRegular() {
				t.Fatalf("mode = %v, want a regular file", info.Mode())
			}
		})
	}
}

func TestExtractUnsupported(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "layouts")
	_, err := Extract("pack.rar", dest, Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("destination created for an unsupported archive: %v", err)
	}
	if Supported("pack.rar") || !Supported("PACK.TAR.XZ") || !Supported("pack.7z") {
		t.Fatal("Supported() returned unexpected results")
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packs/pack.zip" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("zip-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, err := Download(context.Background(), srv.URL+"/packs/pack.zip", dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !strings.HasSuffix(path, "pack.zip") || filepath.Dir(path) != dir {
		t.Fatalf("unexpected download path %s", path)
	}
	assertFile(t, path, "zip-bytes")

	if _, err := Download(context.Background(), srv.URL+"/missing.zip", dir); err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}

func TestDownloadTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	saved := httpClient
	httpClient = &http.Client{Timeout: 50 * time.Millisecond}
	defer func() { httpClient = saved }()

	start := time.Now()
	if _, err := Download(context.Background(), srv.URL+"/pack.zip", t.TempDir()); err == nil {
		t.Fatal("expected a timeout error from a stalled server")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Download took %v despite the client timeout", elapsed)
	}
}

func TestImportRejectsUnsupportedURLWithoutFetching(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	_, err := Import(context.Background(), srv.URL+"/pack.rar", t.TempDir(), Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("server was hit %d times", hits)
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com/pack.zip") || !IsURL("http://x/y.7z") || IsURL("./pack.zip") {
		t.Fatal("IsURL returned unexpected results")
	}
}

func TestImportFromURL(t *testing.T) {
	src := filepath.Join(t.TempDir(), "pack.zip")
	writeZip(t, src, pack)
	body, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dest := t.TempDir()
	res, err := Import(context.Background(), srv.URL+"/pack.zip", dest, Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Written) != 2 {
		t.Fatalf("Written = %v", res.Written)
	}
	assertFile(t, filepath.Join(dest, "presets", "wide.json"), `{"panels": ["wide"]}`)
}

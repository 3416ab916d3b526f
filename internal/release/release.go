// Package release locates and downloads prebuilt webui releases.
package release

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/mod/semver"

	"github.com/agiangrant/webui/internal/ffi"
)

// DefaultVersion is the webui release the generated bindings match.
const DefaultVersion = "2.5.0-beta.2"

// Nightly is the moving pre-release tag published by webui.
const Nightly = "nightly"

var (
	// BaseURL hosts release archives; tests point it at a local server.
	BaseURL = "https://github.com/webui-dev/webui/releases/download"
	// SourceURL hosts tagged source files such as the C header.
	SourceURL = "https://github.com/webui-dev/webui/raw/refs/tags"
)

// ErrInvalidVersion is returned for a tag that is neither semver nor nightly.
var ErrInvalidVersion = errors.New("invalid webui release version")

// ValidateVersion checks that version names a release tag. Tags carry no
// "v" prefix upstream.
func ValidateVersion(version string) error {
	if version == Nightly {
		return nil
	}
	if !semver.IsValid("v" + strings.TrimPrefix(version, "v")) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	return nil
}

// ArchiveURL returns the download URL of the release archive for t.
func ArchiveURL(version string, t ffi.Target) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}
	asset, err := t.Asset()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s.zip", BaseURL, strings.TrimPrefix(version, "v"), asset), nil
}

// HeaderURL returns the URL of include/webui.h at version.
func HeaderURL(version string) (string, error) {
	if err := ValidateVersion(version); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/include/webui.h", SourceURL, strings.TrimPrefix(version, "v")), nil
}

// Download fetches url into memory. Any non-2xx status is an error.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

// Extract unpacks a zip archive into dir and returns the written paths.
// Entries escaping dir are rejected.
func Extract(data []byte, dir string) (paths []string, err error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		dst := filepath.Join(root, filepath.FromSlash(f.Name))
		if dst != root && !strings.HasPrefix(dst, root+string(os.PathSeparator)) {
			return paths, fmt.Errorf("archive entry %q escapes %s", f.Name, dir)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				return paths, err
			}
			continue
		}
		if err := extractFile(f, dst); err != nil {
			return paths, err
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

func extractFile(f *zip.File, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() { err = multierr.Append(err, src.Close()) }()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return nil
}

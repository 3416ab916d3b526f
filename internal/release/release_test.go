package release

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/webui/internal/ffi"
)

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"2.5.0-beta.2", true},
		{"2.4.2", true},
		{"v2.4.2", true},
		{Nightly, true},
		{"latest", false},
		{"2.5", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := ValidateVersion(tt.version)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidVersion)
			}
		})
	}
}

func TestURLs(t *testing.T) {
	u, err := ArchiveURL("2.5.0-beta.2", ffi.Target{GOOS: "linux", GOARCH: "amd64"})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/webui-dev/webui/releases/download/2.5.0-beta.2/webui-linux-gcc-x64.zip", u)

	u, err = HeaderURL("v2.5.0-beta.2")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/webui-dev/webui/raw/refs/tags/2.5.0-beta.2/include/webui.h", u)

	_, err = ArchiveURL("2.5.0-beta.2", ffi.Target{GOOS: "plan9", GOARCH: "amd64"})
	assert.ErrorIs(t, err, ffi.ErrUnsupportedTarget)

	_, err = ArchiveURL("latest", ffi.Target{GOOS: "linux", GOARCH: "amd64"})
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("payload"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	data, err := Download(context.Background(), srv.Client(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = Download(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Download(ctx, srv.Client(), srv.URL+"/ok")
	assert.Error(t, err)
}

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	data := zipOf(t, map[string]string{
		"webui-linux-gcc-x64/webui-2.so":      "ELF",
		"webui-linux-gcc-x64/include/webui.h": "header",
	})

	paths, err := Extract(data, dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	got, err := os.ReadFile(filepath.Join(dir, "webui-linux-gcc-x64", "webui-2.so"))
	require.NoError(t, err)
	assert.Equal(t, "ELF", string(got))
}

func TestExtractRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	data := zipOf(t, map[string]string{"../evil.so": "x"})

	_, err := Extract(data, filepath.Join(dir, "out"))
	assert.ErrorContains(t, err, "escapes")
	_, statErr := os.Stat(filepath.Join(dir, "evil.so"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractInvalidArchive(t *testing.T) {
	_, err := Extract([]byte("not a zip"), t.TempDir())
	assert.Error(t, err)
}

package download

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip produces an archive with the given path to content mapping.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func serveZip(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloadAndUnpack(t *testing.T) {
	payload := buildZip(t, map[string]string{
		"info.yml":          "name: foo\n",
		"hooks/startup.txt": "hello\n",
	})
	srv := serveZip(t, payload)

	m := NewManager(5 * time.Second)
	destDir := filepath.Join(t.TempDir(), "store", "foo", "v1.0.0")

	err := m.DownloadAndUnpack(context.Background(), srv.URL+"/foo-v1.0.0.zip", destDir)

	require.NoError(t, err)

	info, err := os.ReadFile(filepath.Join(destDir, "info.yml"))
	require.NoError(t, err)
	assert.Equal(t, "name: foo\n", string(info))

	hook, err := os.ReadFile(filepath.Join(destDir, "hooks", "startup.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(hook))

	// the staging file is cleaned up
	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestDownloadAndUnpackHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := NewManager(5 * time.Second)

	err := m.DownloadAndUnpack(context.Background(), srv.URL+"/missing.zip", t.TempDir())

	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestDownloadAndUnpackTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	m := NewManager(time.Second)

	err := m.DownloadAndUnpack(context.Background(), srv.URL+"/foo.zip", t.TempDir())

	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestDownloadAndUnpackCorruptArchive(t *testing.T) {
	// zip magic followed by garbage
	srv := serveZip(t, []byte("PK\x03\x04 truncated beyond repair"))

	m := NewManager(5 * time.Second)

	err := m.DownloadAndUnpack(context.Background(), srv.URL+"/foo.zip", t.TempDir())

	assert.Error(t, err)
}

func TestDownloadAndUnpackCancelledContext(t *testing.T) {
	payload := buildZip(t, map[string]string{"info.yml": "name: foo\n"})
	srv := serveZip(t, payload)

	m := NewManager(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.DownloadAndUnpack(ctx, srv.URL+"/foo.zip", t.TempDir())

	assert.Error(t, err)
}

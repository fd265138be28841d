// Package download materializes catalog payload attachments into local cache
// directories: it fetches the archive over HTTP and unpacks it in place.
package download

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archives"

	"github.com/glorpus-work/bundlestore/pkg/errors"
	"github.com/glorpus-work/bundlestore/pkg/fsutil"
)

// ErrDownloadFailed is returned when a payload cannot be retrieved.
var ErrDownloadFailed = fmt.Errorf("payload download failed")

// Manager downloads and unpacks payload archives.
type Manager struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a download manager with the given timeout.
func NewManager(timeout time.Duration) *Manager {
	return &Manager{
		client:    &http.Client{Timeout: timeout},
		userAgent: "bundlestore/1.0",
	}
}

// DownloadAndUnpack fetches the payload archive at payloadURL and unpacks its
// contents into destDir. The archive is staged in a temporary file that is
// removed afterwards.
func (m *Manager) DownloadAndUnpack(ctx context.Context, payloadURL string, destDir string) error {
	if err := os.MkdirAll(destDir, fsutil.DirModeDefault); err != nil {
		return errors.Wrap(err, "could not create destination directory")
	}

	tmpPath, err := m.fetchToTemp(ctx, payloadURL, destDir)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	return extractAll(ctx, tmpPath, destDir)
}

// fetchToTemp downloads the payload into a temp file next to the destination
// with ordered write, flush and close.
func (m *Manager) fetchToTemp(ctx context.Context, payloadURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, payloadURL, http.NoBody)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrDownloadFailed, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(destDir, "payload-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(err, "could not write payload")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(err, "could not sync payload")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "could not close payload")
	}
	return tmpPath, nil
}

// extractAll unpacks every entry of the archive at archivePath into destDir.
func extractAll(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return errors.Wrap(err, "failed to open payload archive")
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return extractEntry(fsys, path, destDir, d)
	})
}

// extractEntry writes a single archive entry below destDir.
func extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}

	targetPath := filepath.Join(destDir, path)
	if d.IsDir() {
		return os.MkdirAll(targetPath, fsutil.DirModeDefault)
	}

	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, "failed to get file info for %s", path)
	}

	srcFile, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive entry %s", path)
	}
	defer func() { _ = srcFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrapf(err, "failed to create parent directory for %s", path)
	}

	dstFile, err := fsutil.CreateFilePerm(targetPath, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", targetPath)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.Wrapf(err, "failed to extract %s", path)
	}
	return nil
}

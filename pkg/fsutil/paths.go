// Package fsutil provides filesystem helpers and the application's cache
// path conventions.
package fsutil

import (
	"os"
	"path/filepath"
)

// AppName is the name of the application used in paths.
const AppName = "bundlestore"

// GetCacheDir returns the platform-specific cache directory for the
// application, e.g. ~/.cache/bundlestore on Linux.
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

//go:generate mockgen -destination=./mocks/store.go . Downloader

package store

import "context"

// Downloader materializes a payload archive into a destination directory.
// Implemented by the download manager; injected so resolution logic stays
// independent of the transfer mechanics.
type Downloader interface {
	DownloadAndUnpack(ctx context.Context, payloadURL string, destDir string) error
}

package metacache

import "fmt"

// CorruptError is returned by Load for a side-car file that exists but cannot
// be decoded. Callers on availability-sensitive paths treat it as a cache
// miss with a logged warning instead of failing (see Cache).
type CorruptError struct {
	Path string
	Err  error
}

// Error implements the error interface for CorruptError.
func (e *CorruptError) Error() string {
	return fmt.Sprintf("metadata cache file %s is unreadable: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

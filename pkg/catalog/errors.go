package catalog

import (
	"fmt"

	"github.com/glorpus-work/bundlestore/pkg/model"
)

// Classified connection errors. Transport implementations wrap these so the
// resolver can react without depending on transport details.
var (
	// ErrRemoteDisabled is returned when remote catalog access has been
	// switched off by host configuration.
	ErrRemoteDisabled = fmt.Errorf("remote catalog access is disabled by configuration")

	// ErrConnection is a transport-level failure reaching the catalog
	// (DNS, proxy, timeout, TLS).
	ErrConnection = fmt.Errorf("cannot reach the catalog service")

	// ErrInvalidCredentials is returned when the catalog rejects the acting
	// account.
	ErrInvalidCredentials = fmt.Errorf("the catalog rejected the credentials")

	// ErrSessionExpired is returned when the site session backing a
	// credentials fetch has gone stale. The resolver retries exactly once
	// after a session refresh.
	ErrSessionExpired = fmt.Errorf("site session has expired")
)

// NotFoundError is returned when a requested bundle or version record does
// not exist in the catalog. Version is empty when the bundle itself is
// missing.
type NotFoundError struct {
	Kind    model.Kind
	Name    string
	Version string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	switch {
	case e.Version == "":
		return fmt.Sprintf("the catalog does not contain an item named %q", e.Name)
	case e.Kind == model.KindCore:
		return fmt.Sprintf("the catalog does not have a version %q of the core", e.Version)
	default:
		return fmt.Sprintf("the catalog does not have a version %q of item %q", e.Version, e.Name)
	}
}

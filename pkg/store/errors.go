package store

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/bundlestore/pkg/model"
)

// ErrNoCatalogPresence is returned for operations that need the catalog on an
// artifact kind that has no catalog entities (installed configs).
var ErrNoCatalogPresence = fmt.Errorf("artifact kind has no catalog presence")

// NoMatchingVersionError is returned when versions exist but none satisfies
// the requested label and constraint pattern. Available enumerates the
// versions that were considered when the pattern filtering failed.
type NoMatchingVersionError struct {
	Ref       model.ArtifactReference
	Pattern   string
	Available []string
}

// Error implements the error interface for NoMatchingVersionError.
func (e *NoMatchingVersionError) Error() string {
	if e.Pattern != "" && len(e.Available) > 0 {
		return fmt.Sprintf("%q does not have a version matching the pattern %q; available versions are: %s",
			e.Ref.SystemName(), e.Pattern, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("cannot find any versions for %s in the catalog", e.Ref)
}

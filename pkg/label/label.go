// Package label matches requested artifact labels against catalog tags.
package label

import "path"

// Matches reports whether the requested label is covered by any of the given
// tags. Tags are glob patterns ("*", "2024.*", "2024.2"; '?' and character
// classes are honored too) and the label is the subject being tested.
//
// An empty label is unconstrained and matches everything. A nil tag slice
// means the tag data is absent, so a set label can never match; an empty
// non-nil slice simply contains no matching tag.
func Matches(label string, tags []string) bool {
	if label == "" {
		return true
	}
	if tags == nil {
		return false
	}
	for _, tag := range tags {
		// a malformed glob pattern matches nothing
		if ok, err := path.Match(tag, label); err == nil && ok {
			return true
		}
	}
	return false
}

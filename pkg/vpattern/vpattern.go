// Package vpattern selects versions by constraint patterns such as "v1.2.x".
//
// Patterns come in two forms: an exact version ("v0.1.2", "v0.1.3beta") or a
// version with wildcard segments ("v0.12.x", "v1.x.x"; "X" and "*" are
// accepted too). Segments after the first wildcard are unconstrained; segments
// before it must match exactly.
//
// Version ordering compares dot-separated segments numerically where both
// sides parse as integers and lexically otherwise, so "v1.10.0" sorts above
// "v1.9.0". Missing trailing segments are read as zero ("v1.2" == "v1.2.0").
// This is the catalog's ordering, not semver: a trailing qualifier like
// "beta" is just a lexical segment suffix, not a pre-release marker.
package vpattern

import (
	"strconv"
	"strings"
)

// isWildcard reports whether a pattern segment is unconstrained.
func isWildcard(seg string) bool {
	return seg == "x" || seg == "X" || seg == "*"
}

// SelectBest returns the highest version among candidates that satisfies the
// given constraint pattern. An empty pattern matches every candidate. The
// empty string is returned when no candidate qualifies.
func SelectBest(candidates []string, pattern string) string {
	best := ""
	for _, c := range candidates {
		if pattern != "" && !Match(c, pattern) {
			continue
		}
		if best == "" || Compare(c, best) > 0 {
			best = c
		}
	}
	return best
}

// Match reports whether version satisfies the constraint pattern. A pattern
// without wildcard segments only matches the identical version string.
func Match(version, pattern string) bool {
	segs := strings.Split(pattern, ".")
	prefix := len(segs)
	for i, s := range segs {
		if isWildcard(s) {
			prefix = i
			break
		}
	}
	if prefix == len(segs) {
		return version == pattern
	}
	for i := 0; i < prefix; i++ {
		if segmentAt(version, i) != segs[i] {
			return false
		}
	}
	return true
}

// Compare orders two version strings. It returns a negative number when a is
// lower than b, zero when they are equal and a positive number otherwise.
func Compare(a, b string) int {
	na := strings.Count(a, ".") + 1
	nb := strings.Count(b, ".") + 1
	n := max(na, nb)
	for i := 0; i < n; i++ {
		sa := segmentAt(a, i)
		sb := segmentAt(b, i)
		if sa == sb {
			continue
		}
		ia, errA := strconv.Atoi(sa)
		ib, errB := strconv.Atoi(sb)
		if errA == nil && errB == nil {
			return ia - ib
		}
		return strings.Compare(sa, sb)
	}
	return 0
}

// segmentAt returns the i-th dot-separated segment of v, or "0" when v has
// fewer segments.
func segmentAt(v string, i int) string {
	segs := strings.Split(v, ".")
	if i >= len(segs) {
		return "0"
	}
	return segs[i]
}

// Package util - patch version comparison for the EOL diff engine.
package util

import (
	"github.com/Masterminds/semver/v3"
)

// PatchVersionNewer reports whether candidate is a strictly newer release
// than current. Both strings are parsed as semantic versions; when either
// side fails to parse, any textual difference counts as newer so a feed
// change is never silently dropped.
func PatchVersionNewer(current, candidate string) bool {
	if candidate == "" || current == candidate {
		return false
	}
	if current == "" {
		return true
	}

	cur, errCur := semver.NewVersion(current)
	cand, errCand := semver.NewVersion(candidate)
	if errCur != nil || errCand != nil {
		return current != candidate
	}
	return cand.GreaterThan(cur)
}

// Package eol - mapping feed entries onto canonical framework version records.
package eol

import (
	"fmt"
	"strings"
	"time"

	"github.com/portview/portview-backend/model"
)

// MapEntry converts one feed entry into a canonical framework version record.
// Status derivation is relative to now: a passed end-of-life boundary wins
// over a passed support boundary, and a cycle with neither is Active.
func MapEntry(family string, entry FeedEntry, now time.Time) (model.FrameworkVersion, error) {
	version := strings.TrimSpace(string(entry.Cycle))
	if version == "" {
		return model.FrameworkVersion{}, fmt.Errorf("feed entry for %s has no cycle", family)
	}

	fv := model.NewFrameworkVersion(family, version)

	if entry.ReleaseDate != nil && !entry.ReleaseDate.IsZero() {
		release := entry.ReleaseDate.Time
		fv.ReleaseDate = &release
	}
	if entry.EOL.Kind == EdgeDate {
		eolDate := entry.EOL.Date
		fv.EndOfLifeDate = &eolDate
	}
	if entry.Support.Kind == EdgeDate {
		supportDate := entry.Support.Date
		fv.EndOfActiveSupportDate = &supportDate
	}
	fv.IsLts = bool(entry.LTS)
	fv.LatestPatchVersion = entry.Latest
	fv.Status = statusFor(entry.EOL.LifecycleEdge, entry.Support.LifecycleEdge, now)

	return *fv, nil
}

func statusFor(eol, support LifecycleEdge, now time.Time) model.FrameworkStatus {
	switch eol.Kind {
	case EdgePassed:
		return model.FrameworkStatusEndOfLife
	case EdgeDate:
		if eol.Date.Before(now) {
			return model.FrameworkStatusEndOfLife
		}
	}

	switch support.Kind {
	case EdgePassed:
		return model.FrameworkStatusMaintenance
	case EdgeDate:
		if support.Date.Before(now) {
			return model.FrameworkStatusMaintenance
		}
	}

	return model.FrameworkStatusActive
}

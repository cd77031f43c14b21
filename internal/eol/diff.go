// Package eol - two-way diff of mapped feed entries against stored records.
package eol

import (
	"fmt"
	"strings"
	"time"

	"github.com/portview/portview-backend/model"
	"github.com/portview/portview-backend/util"
)

// VersionChange carries both sides of an update plus a human-readable
// description of every changed field.
type VersionChange struct {
	Before      model.FrameworkVersion `json:"before"`
	After       model.FrameworkVersion `json:"after"`
	Description string                 `json:"description"`
}

// DiffResult classifies every feed entry of one framework family.
type DiffResult struct {
	Family    string                   `json:"family"`
	Added     []model.FrameworkVersion `json:"added,omitempty"`
	Updated   []VersionChange          `json:"updated,omitempty"`
	Unchanged []string                 `json:"unchanged,omitempty"`
	Errors    []string                 `json:"errors,omitempty"`
}

// Diff maps the family's feed entries and classifies each against the stored
// records: no stored match means Added, a match with differing lifecycle
// fields means Updated, otherwise Unchanged. Entry-level mapping failures are
// recorded without aborting the rest of the family.
func Diff(family string, entries []FeedEntry, stored []model.FrameworkVersion, now time.Time) DiffResult {
	result := DiffResult{Family: family}

	for _, entry := range entries {
		mapped, err := MapEntry(family, entry, now)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		existing := findStored(stored, mapped.Version)
		if existing == nil {
			result.Added = append(result.Added, mapped)
			continue
		}

		changes := describeChanges(*existing, mapped)
		if len(changes) == 0 {
			result.Unchanged = append(result.Unchanged, existing.Version)
			continue
		}

		result.Updated = append(result.Updated, VersionChange{
			Before:      *existing,
			After:       applyChanges(*existing, mapped, now),
			Description: strings.Join(changes, "; "),
		})
	}

	return result
}

// findStored matches by case-insensitive version label within the family.
func findStored(stored []model.FrameworkVersion, version string) *model.FrameworkVersion {
	for i := range stored {
		if util.SameCycle(stored[i].Version, version) {
			return &stored[i]
		}
	}
	return nil
}

// describeChanges lists each difference in the lifecycle fields the diff
// contract compares. An empty list means the record is unchanged.
func describeChanges(before, after model.FrameworkVersion) []string {
	var changes []string

	if !sameDatePtr(before.EndOfLifeDate, after.EndOfLifeDate) {
		changes = append(changes, fmt.Sprintf("end-of-life date %s to %s",
			formatDatePtr(before.EndOfLifeDate), formatDatePtr(after.EndOfLifeDate)))
	}
	if !sameDatePtr(before.EndOfActiveSupportDate, after.EndOfActiveSupportDate) {
		changes = append(changes, fmt.Sprintf("active support end %s to %s",
			formatDatePtr(before.EndOfActiveSupportDate), formatDatePtr(after.EndOfActiveSupportDate)))
	}
	if before.Status != after.Status {
		changes = append(changes, fmt.Sprintf("status %s to %s", before.Status, after.Status))
	}
	if before.IsLts != after.IsLts {
		changes = append(changes, fmt.Sprintf("LTS %t to %t", before.IsLts, after.IsLts))
	}
	if before.LatestPatchVersion != after.LatestPatchVersion {
		verb := "changed from"
		if util.PatchVersionNewer(before.LatestPatchVersion, after.LatestPatchVersion) {
			verb = "upgraded from"
		}
		changes = append(changes, fmt.Sprintf("latest patch %s %s to %s",
			verb, emptyAsNone(before.LatestPatchVersion), emptyAsNone(after.LatestPatchVersion)))
	}

	return changes
}

// applyChanges carries the stored identity forward and overwrites only the
// compared lifecycle fields with the freshly mapped values.
func applyChanges(existing, mapped model.FrameworkVersion, now time.Time) model.FrameworkVersion {
	updated := existing
	updated.EndOfLifeDate = mapped.EndOfLifeDate
	updated.EndOfActiveSupportDate = mapped.EndOfActiveSupportDate
	updated.Status = mapped.Status
	updated.IsLts = mapped.IsLts
	updated.LatestPatchVersion = mapped.LatestPatchVersion
	updated.UpdatedAt = now
	return updated
}

func sameDatePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "(none)"
	}
	return t.Format(feedDateLayout)
}

func emptyAsNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

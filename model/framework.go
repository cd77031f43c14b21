// Package model - framework lifecycle records reconciled from the external
// end-of-life feed.
package model

import "time"

// FrameworkStatus tracks where a framework version sits in its support
// lifecycle relative to the current date.
type FrameworkStatus string

const (
	FrameworkStatusActive      FrameworkStatus = "Active"
	FrameworkStatusMaintenance FrameworkStatus = "Maintenance"
	FrameworkStatusEndOfLife   FrameworkStatus = "EndOfLife"
	FrameworkStatusUnknown     FrameworkStatus = "Unknown"
)

// FrameworkVersion is a canonical record of one release cycle of a framework
// family. Identity is stable per (framework, version); the diff engine creates
// new records and updates changed fields in place.
type FrameworkVersion struct {
	Key                    string          `json:"_key,omitempty"`
	Framework              string          `json:"framework"` // family, e.g. "dotnet", "nodejs"
	Version                string          `json:"version"`   // release cycle, e.g. "8.0"
	ReleaseDate            *time.Time      `json:"release_date,omitempty"`
	EndOfLifeDate          *time.Time      `json:"end_of_life_date,omitempty"`
	EndOfActiveSupportDate *time.Time      `json:"end_of_active_support_date,omitempty"`
	IsLts                  bool            `json:"is_lts"`
	Status                 FrameworkStatus `json:"status"`
	LatestPatchVersion     string          `json:"latest_patch_version,omitempty"`
	ObjType                string          `json:"objtype,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// NewFrameworkVersion creates a framework version record with default values.
func NewFrameworkVersion(framework, version string) *FrameworkVersion {
	now := time.Now().UTC()
	return &FrameworkVersion{
		Framework: framework,
		Version:   version,
		Status:    FrameworkStatusUnknown,
		ObjType:   "FrameworkVersion",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

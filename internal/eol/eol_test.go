package eol

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portview/portview-backend/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFeedEntryUnmarshalDates(t *testing.T) {
	raw := `{
		"cycle": "8.0",
		"releaseDate": "2023-11-14",
		"eol": "2026-11-10",
		"support": "2025-05-01",
		"lts": true,
		"latest": "8.0.12"
	}`

	var entry FeedEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))

	assert.Equal(t, Cycle("8.0"), entry.Cycle)
	require.NotNil(t, entry.ReleaseDate)
	assert.Equal(t, date(2023, time.November, 14), entry.ReleaseDate.Time)
	assert.Equal(t, EdgeDate, entry.EOL.Kind)
	assert.Equal(t, date(2026, time.November, 10), entry.EOL.Date)
	assert.Equal(t, EdgeDate, entry.Support.Kind)
	assert.Equal(t, date(2025, time.May, 1), entry.Support.Date)
	assert.True(t, bool(entry.LTS))
	assert.Equal(t, "8.0.12", entry.Latest)
}

func TestFeedEntryUnmarshalBooleans(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantEOL     EdgeKind
		wantSupport EdgeKind
	}{
		{
			name:        "eol true means already end-of-life",
			raw:         `{"cycle": "1.0", "eol": true, "support": false}`,
			wantEOL:     EdgePassed,
			wantSupport: EdgePassed,
		},
		{
			name:        "eol false means no end-of-life scheduled",
			raw:         `{"cycle": "2.0", "eol": false, "support": true}`,
			wantEOL:     EdgeIndefinite,
			wantSupport: EdgeIndefinite,
		},
		{
			name:        "missing fields stay unknown",
			raw:         `{"cycle": "3.0"}`,
			wantEOL:     EdgeUnknown,
			wantSupport: EdgeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entry FeedEntry
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &entry))
			assert.Equal(t, tt.wantEOL, entry.EOL.Kind)
			assert.Equal(t, tt.wantSupport, entry.Support.Kind)
		})
	}
}

func TestFeedEntryUnmarshalLtsDate(t *testing.T) {
	var entry FeedEntry
	require.NoError(t, json.Unmarshal([]byte(`{"cycle": "20", "lts": "2023-10-24"}`), &entry))
	assert.True(t, bool(entry.LTS), "a dated lts field implies LTS")

	require.NoError(t, json.Unmarshal([]byte(`{"cycle": "21", "lts": false}`), &entry))
	assert.False(t, bool(entry.LTS))
}

func TestFeedEntryUnmarshalNumericCycle(t *testing.T) {
	var entry FeedEntry
	require.NoError(t, json.Unmarshal([]byte(`{"cycle": 8, "eol": false}`), &entry))
	assert.Equal(t, Cycle("8"), entry.Cycle)
}

func TestFeedEntryUnmarshalRejectsGarbage(t *testing.T) {
	var entry FeedEntry
	err := json.Unmarshal([]byte(`{"cycle": "1.0", "eol": {"bad": 1}}`), &entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eol")

	err = json.Unmarshal([]byte(`{"cycle": "1.0", "eol": "not-a-date"}`), &entry)
	require.Error(t, err)
}

func TestMapEntryStatusByDate(t *testing.T) {
	entry := FeedEntry{
		Cycle:   "8.0",
		EOL:     EolField{LifecycleEdge{Kind: EdgeDate, Date: date(2026, time.November, 10)}},
		Support: SupportField{LifecycleEdge{Kind: EdgeDate, Date: date(2025, time.May, 1)}},
	}

	tests := []struct {
		name string
		now  time.Time
		want model.FrameworkStatus
	}{
		{"before support ends", date(2025, time.March, 1), model.FrameworkStatusActive},
		{"after support but before eol", date(2026, time.January, 15), model.FrameworkStatusMaintenance},
		{"after eol", date(2026, time.December, 1), model.FrameworkStatusEndOfLife},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv, err := MapEntry("dotnet", entry, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fv.Status)
			assert.Equal(t, "dotnet", fv.Framework)
			assert.Equal(t, "8.0", fv.Version)
			require.NotNil(t, fv.EndOfLifeDate)
			assert.Equal(t, date(2026, time.November, 10), *fv.EndOfLifeDate)
			require.NotNil(t, fv.EndOfActiveSupportDate)
			assert.Equal(t, date(2025, time.May, 1), *fv.EndOfActiveSupportDate)
		})
	}
}

func TestMapEntryStatusByBoolean(t *testing.T) {
	now := date(2026, time.March, 15)

	tests := []struct {
		name    string
		eol     EdgeKind
		support EdgeKind
		want    model.FrameworkStatus
	}{
		{"eol already passed wins", EdgePassed, EdgeIndefinite, model.FrameworkStatusEndOfLife},
		{"support ended but not eol", EdgeIndefinite, EdgePassed, model.FrameworkStatusMaintenance},
		{"both indefinite", EdgeIndefinite, EdgeIndefinite, model.FrameworkStatusActive},
		{"nothing known", EdgeUnknown, EdgeUnknown, model.FrameworkStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := FeedEntry{
				Cycle:   "1.0",
				EOL:     EolField{LifecycleEdge{Kind: tt.eol}},
				Support: SupportField{LifecycleEdge{Kind: tt.support}},
			}
			fv, err := MapEntry("go", entry, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fv.Status)
		})
	}
}

func TestMapEntryRequiresCycle(t *testing.T) {
	_, err := MapEntry("dotnet", FeedEntry{Cycle: "  "}, date(2026, time.March, 15))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cycle")
}

func storedVersion(family, version string) model.FrameworkVersion {
	fv := model.NewFrameworkVersion(family, version)
	fv.Status = model.FrameworkStatusActive
	return *fv
}

func TestDiffClassifiesEntries(t *testing.T) {
	now := date(2026, time.March, 15)

	known := storedVersion("dotnet", "8.0")
	eolDate := date(2026, time.November, 10)
	known.EndOfLifeDate = &eolDate
	known.LatestPatchVersion = "8.0.11"

	stored := []model.FrameworkVersion{known, storedVersion("dotnet", "6.0")}

	entries := []FeedEntry{
		{
			Cycle:  "8.0",
			EOL:    EolField{LifecycleEdge{Kind: EdgeDate, Date: eolDate}},
			Latest: "8.0.12",
		},
		{
			Cycle: "9.0",
			EOL:   EolField{LifecycleEdge{Kind: EdgeIndefinite}},
		},
		{Cycle: ""},
	}

	result := Diff("dotnet", entries, stored, now)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "9.0", result.Added[0].Version)
	assert.Equal(t, model.FrameworkStatusActive, result.Added[0].Status)

	require.Len(t, result.Updated, 1)
	change := result.Updated[0]
	assert.Equal(t, "8.0.11", change.Before.LatestPatchVersion)
	assert.Equal(t, "8.0.12", change.After.LatestPatchVersion)
	assert.Contains(t, change.Description, "latest patch upgraded from 8.0.11 to 8.0.12")
	assert.Equal(t, known.Key, change.After.Key, "identity survives an update")

	assert.Empty(t, result.Unchanged, "6.0 is stored-only and the diff walks the feed")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no cycle")
}

func TestDiffMatchesCaseInsensitively(t *testing.T) {
	now := date(2026, time.March, 15)
	stored := []model.FrameworkVersion{storedVersion("nodejs", "20 LTS")}

	entries := []FeedEntry{{
		Cycle:   "20 lts ",
		EOL:     EolField{LifecycleEdge{Kind: EdgeIndefinite}},
		Support: SupportField{LifecycleEdge{Kind: EdgeIndefinite}},
	}}

	result := Diff("nodejs", entries, stored, now)
	assert.Empty(t, result.Added)
	assert.Equal(t, []string{"20 LTS"}, result.Unchanged)
}

func TestDiffDescribesEveryChangedField(t *testing.T) {
	now := date(2026, time.March, 15)

	before := storedVersion("java", "17")
	before.IsLts = false
	before.Status = model.FrameworkStatusActive

	supportEnd := date(2026, time.January, 1)
	entries := []FeedEntry{{
		Cycle:   "17",
		Support: SupportField{LifecycleEdge{Kind: EdgeDate, Date: supportEnd}},
		LTS:     true,
	}}

	result := Diff("java", entries, []model.FrameworkVersion{before}, now)
	require.Len(t, result.Updated, 1)

	desc := result.Updated[0].Description
	assert.Contains(t, desc, "active support end (none) to 2026-01-01")
	assert.Contains(t, desc, "status Active to Maintenance")
	assert.Contains(t, desc, "LTS false to true")
}

func TestDiffIsDeterministicAndConvergent(t *testing.T) {
	now := date(2026, time.March, 15)

	entries := []FeedEntry{
		{Cycle: "8.0", EOL: EolField{LifecycleEdge{Kind: EdgeDate, Date: date(2026, time.November, 10)}}, Latest: "8.0.12"},
		{Cycle: "9.0", EOL: EolField{LifecycleEdge{Kind: EdgeIndefinite}}, Latest: "9.0.3"},
	}
	stored := []model.FrameworkVersion{storedVersion("dotnet", "8.0")}

	first := Diff("dotnet", entries, stored, now)
	second := Diff("dotnet", entries, stored, now)
	require.Len(t, second.Added, len(first.Added))
	for i := range first.Added {
		assert.Equal(t, first.Added[i].Version, second.Added[i].Version)
		assert.Equal(t, first.Added[i].Status, second.Added[i].Status)
	}
	require.Len(t, second.Updated, len(first.Updated))
	for i := range first.Updated {
		assert.Equal(t, first.Updated[i].Description, second.Updated[i].Description)
	}
	assert.Equal(t, first.Unchanged, second.Unchanged)

	// Applying the result and diffing again converges to all-unchanged.
	applied := []model.FrameworkVersion{}
	for _, change := range first.Updated {
		applied = append(applied, change.After)
	}
	applied = append(applied, first.Added...)

	rerun := Diff("dotnet", entries, applied, now)
	assert.Empty(t, rerun.Added)
	assert.Empty(t, rerun.Updated)
	assert.Len(t, rerun.Unchanged, 2)
}

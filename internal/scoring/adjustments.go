// Package scoring - usage, maintenance, and data-conflict adjustments.
package scoring

import (
	"time"

	"github.com/portview/portview-backend/model"
)

// dataConflictPenalty is the flat deduction for unresolved cross-source
// data conflicts on an application.
const dataConflictPenalty = 5

// UsageAdjustment maps the usage-level classification to a score adjustment.
// Missing usage data is treated as no usage at all.
func UsageAdjustment(usage *model.UsageLevel) int {
	if usage == nil {
		return -20
	}
	switch *usage {
	case model.UsageNone:
		return -20
	case model.UsageVeryLow:
		return -10
	case model.UsageLow:
		return -5
	case model.UsageModerate:
		return 0
	case model.UsageHigh:
		return 5
	default:
		return -20
	}
}

// MaintenanceAdjustment maps recency of activity into a bonus or penalty.
// Unknown activity dates are scored like abandonment.
func MaintenanceAdjustment(lastActivity *time.Time, now time.Time) int {
	if lastActivity == nil || lastActivity.IsZero() {
		return -10
	}
	days := int(now.Sub(*lastActivity).Hours() / 24)
	switch {
	case days <= 30:
		return 10
	case days <= 90:
		return 5
	case days <= 180:
		return 0
	case days <= 365:
		return -5
	default:
		return -10
	}
}

// DataConflictPenalty returns the flat penalty for flagged data conflicts.
func DataConflictPenalty(hasConflicts bool) int {
	if hasConflicts {
		return dataConflictPenalty
	}
	return 0
}

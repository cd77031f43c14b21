// Package scoring implements the health score calculation for portfolio
// applications: capped security penalties, usage and maintenance adjustments,
// documentation scoring, overdue-task and incident penalties, and the final
// 0-100 score with its category. All functions are pure; callers supply the
// reference time so results are reproducible.
package scoring

import (
	"github.com/portview/portview-backend/model"
)

// Per-finding penalties and the cap applied independently to each severity.
const (
	criticalPerFinding = 15
	criticalCap        = 60
	highPerFinding     = 8
	highCap            = 40
	mediumPerFinding   = 2
	mediumCap          = 20
	lowPerFinding      = 0.5
	lowCap             = 10
)

// SecurityPenalty converts unresolved findings into a capped penalty per
// severity. The low-severity product is truncated to an integer after
// multiplication, matching the documented accumulation rule.
func SecurityPenalty(findings []model.SecurityFinding) model.SecurityPenaltyDetail {
	var detail model.SecurityPenaltyDetail

	for _, f := range findings {
		if f.Resolved {
			continue
		}
		switch f.Severity {
		case model.SeverityCritical:
			detail.UnresolvedCritical++
		case model.SeverityHigh:
			detail.UnresolvedHigh++
		case model.SeverityMedium:
			detail.UnresolvedMedium++
		case model.SeverityLow:
			detail.UnresolvedLow++
		}
	}

	detail.CriticalPenalty = capped(detail.UnresolvedCritical*criticalPerFinding, criticalCap)
	detail.HighPenalty = capped(detail.UnresolvedHigh*highPerFinding, highCap)
	detail.MediumPenalty = capped(detail.UnresolvedMedium*mediumPerFinding, mediumCap)
	detail.LowPenalty = capped(int(float64(detail.UnresolvedLow)*lowPerFinding), lowCap)

	return detail
}

func capped(penalty, cap int) int {
	if penalty > cap {
		return cap
	}
	return penalty
}

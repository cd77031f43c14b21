// Package scoring - incident history penalties.
package scoring

import (
	"time"

	"github.com/portview/portview-backend/model"
)

const (
	recentIncidentWindowDays = 90
	recentIncidentPenalty    = 2
	recentIncidentCap        = 20
	repeatPatternThreshold   = 3
	repeatPatternPenalty     = 3
	repeatPatternCap         = 15
)

// IncidentPenalty computes the penalty from recent incident volume and
// repeat-failure patterns. A repeat pattern is a non-empty close code that
// occurs at least three times in the supplied history.
func IncidentPenalty(incidents []model.Incident, now time.Time) model.IncidentPenaltyDetail {
	var detail model.IncidentPenaltyDetail

	cutoff := now.AddDate(0, 0, -recentIncidentWindowDays)
	closeCodes := make(map[string]int)

	for _, inc := range incidents {
		if inc.OpenedAt.After(cutoff) {
			detail.RecentCount++
		}
		if inc.CloseCode != "" {
			closeCodes[inc.CloseCode]++
		}
	}

	for _, count := range closeCodes {
		if count >= repeatPatternThreshold {
			detail.RepeatPatternCount++
		}
	}

	detail.RecentPenalty = capped(detail.RecentCount*recentIncidentPenalty, recentIncidentCap)
	detail.RepeatPatternPenalty = capped(detail.RepeatPatternCount*repeatPatternPenalty, repeatPatternCap)

	return detail
}

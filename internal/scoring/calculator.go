// Package scoring - composition of the sub-calculators into a full breakdown.
package scoring

import (
	"time"

	"github.com/portview/portview-backend/model"
)

// baseScore is the starting point before adjustments and penalties.
const baseScore = 100

// Calculator composes the sub-calculators into a HealthScoreBreakdown.
// A zero-value Calculator uses the default two-flag documentation scorer;
// setting DocWeights switches to the extended weighted scorer.
type Calculator struct {
	DocWeights *DocumentationWeights
}

// NewCalculator returns a Calculator in default documentation mode.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// NewWeightedCalculator returns a Calculator using the extended
// documentation scorer with the given weights.
func NewWeightedCalculator(weights DocumentationWeights) *Calculator {
	return &Calculator{DocWeights: &weights}
}

// Calculate produces the full health breakdown for one application. The
// incident slice may be nil when no incident history was loaded; the incident
// penalty is then zero. The final score is clamped to [0,100] before the
// category lookup so out-of-range totals never map to a category gap.
func (c *Calculator) Calculate(app *model.Application, tasks []model.LifecycleTask, incidents []model.Incident, now time.Time) model.HealthScoreBreakdown {
	security := SecurityPenalty(app.SecurityFindings)

	docAdjustment := 0
	if c.DocWeights != nil {
		docAdjustment = DocumentationAdjustmentWeighted(app.Documentation, app.Repository, *c.DocWeights)
	} else {
		docAdjustment = DocumentationAdjustment(app.Documentation)
	}

	var incidentDetail model.IncidentPenaltyDetail
	if incidents != nil {
		incidentDetail = IncidentPenalty(incidents, now)
	}

	breakdown := model.HealthScoreBreakdown{
		ApplicationKey:          app.Key,
		BaseScore:               baseScore,
		SecurityPenalty:         security.Total(),
		UsageAdjustment:         UsageAdjustment(app.Usage),
		MaintenanceAdjustment:   MaintenanceAdjustment(app.LastActivityDate, now),
		DocumentationAdjustment: docAdjustment,
		OverdueTaskPenalty:      OverdueTaskPenalty(tasks, now),
		IncidentPenalty:         incidentDetail.Total(),
		DataConflictPenalty:     DataConflictPenalty(app.HasDataConflicts),
		SecurityDetail:          security,
		IncidentDetail:          incidentDetail,
	}

	breakdown.RawScore = baseScore -
		breakdown.SecurityPenalty +
		breakdown.UsageAdjustment +
		breakdown.MaintenanceAdjustment +
		breakdown.DocumentationAdjustment -
		breakdown.OverdueTaskPenalty -
		breakdown.IncidentPenalty -
		breakdown.DataConflictPenalty

	breakdown.FinalScore = ClampScore(breakdown.RawScore)
	breakdown.Category = CategoryForScore(breakdown.FinalScore)

	return breakdown
}

// ClampScore bounds a raw score to the [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CategoryForScore maps a clamped score to its health category. Boundaries
// are inclusive on the lower bound.
func CategoryForScore(score int) model.HealthCategory {
	switch {
	case score >= 80:
		return model.HealthCategoryHealthy
	case score >= 60:
		return model.HealthCategoryNeedsAttention
	case score >= 40:
		return model.HealthCategoryAtRisk
	default:
		return model.HealthCategoryCritical
	}
}

// Package model - health score breakdown produced by the scoring engine.
package model

// HealthCategory is the coarse bucket derived from a clamped health score.
type HealthCategory string

const (
	HealthCategoryHealthy        HealthCategory = "Healthy"
	HealthCategoryNeedsAttention HealthCategory = "NeedsAttention"
	HealthCategoryAtRisk         HealthCategory = "AtRisk"
	HealthCategoryCritical       HealthCategory = "Critical"
)

// SecurityPenaltyDetail itemizes the capped per-severity security penalty.
type SecurityPenaltyDetail struct {
	UnresolvedCritical int `json:"unresolved_critical"`
	UnresolvedHigh     int `json:"unresolved_high"`
	UnresolvedMedium   int `json:"unresolved_medium"`
	UnresolvedLow      int `json:"unresolved_low"`
	CriticalPenalty    int `json:"critical_penalty"`
	HighPenalty        int `json:"high_penalty"`
	MediumPenalty      int `json:"medium_penalty"`
	LowPenalty         int `json:"low_penalty"`
}

// Total returns the summed capped penalty across severities.
func (d SecurityPenaltyDetail) Total() int {
	return d.CriticalPenalty + d.HighPenalty + d.MediumPenalty + d.LowPenalty
}

// IncidentPenaltyDetail itemizes the incident-history penalty.
type IncidentPenaltyDetail struct {
	RecentCount          int `json:"recent_count"`
	RepeatPatternCount   int `json:"repeat_pattern_count"`
	RecentPenalty        int `json:"recent_penalty"`
	RepeatPatternPenalty int `json:"repeat_pattern_penalty"`
}

// Total returns the summed incident penalty.
func (d IncidentPenaltyDetail) Total() int {
	return d.RecentPenalty + d.RepeatPatternPenalty
}

// HealthScoreBreakdown is the full result of one health score computation.
// It is a pure computation result; persistence of the final score belongs to
// the portfolio store.
type HealthScoreBreakdown struct {
	ApplicationKey          string                `json:"application_key"`
	BaseScore               int                   `json:"base_score"`
	SecurityPenalty         int                   `json:"security_penalty"`
	UsageAdjustment         int                   `json:"usage_adjustment"`
	MaintenanceAdjustment   int                   `json:"maintenance_adjustment"`
	DocumentationAdjustment int                   `json:"documentation_adjustment"`
	OverdueTaskPenalty      int                   `json:"overdue_task_penalty"`
	IncidentPenalty         int                   `json:"incident_penalty"`
	DataConflictPenalty     int                   `json:"data_conflict_penalty"`
	RawScore                int                   `json:"raw_score"`
	FinalScore              int                   `json:"final_score"`
	Category                HealthCategory        `json:"category"`
	SecurityDetail          SecurityPenaltyDetail `json:"security_detail"`
	IncidentDetail          IncidentPenaltyDetail `json:"incident_detail"`
}

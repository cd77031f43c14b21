// Package model - task generation configuration consumed per evaluator run.
package model

// TaskGenerationConfig is an immutable snapshot of the thresholds the rule
// evaluator applies. The store keeps the current document; each run receives
// its own copy so a concurrent config change never affects a run in flight.
type TaskGenerationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Staleness thresholds in days.
	RoleRevalidationDays      int `json:"role_revalidation_days" yaml:"role_revalidation_days"`
	DocumentationReviewDays   int `json:"documentation_review_days" yaml:"documentation_review_days"`
	ApplicationInfoReviewDays int `json:"application_info_review_days" yaml:"application_info_review_days"`

	// Due-date offsets in days for security remediation tasks, per severity.
	CriticalVulnerabilityDueDays int `json:"critical_vulnerability_due_days" yaml:"critical_vulnerability_due_days"`
	HighVulnerabilityDueDays     int `json:"high_vulnerability_due_days" yaml:"high_vulnerability_due_days"`
	MediumVulnerabilityDueDays   int `json:"medium_vulnerability_due_days" yaml:"medium_vulnerability_due_days"`

	// TreatExposedSecretsAsCritical escalates repository secret leaks into the
	// Critical remediation bucket.
	TreatExposedSecretsAsCritical bool `json:"treat_exposed_secrets_as_critical" yaml:"treat_exposed_secrets_as_critical"`
}

// DefaultTaskGenerationConfig returns the thresholds used when no stored
// configuration exists yet.
func DefaultTaskGenerationConfig() TaskGenerationConfig {
	return TaskGenerationConfig{
		Enabled:                       true,
		RoleRevalidationDays:          180,
		DocumentationReviewDays:       365,
		ApplicationInfoReviewDays:     365,
		CriticalVulnerabilityDueDays:  7,
		HighVulnerabilityDueDays:      30,
		MediumVulnerabilityDueDays:    90,
		TreatExposedSecretsAsCritical: true,
	}
}
